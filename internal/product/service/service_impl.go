package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/smallbiznis/tenderbase/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domain.ErrInvalidSKU
	}

	if req.UnitSalePrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if req.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}

	existing, err := s.repo.FindBySKU(ctx, s.db, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSKUExists
	}

	description := strings.TrimSpace(ptrToString(req.Description))
	var descriptionPtr *string
	if description != "" {
		descriptionPtr = &description
	}

	now := s.clock.Now()
	p := &domain.Product{
		ID:            s.genID.Generate().Int64(),
		Name:          name,
		SKU:           sku,
		UnitSalePrice: req.UnitSalePrice,
		UnitCost:      req.UnitCost,
		Description:   descriptionPtr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Metadata != nil {
		p.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSKUExists
		}
		return nil, err
	}

	if p.UnitMargin().Sign() <= 0 {
		s.log.Warn("product priced at or below cost",
			zap.String("product_id", snowflake.ID(p.ID).String()),
			zap.String("sku", p.SKU),
		)
	}

	resp := s.toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidSKU
		}
		if sku != item.SKU {
			existing, err := s.repo.FindBySKU(ctx, s.db, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != item.ID {
				return nil, domain.ErrSKUExists
			}
		}
		item.SKU = sku
	}
	if req.UnitSalePrice != nil {
		if req.UnitSalePrice.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		item.UnitSalePrice = *req.UnitSalePrice
	}
	if req.UnitCost != nil {
		if req.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidCost
		}
		item.UnitCost = *req.UnitCost
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			item.Description = nil
		} else {
			item.Description = &description
		}
	}
	if req.Metadata != nil {
		item.Metadata = datatypes.JSONMap(req.Metadata)
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSKUExists
		}
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:            snowflake.ID(p.ID).String(),
		Name:          p.Name,
		SKU:           p.SKU,
		UnitSalePrice: p.UnitSalePrice,
		UnitCost:      p.UnitCost,
		Description:   p.Description,
		NonProfitable: p.UnitMargin().Sign() <= 0,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
	}

	return resp
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
