package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/order/domain"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	TenderRepo  tenderdomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	tenderRepo  tenderdomain.Repository
	productRepo productdomain.Repository
	genID       *snowflake.Node
	clock       clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		repo:        p.Repo,
		tenderRepo:  p.TenderRepo,
		productRepo: p.ProductRepo,
		genID:       p.GenID,
		clock:       p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if req.AwardedQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	tenderID, err := snowflake.ParseString(strings.TrimSpace(req.TenderID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tender, err := s.tenderRepo.FindByID(ctx, s.db, tenderID.Int64())
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrTenderNotFound
	}

	product, err := s.productRepo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	now := s.clock.Now()
	o := &domain.Order{
		ID:              s.genID.Generate().Int64(),
		TenderID:        tenderID.Int64(),
		ProductID:       productID.Int64(),
		AwardedQuantity: req.AwardedQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, s.db, o); err != nil {
		return nil, err
	}

	resp := s.toResponse(o)
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
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
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
	orderID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.TenderID != nil {
		tenderID, err := snowflake.ParseString(strings.TrimSpace(*req.TenderID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		tender, err := s.tenderRepo.FindByID(ctx, s.db, tenderID.Int64())
		if err != nil {
			return nil, err
		}
		if tender == nil {
			return nil, domain.ErrTenderNotFound
		}
		item.TenderID = tenderID.Int64()
	}
	if req.ProductID != nil {
		productID, err := snowflake.ParseString(strings.TrimSpace(*req.ProductID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		product, err := s.productRepo.FindByID(ctx, s.db, productID.Int64())
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		item.ProductID = productID.Int64()
	}
	if req.AwardedQuantity != nil {
		if *req.AwardedQuantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.AwardedQuantity = *req.AwardedQuantity
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, item.ID)
}

func (s *Service) toResponse(o *domain.Order) domain.Response {
	return domain.Response{
		ID:              snowflake.ID(o.ID).String(),
		TenderID:        snowflake.ID(o.TenderID).String(),
		ProductID:       snowflake.ID(o.ProductID).String(),
		AwardedQuantity: o.AwardedQuantity,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
