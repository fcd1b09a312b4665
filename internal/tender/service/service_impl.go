package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/margin"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/smallbiznis/tenderbase/internal/tender/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	OrderRepo   orderdomain.Repository
	ProductRepo productdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	orderRepo   orderdomain.Repository
	productRepo productdomain.Repository
	genID       *snowflake.Node
	clock       clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("tender.service"),
		repo:        p.Repo,
		orderRepo:   p.OrderRepo,
		productRepo: p.ProductRepo,
		genID:       p.GenID,
		clock:       p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	client := strings.TrimSpace(req.Client)
	if client == "" {
		return nil, domain.ErrInvalidClient
	}

	description := strings.TrimSpace(ptrToString(req.Description))
	var descriptionPtr *string
	if description != "" {
		descriptionPtr = &description
	}

	now := s.clock.Now()
	t := &domain.Tender{
		ID:          s.genID.Generate().Int64(),
		Client:      client,
		AwardDate:   now,
		Description: descriptionPtr,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Metadata != nil {
		t.Metadata = datatypes.JSONMap(req.Metadata)
	}
	if err := s.repo.Create(ctx, s.db, t); err != nil {
		return nil, err
	}

	resp := s.toResponse(t)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	tender, err := s.findTender(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(tender)
	return &resp, nil
}

func (s *Service) GetWithOrders(ctx context.Context, id string) (*domain.TenderWithOrders, error) {
	tender, err := s.findTender(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByTender(ctx, s.db, tender.ID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, orders)
	if err != nil {
		return nil, err
	}

	lines := make([]margin.Line, 0, len(orders))
	for _, o := range orders {
		product, ok := products[o.ProductID]
		if !ok {
			// A dangling product reference must not blank the whole rollup.
			s.log.Warn("skipping order with unresolved product",
				zap.String("order_id", snowflake.ID(o.ID).String()),
				zap.String("product_id", snowflake.ID(o.ProductID).String()),
			)
			continue
		}
		lines = append(lines, margin.NewLine(o.ID, product, o.AwardedQuantity))
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			OrderID:         snowflake.ID(line.OrderID).String(),
			ProductID:       snowflake.ID(line.Product.ID).String(),
			AwardedQuantity: line.Quantity,
			Product:         toProductResponse(line.Product),
			Margin:          line.Margin,
		})
	}

	return &domain.TenderWithOrders{
		ID:           snowflake.ID(tender.ID).String(),
		Client:       tender.Client,
		AwardDate:    tender.AwardDate,
		Description:  tender.Description,
		Orders:       orderLines,
		TotalMargin:  margin.Total(lines),
		ProductCount: len(orderLines),
	}, nil
}

func (s *Service) ListSummaries(ctx context.Context, req domain.ListRequest) ([]domain.TenderSummary, error) {
	tenders, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	if len(tenders) == 0 {
		return []domain.TenderSummary{}, nil
	}

	tenderIDs := make([]int64, 0, len(tenders))
	for _, t := range tenders {
		tenderIDs = append(tenderIDs, t.ID)
	}

	orders, err := s.orderRepo.FindByTenders(ctx, s.db, tenderIDs)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, orders)
	if err != nil {
		return nil, err
	}

	linesByTender := make(map[int64][]margin.Line, len(tenders))
	for _, o := range orders {
		product, ok := products[o.ProductID]
		if !ok {
			s.log.Warn("skipping order with unresolved product",
				zap.String("order_id", snowflake.ID(o.ID).String()),
				zap.String("product_id", snowflake.ID(o.ProductID).String()),
			)
			continue
		}
		linesByTender[o.TenderID] = append(linesByTender[o.TenderID], margin.NewLine(o.ID, product, o.AwardedQuantity))
	}

	summaries := make([]domain.TenderSummary, 0, len(tenders))
	for _, t := range tenders {
		lines := linesByTender[t.ID]
		summaries = append(summaries, domain.TenderSummary{
			ID:           snowflake.ID(t.ID).String(),
			Client:       t.Client,
			AwardDate:    t.AwardDate,
			Description:  t.Description,
			ProductCount: len(lines),
			TotalMargin:  margin.Total(lines),
		})
	}
	return summaries, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	tender, err := s.findTender(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Client != nil {
		client := strings.TrimSpace(*req.Client)
		if client == "" {
			return nil, domain.ErrInvalidClient
		}
		tender.Client = client
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			tender.Description = nil
		} else {
			tender.Description = &description
		}
	}
	if req.Metadata != nil {
		tender.Metadata = datatypes.JSONMap(req.Metadata)
	}

	tender.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, tender); err != nil {
		return nil, err
	}

	resp := s.toResponse(tender)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tender, err := s.findTender(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, tender.ID)
}

func (s *Service) Validate(ctx context.Context, id string) error {
	tender, err := s.findTender(ctx, id)
	if err != nil {
		return err
	}

	orders, err := s.orderRepo.FindByTender(ctx, s.db, tender.ID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return domain.ErrNoOrders
	}
	return nil
}

func (s *Service) findTender(ctx context.Context, id string) (*domain.Tender, error) {
	tenderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tender, err := s.repo.FindByID(ctx, s.db, tenderID.Int64())
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrNotFound
	}
	return tender, nil
}

func (s *Service) loadProducts(ctx context.Context, orders []orderdomain.Order) (map[int64]productdomain.Product, error) {
	ids := make([]int64, 0, len(orders))
	seen := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.ProductID]; ok {
			continue
		}
		seen[o.ProductID] = struct{}{}
		ids = append(ids, o.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]productdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *Service) toResponse(t *domain.Tender) domain.Response {
	resp := domain.Response{
		ID:          snowflake.ID(t.ID).String(),
		Client:      t.Client,
		AwardDate:   t.AwardDate,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if len(t.Metadata) > 0 {
		resp.Metadata = map[string]any(t.Metadata)
	}
	return resp
}

func toProductResponse(p productdomain.Product) productdomain.Response {
	resp := productdomain.Response{
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
