package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tenderbase/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	pagination.Pagination

	Name string
	SKU  string
}

type CreateRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Description   *string         `json:"description"`
	Metadata      map[string]any  `json:"metadata"`
}

type UpdateRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name"`
	SKU           *string          `json:"sku"`
	UnitSalePrice *decimal.Decimal `json:"unit_sale_price"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	Description   *string          `json:"description"`
	Metadata      map[string]any   `json:"metadata"`
}

type Response struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Description   *string         `json:"description,omitempty"`
	// NonProfitable warns that the sale price does not exceed the unit cost,
	// break-even included. The catalog accepts such products; callers decide
	// how loudly to surface it.
	NonProfitable bool           `json:"non_profitable,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidSKU   = errors.New("invalid_sku")
	ErrInvalidPrice = errors.New("invalid_unit_sale_price")
	ErrInvalidCost  = errors.New("invalid_unit_cost")
	ErrSKUExists    = errors.New("sku_exists")
	ErrNotFound     = errors.New("not_found")
	ErrInvalidID    = errors.New("invalid_id")
)
