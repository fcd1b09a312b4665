package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/smallbiznis/tenderbase/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// GetWithOrders resolves the tender's order lines with product snapshots
	// and margins. Orders whose product no longer exists are excluded from
	// both the lines and the totals.
	GetWithOrders(ctx context.Context, id string) (*TenderWithOrders, error)
	// ListSummaries returns the cheap per-tender projection used for listing
	// and portfolio reporting.
	ListSummaries(ctx context.Context, req ListRequest) ([]TenderSummary, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	// Validate fails unless the tender has at least one registered order.
	Validate(ctx context.Context, id string) error
}

type ListRequest struct {
	pagination.Pagination

	Client string
}

type CreateRequest struct {
	Client      string         `json:"client"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	ID          string         `json:"-"`
	Client      *string        `json:"client"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

type Response struct {
	ID          string         `json:"id"`
	Client      string         `json:"client"`
	AwardDate   time.Time      `json:"award_date"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// OrderLine is one order of the tender with its product snapshot and margin.
type OrderLine struct {
	OrderID         string                 `json:"order_id"`
	ProductID       string                 `json:"product_id"`
	AwardedQuantity int64                  `json:"awarded_quantity"`
	Product         productdomain.Response `json:"product"`
	Margin          decimal.Decimal        `json:"margin"`
}

// TenderWithOrders is the detail view: the tender plus its resolved order
// lines and derived totals.
type TenderWithOrders struct {
	ID           string          `json:"id"`
	Client       string          `json:"client"`
	AwardDate    time.Time       `json:"award_date"`
	Description  *string         `json:"description,omitempty"`
	Orders       []OrderLine     `json:"orders"`
	TotalMargin  decimal.Decimal `json:"total_margin"`
	ProductCount int             `json:"product_count"`
}

// TenderSummary projects a tender to its listing shape without order lines.
type TenderSummary struct {
	ID           string          `json:"id"`
	Client       string          `json:"client"`
	AwardDate    time.Time       `json:"award_date"`
	Description  *string         `json:"description,omitempty"`
	ProductCount int             `json:"product_count"`
	TotalMargin  decimal.Decimal `json:"total_margin"`
}

var (
	ErrInvalidClient = errors.New("invalid_client")
	ErrNotFound      = errors.New("not_found")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNoOrders      = errors.New("tender_without_orders")
)
