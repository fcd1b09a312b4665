package domain

import (
	"context"
	"errors"
	"time"

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

	TenderID  string
	ProductID string
}

type CreateRequest struct {
	TenderID        string `json:"tender_id"`
	ProductID       string `json:"product_id"`
	AwardedQuantity int64  `json:"awarded_quantity"`
}

type UpdateRequest struct {
	ID              string  `json:"-"`
	TenderID        *string `json:"tender_id"`
	ProductID       *string `json:"product_id"`
	AwardedQuantity *int64  `json:"awarded_quantity"`
}

type Response struct {
	ID              string    `json:"id"`
	TenderID        string    `json:"tender_id"`
	ProductID       string    `json:"product_id"`
	AwardedQuantity int64     `json:"awarded_quantity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var (
	ErrInvalidQuantity = errors.New("invalid_awarded_quantity")
	ErrTenderNotFound  = errors.New("tender_not_found")
	ErrProductNotFound = errors.New("product_not_found")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
)
