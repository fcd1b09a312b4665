package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	FindByTender(ctx context.Context, db *gorm.DB, tenderID int64) ([]Order, error)
	FindByTenders(ctx context.Context, db *gorm.DB, tenderIDs []int64) ([]Order, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Order, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
