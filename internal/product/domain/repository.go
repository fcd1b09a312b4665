package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindBySKU(ctx context.Context, db *gorm.DB, sku string) (*Product, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
