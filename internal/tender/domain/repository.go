package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, tender *Tender) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Tender, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Tender, error)
	Update(ctx context.Context, db *gorm.DB, tender *Tender) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
