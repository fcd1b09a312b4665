package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/tenderbase/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Where("sku = ?", sku).Limit(1).Find(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.Product
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Product, error) {
	paging := filter.Normalize()

	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		stmt = stmt.Where("name = ?", name)
	}
	if sku := strings.TrimSpace(filter.SKU); sku != "" {
		stmt = stmt.Where("sku = ?", sku)
	}

	var items []domain.Product
	err := stmt.Order("created_at ASC").
		Offset(paging.Skip).
		Limit(paging.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, sku = ?, unit_sale_price = ?, unit_cost = ?, description = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.SKU,
		product.UnitSalePrice,
		product.UnitCost,
		product.Description,
		product.Metadata,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}
