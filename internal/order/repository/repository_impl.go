package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tenderbase/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}

func (r *repo) FindByTender(ctx context.Context, db *gorm.DB, tenderID int64) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).
		Where("tender_id = ?", tenderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByTenders(ctx context.Context, db *gorm.DB, tenderIDs []int64) ([]domain.Order, error) {
	if len(tenderIDs) == 0 {
		return nil, nil
	}
	var items []domain.Order
	err := db.WithContext(ctx).
		Where("tender_id IN ?", tenderIDs).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Order, error) {
	paging := filter.Normalize()

	stmt := db.WithContext(ctx).Model(&domain.Order{})
	if id := parseOptionalID(filter.TenderID); id != 0 {
		stmt = stmt.Where("tender_id = ?", id)
	}
	if id := parseOptionalID(filter.ProductID); id != 0 {
		stmt = stmt.Where("product_id = ?", id)
	}

	var items []domain.Order
	err := stmt.Order("created_at ASC").
		Offset(paging.Skip).
		Limit(paging.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	if order == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET tender_id = ?, product_id = ?, awarded_quantity = ?, updated_at = ?
		 WHERE id = ?`,
		order.TenderID,
		order.ProductID,
		order.AwardedQuantity,
		order.UpdatedAt,
		order.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM orders WHERE id = ?`, id).Error
}

func parseOptionalID(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0
	}
	return id.Int64()
}
