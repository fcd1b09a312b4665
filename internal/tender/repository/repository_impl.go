package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/tenderbase/internal/tender/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, tender *domain.Tender) error {
	return db.WithContext(ctx).Create(tender).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Tender, error) {
	var t domain.Tender
	err := db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Tender, error) {
	paging := filter.Normalize()

	stmt := db.WithContext(ctx).Model(&domain.Tender{})
	if client := strings.TrimSpace(filter.Client); client != "" {
		stmt = stmt.Where("client = ?", client)
	}

	var items []domain.Tender
	err := stmt.Order("award_date ASC").
		Offset(paging.Skip).
		Limit(paging.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tender *domain.Tender) error {
	if tender == nil {
		return gorm.ErrInvalidData
	}
	// award_date is fixed at creation and deliberately absent here.
	return db.WithContext(ctx).Exec(
		`UPDATE tenders
		 SET client = ?, description = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		tender.Client,
		tender.Description,
		tender.Metadata,
		tender.UpdatedAt,
		tender.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM orders WHERE tender_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM tenders WHERE id = ?`, id).Error
	})
}
