package domain

import "time"

// Order commits an awarded quantity of one product to one tender.
type Order struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	TenderID        int64     `json:"tender_id" gorm:"not null;index"`
	ProductID       int64     `json:"product_id" gorm:"not null;index"`
	AwardedQuantity int64     `json:"awarded_quantity" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }
