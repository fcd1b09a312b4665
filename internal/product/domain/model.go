package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	Name          string            `json:"name" gorm:"type:text;not null"`
	SKU           string            `json:"sku" gorm:"column:sku;type:text;not null;uniqueIndex:ux_products_sku"`
	UnitSalePrice decimal.Decimal   `json:"unit_sale_price" gorm:"type:numeric;not null"`
	UnitCost      decimal.Decimal   `json:"unit_cost" gorm:"type:numeric;not null"`
	Description   *string           `json:"description,omitempty" gorm:"type:text"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// UnitMargin is the margin earned by selling one unit.
func (p Product) UnitMargin() decimal.Decimal {
	return p.UnitSalePrice.Sub(p.UnitCost)
}
