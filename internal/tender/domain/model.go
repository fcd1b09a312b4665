package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Tender is a client award record that products are committed against.
type Tender struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	Client      string            `json:"client" gorm:"type:text;not null"`
	AwardDate   time.Time         `json:"award_date" gorm:"not null"`
	Description *string           `json:"description,omitempty" gorm:"type:text"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Tender) TableName() string { return "tenders" }
