package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Report aggregates every tender into a single portfolio snapshot.
	Report(ctx context.Context) (*Report, error)
}

// DistributionReport splits the portfolio by margin sign, each bucket with its
// share of the whole. The profitable and losing buckets also carry the summed
// margin of their tenders.
type DistributionReport struct {
	Profitable        int             `json:"profitable"`
	ProfitablePercent decimal.Decimal `json:"profitable_percent"`
	ProfitableValue   decimal.Decimal `json:"profitable_value"`
	Losing            int             `json:"losing"`
	LosingPercent     decimal.Decimal `json:"losing_percent"`
	LosingValue       decimal.Decimal `json:"losing_value"`
	BreakEven         int             `json:"break_even"`
	BreakEvenPercent  decimal.Decimal `json:"break_even_percent"`
}

// RankedTender is one row of the top or worst ranking. BarWidth is the bar
// length on a 0-100 scale shared across both rankings.
type RankedTender struct {
	ID          string          `json:"id"`
	Client      string          `json:"client"`
	AwardDate   time.Time       `json:"award_date"`
	TotalMargin decimal.Decimal `json:"total_margin"`
	BarWidth    decimal.Decimal `json:"bar_width"`
}

type Report struct {
	TenderCount   int                `json:"tender_count"`
	ProductCount  int                `json:"product_count"`
	TotalMargin   decimal.Decimal    `json:"total_margin"`
	AverageMargin decimal.Decimal    `json:"average_margin"`
	Distribution  DistributionReport `json:"distribution"`
	Top           []RankedTender     `json:"top"`
	Worst         []RankedTender     `json:"worst"`
	// HasLosses tells renderers whether a worst ranking is worth showing.
	HasLosses   bool      `json:"has_losses"`
	GeneratedAt time.Time `json:"generated_at"`
}
