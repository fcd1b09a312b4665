// Package stats computes portfolio-level figures over tender summaries. All
// functions are pure; the report service decides precision and presentation.
package stats

import (
	"sort"

	"github.com/shopspring/decimal"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
)

// Distribution counts tenders by the sign of their total margin and carries
// the summed margin of each signed bucket.
type Distribution struct {
	Positive      int
	Negative      int
	Zero          int
	PositiveValue decimal.Decimal
	NegativeValue decimal.Decimal
}

// TotalMargin sums the total margin of every tender. Empty input sums to zero.
func TotalMargin(tenders []tenderdomain.TenderSummary) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tenders {
		total = total.Add(t.TotalMargin)
	}
	return total
}

// AverageMargin is the mean tender margin, zero when there are no tenders.
func AverageMargin(tenders []tenderdomain.TenderSummary) decimal.Decimal {
	if len(tenders) == 0 {
		return decimal.Zero
	}
	return TotalMargin(tenders).Div(decimal.NewFromInt(int64(len(tenders))))
}

// TotalProducts sums the resolved product count of every tender.
func TotalProducts(tenders []tenderdomain.TenderSummary) int {
	var n int
	for _, t := range tenders {
		n += t.ProductCount
	}
	return n
}

// MarginDistribution buckets tenders into profitable, losing and break-even.
// The three counts always add up to len(tenders); PositiveValue and
// NegativeValue sum the margins of their buckets.
func MarginDistribution(tenders []tenderdomain.TenderSummary) Distribution {
	var d Distribution
	for _, t := range tenders {
		switch t.TotalMargin.Sign() {
		case 1:
			d.Positive++
			d.PositiveValue = d.PositiveValue.Add(t.TotalMargin)
		case -1:
			d.Negative++
			d.NegativeValue = d.NegativeValue.Add(t.TotalMargin)
		default:
			d.Zero++
		}
	}
	return d
}

// PercentageOf returns count as a percentage of total, zero when total is zero.
func PercentageOf(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count) * 100).Div(decimal.NewFromInt(int64(total)))
}

// TopPerforming returns up to k tenders with the highest total margin, best
// first. Ties keep their input order. k <= 0 falls back to 5.
func TopPerforming(tenders []tenderdomain.TenderSummary, k int) []tenderdomain.TenderSummary {
	return rank(tenders, k, func(a, b tenderdomain.TenderSummary) bool {
		return a.TotalMargin.GreaterThan(b.TotalMargin)
	})
}

// WorstPerforming returns up to k tenders with the lowest total margin, worst
// first. Ties keep their input order. k <= 0 falls back to 5.
func WorstPerforming(tenders []tenderdomain.TenderSummary, k int) []tenderdomain.TenderSummary {
	return rank(tenders, k, func(a, b tenderdomain.TenderSummary) bool {
		return a.TotalMargin.LessThan(b.TotalMargin)
	})
}

func rank(tenders []tenderdomain.TenderSummary, k int, less func(a, b tenderdomain.TenderSummary) bool) []tenderdomain.TenderSummary {
	if k <= 0 {
		k = 5
	}

	ranked := make([]tenderdomain.TenderSummary, len(tenders))
	copy(ranked, tenders)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// MaxAbsoluteMargin is the largest |total margin| across the given tenders,
// the shared scale for rendering margin bars.
func MaxAbsoluteMargin(tenders []tenderdomain.TenderSummary) decimal.Decimal {
	max := decimal.Zero
	for _, t := range tenders {
		if abs := t.TotalMargin.Abs(); abs.GreaterThan(max) {
			max = abs
		}
	}
	return max
}

// BarWidth scales a margin to a 0-100 width against maxAbs. A zero scale
// yields zero width for every bar.
func BarWidth(m, maxAbs decimal.Decimal) decimal.Decimal {
	if maxAbs.Sign() <= 0 {
		return decimal.Zero
	}
	return m.Abs().Mul(decimal.NewFromInt(100)).Div(maxAbs)
}
