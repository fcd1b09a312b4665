package margin

import (
	"testing"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	"github.com/stretchr/testify/require"
)

func newProduct(price, cost string) productdomain.Product {
	return productdomain.Product{
		ID:            1,
		Name:          "Office Chair",
		SKU:           "CHAIR-001",
		UnitSalePrice: decimal.RequireFromString(price),
		UnitCost:      decimal.RequireFromString(cost),
	}
}

func TestOrderMargin(t *testing.T) {
	p := newProduct("150", "100")

	got := OrderMargin(p, 10)
	require.True(t, got.Equal(decimal.NewFromInt(500)), "got %s", got)
}

func TestOrderMarginNegative(t *testing.T) {
	p := newProduct("80", "100")

	got := OrderMargin(p, 5)
	require.True(t, got.Equal(decimal.NewFromInt(-100)), "got %s", got)
}

func TestOrderMarginZeroQuantity(t *testing.T) {
	p := newProduct("150", "100")

	require.True(t, OrderMargin(p, 0).IsZero())
}

func TestOrderMarginFractionalPrices(t *testing.T) {
	p := newProduct("10.25", "9.75")

	got := OrderMargin(p, 4)
	require.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func TestTotalEmpty(t *testing.T) {
	require.True(t, Total(nil).IsZero())
	require.True(t, Total([]Line{}).IsZero())
}

func TestTotalOrderIndependent(t *testing.T) {
	chair := newProduct("150", "100")
	laptop := newProduct("1200", "800")
	desk := newProduct("90", "100")

	lines := []Line{
		NewLine(1, chair, 10),
		NewLine(2, laptop, 2),
		NewLine(3, desk, 5),
	}
	reversed := []Line{lines[2], lines[0], lines[1]}

	want := decimal.NewFromInt(500 + 800 - 50)
	require.True(t, Total(lines).Equal(want), "got %s", Total(lines))
	require.True(t, Total(reversed).Equal(Total(lines)))
}

func TestNewLineCarriesMargin(t *testing.T) {
	p := newProduct("150", "100")

	line := NewLine(42, p, 3)
	require.Equal(t, int64(42), line.OrderID)
	require.Equal(t, int64(3), line.Quantity)
	require.True(t, line.Margin.Equal(decimal.NewFromInt(150)))
}
