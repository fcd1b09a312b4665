// Package margin holds the margin arithmetic shared by tender rollups and
// portfolio reporting. Everything here is a pure function over snapshots;
// rounding and currency formatting stay with the callers.
package margin

import (
	"github.com/shopspring/decimal"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
)

// Line is one resolved order line: the ordered product snapshot, the awarded
// quantity and the margin it contributes.
type Line struct {
	OrderID  int64
	Product  productdomain.Product
	Quantity int64
	Margin   decimal.Decimal
}

// OrderMargin returns (unit sale price - unit cost) x quantity. The result is
// negative when the product sells below cost; a zero quantity contributes
// nothing rather than failing.
func OrderMargin(product productdomain.Product, quantity int64) decimal.Decimal {
	return product.UnitMargin().Mul(decimal.NewFromInt(quantity))
}

// NewLine builds a Line with its margin computed.
func NewLine(orderID int64, product productdomain.Product, quantity int64) Line {
	return Line{
		OrderID:  orderID,
		Product:  product,
		Quantity: quantity,
		Margin:   OrderMargin(product, quantity),
	}
}

// Total sums the margins of the given lines. The empty sum is zero, and the
// result does not depend on line order.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Margin)
	}
	return total
}
