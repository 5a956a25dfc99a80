package service

import (
	"github.com/shopspring/decimal"

	"posadmin/pkg/domain/model"
)

// DefaultTaxRate matches the dashboard's 13% line.
var DefaultTaxRate = decimal.NewFromFloat(0.13)

// ComputeTotals derives subtotal, tax and total from the cart lines. It is a
// pure projection and must be recomputed on every cart change, never patched
// incrementally. No rounding happens here; two-decimal rounding is applied at
// display time only.
func ComputeTotals(lines []model.CartLine, taxRate decimal.Decimal) model.OrderTotals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	tax := subtotal.Mul(taxRate)
	return model.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
