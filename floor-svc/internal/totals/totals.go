// Package totals recomputes wave and session money aggregates from item rows.
package totals

import (
	"github.com/shopspring/decimal"

	"overcooked-floor/floor-svc/internal/domain"
)

// Rates are the per-location multipliers applied on top of the item subtotal.
type Rates struct {
	TaxRate     decimal.Decimal
	ServiceRate decimal.Decimal
}

func CustomizationsTotal(customizations []domain.Customization) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range customizations {
		sum = sum.Add(c.Price.Mul(decimal.NewFromInt(int64(c.Quantity))))
	}
	return sum
}

func LineTotal(price decimal.Decimal, quantity int, customizationsTotal decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Add(customizationsTotal)
}

// Compute sums the line totals of non-voided items and applies rates.
// Tax and service are rounded to cents independently.
func Compute(items []domain.Item, rates Rates) domain.Totals {
	subtotal := decimal.Zero
	for i := range items {
		if items[i].Voided() {
			continue
		}
		subtotal = subtotal.Add(items[i].LineTotal)
	}
	tax := subtotal.Mul(rates.TaxRate).Round(2)
	service := subtotal.Mul(rates.ServiceRate).Round(2)
	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Service:  service,
		Total:    subtotal.Add(tax).Add(service),
	}
}

// Paid is the amount settled by completed payments. Tips never count against the balance.
func Paid(payments []domain.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Status == domain.PaymentCompleted {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

func Outstanding(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}
