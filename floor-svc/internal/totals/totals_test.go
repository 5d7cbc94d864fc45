package totals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"overcooked-floor/floor-svc/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	customizations := []domain.Customization{
		{Price: d("1.50"), Quantity: 2},
		{Price: d("0.75"), Quantity: 1},
	}
	custom := CustomizationsTotal(customizations)

	assert.Equal(t, "3.75", custom.StringFixed(2))
	assert.Equal(t, "28.75", LineTotal(d("12.50"), 2, custom).StringFixed(2))
	assert.True(t, CustomizationsTotal(nil).IsZero())
}

func TestCompute(t *testing.T) {
	voided := time.Now()
	items := []domain.Item{
		{LineTotal: d("20.00")},
		{LineTotal: d("4.99")},
		{LineTotal: d("100.00"), VoidedAt: &voided},
	}

	tests := []struct {
		name        string
		rates       Rates
		wantTax     string
		wantService string
		wantTotal   string
	}{
		{
			name:        "no rates",
			wantTax:     "0.00",
			wantService: "0.00",
			wantTotal:   "24.99",
		},
		{
			name:        "tax only",
			rates:       Rates{TaxRate: d("0.10")},
			wantTax:     "2.50",
			wantService: "0.00",
			wantTotal:   "27.49",
		},
		{
			name:        "tax and service rounded separately",
			rates:       Rates{TaxRate: d("0.0825"), ServiceRate: d("0.18")},
			wantTax:     "2.06",
			wantService: "4.50",
			wantTotal:   "31.55",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := Compute(items, testCase.rates)

			assert.Equal(t, "24.99", got.Subtotal.StringFixed(2))
			assert.Equal(t, testCase.wantTax, got.Tax.StringFixed(2))
			assert.Equal(t, testCase.wantService, got.Service.StringFixed(2))
			assert.Equal(t, testCase.wantTotal, got.Total.StringFixed(2))
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, Rates{TaxRate: d("0.10")})
	assert.True(t, got.Total.IsZero())
}

func TestPaid(t *testing.T) {
	payments := []domain.Payment{
		{Amount: d("10.00"), Tip: d("2.00"), Status: domain.PaymentCompleted},
		{Amount: d("5.00"), Status: domain.PaymentPending},
		{Amount: d("7.00"), Status: domain.PaymentFailed},
		{Amount: d("3.00"), Status: domain.PaymentRefunded},
		{Amount: d("4.50"), Status: domain.PaymentCompleted},
	}

	paid := Paid(payments)

	assert.Equal(t, "14.50", paid.StringFixed(2))
	assert.Equal(t, "5.50", Outstanding(d("20.00"), paid).StringFixed(2))
	assert.Equal(t, "-0.50", Outstanding(d("14.00"), paid).StringFixed(2))
}
