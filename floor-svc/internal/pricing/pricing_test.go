package pricing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overcooked-floor/floor-svc/internal/totals"
)

const sample = `
default:
  tax_rate: "0.10"
locations:
  downtown:
    tax_rate: "0.08"
    service_rate: "0.125"
`

func TestParse(t *testing.T) {
	table, err := Parse([]byte(sample))
	require.NoError(t, err)

	tests := []struct {
		name        string
		location    string
		wantTax     string
		wantService string
	}{
		{name: "configured location", location: "downtown", wantTax: "0.08", wantService: "0.125"},
		{name: "falls back to default", location: "airport", wantTax: "0.1", wantService: "0"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rates, err := table.Rates(context.Background(), testCase.location)
			require.NoError(t, err)
			assert.True(t, rates.TaxRate.Equal(decimal.RequireFromString(testCase.wantTax)), rates.TaxRate.String())
			assert.True(t, rates.ServiceRate.Equal(decimal.RequireFromString(testCase.wantService)), rates.ServiceRate.String())
		})
	}
}

func TestParseRejectsBadRates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not a number", body: "default:\n  tax_rate: ten\n"},
		{name: "negative", body: "default:\n  tax_rate: \"-0.1\"\n"},
		{name: "above one", body: "locations:\n  x:\n    service_rate: \"1.5\"\n"},
		{name: "malformed yaml", body: "default: [\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Parse([]byte(testCase.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	rates, err := table.Rates(context.Background(), "downtown")
	require.NoError(t, err)
	assert.Equal(t, "0.08", rates.TaxRate.String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFlat(t *testing.T) {
	table := Flat(totals.Rates{TaxRate: decimal.RequireFromString("0.2")})
	rates, err := table.Rates(context.Background(), "anywhere")
	require.NoError(t, err)
	assert.Equal(t, "0.2", rates.TaxRate.String())
	assert.True(t, rates.ServiceRate.IsZero())
}
