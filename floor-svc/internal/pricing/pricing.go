// Package pricing serves per-location tax and service rates from a YAML file.
package pricing

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"overcooked-floor/floor-svc/internal/totals"
)

type rateEntry struct {
	TaxRate     string `yaml:"tax_rate"`
	ServiceRate string `yaml:"service_rate"`
}

type file struct {
	Default   rateEntry            `yaml:"default"`
	Locations map[string]rateEntry `yaml:"locations"`
}

// Table resolves rates by location, falling back to the default entry.
type Table struct {
	fallback  totals.Rates
	locations map[string]totals.Rates
}

func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode pricing: %w", err)
	}

	fallback, err := f.Default.rates()
	if err != nil {
		return nil, fmt.Errorf("default rates: %w", err)
	}
	table := &Table{fallback: fallback, locations: make(map[string]totals.Rates, len(f.Locations))}
	for location, entry := range f.Locations {
		rates, err := entry.rates()
		if err != nil {
			return nil, fmt.Errorf("rates for %s: %w", location, err)
		}
		table.locations[location] = rates
	}
	return table, nil
}

// Flat returns a table applying the same rates everywhere.
func Flat(rates totals.Rates) *Table {
	return &Table{fallback: rates, locations: map[string]totals.Rates{}}
}

func (t *Table) Rates(_ context.Context, locationID string) (totals.Rates, error) {
	if rates, ok := t.locations[locationID]; ok {
		return rates, nil
	}
	return t.fallback, nil
}

func (e rateEntry) rates() (totals.Rates, error) {
	tax, err := parseRate(e.TaxRate)
	if err != nil {
		return totals.Rates{}, fmt.Errorf("tax_rate: %w", err)
	}
	service, err := parseRate(e.ServiceRate)
	if err != nil {
		return totals.Rates{}, fmt.Errorf("service_rate: %w", err)
	}
	return totals.Rates{TaxRate: tax, ServiceRate: service}, nil
}

// parseRate accepts a fraction between 0 and 1. An empty value means zero.
func parseRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%s is outside [0, 1]", raw)
	}
	return rate, nil
}
