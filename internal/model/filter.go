package model

import (
	"github.com/shopspring/decimal"
)

// FilterOptions holds the optional filters gathered from the operator.
// Nil pointers mean "no bound requested"; both amount bounds are inclusive.
type FilterOptions struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// HasAmountFilter reports whether at least one amount bound was requested.
func (f FilterOptions) HasAmountFilter() bool {
	return f.MinAmount != nil || f.MaxAmount != nil
}

// FilterSummary accounts for every record removed between parse and analysis.
// FinalCount is always ≤ TotalInput.
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}
