// Package validate implements the two-phase validate-then-filter stage.
package validate

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quillium/salescope/internal/model"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Validate decimal.Decimal fields through their float value so the
	// standard numeric tags (gt, gte, ...) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// IsValid reports whether a transaction passes every business rule:
// positive quantity and unit price, T/P/C identifier prefixes, and a
// non-empty region.
func IsValid(tx model.Transaction) bool {
	return structValidator.Struct(tx) == nil
}

// ValidateAndFilter drops invalid transactions, then applies the optional
// region and amount filters in that order. Invalid and filtered records are
// counted, never surfaced as errors.
//
// The returned summary satisfies FinalCount ≤ TotalInput.
func ValidateAndFilter(transactions []model.Transaction, opts model.FilterOptions) ([]model.Transaction, int, model.FilterSummary) {
	summary := model.FilterSummary{TotalInput: len(transactions)}

	valid := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !IsValid(tx) {
			summary.Invalid++
			continue
		}
		valid = append(valid, tx)
	}

	filtered := valid

	if opts.Region != "" {
		before := len(filtered)
		kept := make([]model.Transaction, 0, len(filtered))
		for _, tx := range filtered {
			if tx.Region == opts.Region {
				kept = append(kept, tx)
			}
		}
		filtered = kept
		summary.FilteredByRegion = before - len(filtered)
	}

	if opts.HasAmountFilter() {
		before := len(filtered)
		kept := make([]model.Transaction, 0, len(filtered))
		for _, tx := range filtered {
			amount := tx.Amount()
			if opts.MinAmount != nil && amount.LessThan(*opts.MinAmount) {
				continue
			}
			if opts.MaxAmount != nil && amount.GreaterThan(*opts.MaxAmount) {
				continue
			}
			kept = append(kept, tx)
		}
		filtered = kept
		summary.FilteredByAmount = before - len(filtered)
	}

	summary.FinalCount = len(filtered)

	return filtered, summary.Invalid, summary
}
