// Package model defines the core domain types for the sales analytics pipeline.
package model

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a single parsed sales record from the input file.
//
// Validation tags mirror the business rules: identifiers carry fixed
// prefixes, quantity and unit price are strictly positive, and a region is
// always present. UnitPrice is validated through a registered decimal type
// func (see internal/validate).
type Transaction struct {
	TransactionID string          `validate:"startswith=T"`
	Date          string          // ISO-like YYYY-MM-DD; lexicographic order is chronological
	ProductID     string          `validate:"startswith=P"`
	ProductName   string          // commas already stripped by the parser
	Quantity      int             `validate:"gt=0"`
	UnitPrice     decimal.Decimal `validate:"gt=0"`
	CustomerID    string          `validate:"startswith=C"`
	Region        string          `validate:"required"`
}

// Amount returns Quantity × UnitPrice at full precision.
func (t Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// EnrichedTransaction is a Transaction tagged with product metadata from the
// remote catalog. One is produced per validated transaction, in order.
type EnrichedTransaction struct {
	Transaction

	APICategory string
	APIBrand    string
	APIMatch    bool
}
