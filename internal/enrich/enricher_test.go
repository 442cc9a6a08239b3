package enrich

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillium/salescope/internal/catalog"
	"github.com/quillium/salescope/internal/model"
)

func tx(productID, productName string) model.Transaction {
	return model.Transaction{
		TransactionID: "T001",
		Date:          "2024-01-01",
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(10),
		CustomerID:    "C001",
		Region:        "North",
	}
}

func testMapping() *catalog.Mapping {
	return catalog.NewMapping([]catalog.Product{
		{ID: 100, Title: "Phone", Category: "smartphones", Brand: "Apple"},
		{ID: 101, Title: "Laptop", Category: "laptops", Brand: "Acme"},
		{ID: 102, Title: "Gaming Mouse", Category: "peripherals", Brand: "Logi"},
	})
}

func TestNumericID(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		want      int
		wantOK    bool
	}{
		{name: "standard prefix", productID: "P102", want: 102, wantOK: true},
		{name: "digits scattered", productID: "P1X0Y2", want: 102, wantOK: true},
		{name: "no digits", productID: "PXYZ", wantOK: false},
		{name: "empty", productID: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericID(tt.productID)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	tests := []struct {
		name         string
		tx           model.Transaction
		wantMatch    bool
		wantCategory string
		wantBrand    string
	}{
		{
			name:         "match by numeric ID",
			tx:           tx("P100", "Some Phone Thing"),
			wantMatch:    true,
			wantCategory: "smartphones",
			wantBrand:    "Apple",
		},
		{
			name:         "fallback: catalog title contained in product name",
			tx:           tx("P999", "Laptop Pro Max"),
			wantMatch:    true,
			wantCategory: "laptops",
			wantBrand:    "Acme",
		},
		{
			name:         "fallback: product name contained in catalog title",
			tx:           tx("P999", "mouse"),
			wantMatch:    true,
			wantCategory: "peripherals",
			wantBrand:    "Logi",
		},
		{
			name:      "no match leaves metadata absent",
			tx:        tx("P999", "Standing Desk"),
			wantMatch: false,
		},
		{
			name:         "no numeric ID falls through to name match",
			tx:           tx("PXX", "Phone"),
			wantMatch:    true,
			wantCategory: "smartphones",
			wantBrand:    "Apple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enriched := Enrich([]model.Transaction{tt.tx}, testMapping())
			require.Len(t, enriched, 1)

			row := enriched[0]
			assert.Equal(t, tt.wantMatch, row.APIMatch)
			assert.Equal(t, tt.wantCategory, row.APICategory)
			assert.Equal(t, tt.wantBrand, row.APIBrand)
			assert.Equal(t, tt.tx.TransactionID, row.TransactionID)
		})
	}
}

func TestEnrichFallbackFirstMatchWins(t *testing.T) {
	mapping := catalog.NewMapping([]catalog.Product{
		{ID: 1, Title: "Pro", Category: "first", Brand: "one"},
		{ID: 2, Title: "Laptop Pro", Category: "second", Brand: "two"},
	})

	enriched := Enrich([]model.Transaction{tx("P999", "Laptop Pro")}, mapping)
	require.Len(t, enriched, 1)
	// Both titles match; the earlier catalog entry wins.
	assert.Equal(t, "first", enriched[0].APICategory)
}

func TestEnrichPreservesOrderAndLength(t *testing.T) {
	input := []model.Transaction{
		tx("P100", "Phone"),
		tx("P999", "Standing Desk"),
		tx("P101", "Laptop"),
	}

	enriched := Enrich(input, testMapping())
	require.Len(t, enriched, len(input))
	for i := range input {
		assert.Equal(t, input[i].ProductID, enriched[i].ProductID)
	}
	assert.True(t, enriched[0].APIMatch)
	assert.False(t, enriched[1].APIMatch)
	assert.True(t, enriched[2].APIMatch)
}

func TestEnrichEmptyMapping(t *testing.T) {
	enriched := Enrich([]model.Transaction{tx("P100", "Phone")}, catalog.NewMapping(nil))
	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].APIMatch)
}
