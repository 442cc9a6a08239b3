// Package enrich joins validated transactions against the product catalog.
package enrich

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/quillium/salescope/internal/catalog"
	"github.com/quillium/salescope/internal/model"
)

// numericID extracts the concatenated digits of a product ID, e.g.
// "P102" → 102. ok is false when the ID contains no digits.
func numericID(productID string) (int, bool) {
	var digits strings.Builder
	for _, r := range productID {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	id, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return id, true
}

// Enrich tags each transaction with catalog metadata. Matching tries the
// numeric product ID first, then falls back to a case-insensitive substring
// match between the transaction's product name and catalog titles, scanning
// the catalog in response order; the first hit wins. Unmatched transactions
// are carried through with APIMatch=false. This stage never fails.
func Enrich(transactions []model.Transaction, mapping *catalog.Mapping) []model.EnrichedTransaction {
	enriched := make([]model.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		info, matched := match(tx, mapping)

		row := model.EnrichedTransaction{Transaction: tx, APIMatch: matched}
		if matched {
			row.APICategory = info.Category
			row.APIBrand = info.Brand
		}
		enriched = append(enriched, row)
	}

	return enriched
}

func match(tx model.Transaction, mapping *catalog.Mapping) (catalog.ProductInfo, bool) {
	if mapping == nil {
		return catalog.ProductInfo{}, false
	}

	if id, ok := numericID(tx.ProductID); ok {
		if info, found := mapping.Lookup(id); found {
			return info, true
		}
	}

	name := strings.ToLower(tx.ProductName)
	return mapping.Scan(func(_ int, info catalog.ProductInfo) bool {
		title := strings.ToLower(info.Title)
		return strings.Contains(name, title) || strings.Contains(title, name)
	})
}
