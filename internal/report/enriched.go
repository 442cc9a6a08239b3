package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quillium/salescope/internal/model"
)

// EnrichedHeader is the column header of the enriched data file.
var EnrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Match",
}

// EnrichedRow renders one enriched transaction as its pipe-delimited fields.
// Absent category/brand render as empty strings; the match flag renders as
// "true"/"false".
func EnrichedRow(tx model.EnrichedTransaction) []string {
	return []string{
		tx.TransactionID,
		tx.Date,
		tx.ProductID,
		tx.ProductName,
		strconv.Itoa(tx.Quantity),
		tx.UnitPrice.String(),
		tx.CustomerID,
		tx.Region,
		tx.APICategory,
		tx.APIBrand,
		strconv.FormatBool(tx.APIMatch),
	}
}

// WriteEnriched writes the enriched transactions as a pipe-delimited file,
// one row per transaction in input order, overwriting any previous file.
func WriteEnriched(path string, enriched []model.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(EnrichedHeader, "|"))
	b.WriteByte('\n')
	for _, tx := range enriched {
		b.WriteString(strings.Join(EnrichedRow(tx), "|"))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write enriched data: %w", err)
	}
	return nil
}
