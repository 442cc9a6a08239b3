package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/quillium/salescope/internal/model"
)

const enrichedSheet = "Enriched"

// WriteEnrichedXLSX writes the enriched transactions to an Excel workbook
// with the same columns as the pipe-delimited file. This is an optional
// convenience export; the text file remains the canonical output.
func WriteEnrichedXLSX(path string, enriched []model.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), enrichedSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]any, len(EnrichedHeader))
	for i, col := range EnrichedHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(enrichedSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, tx := range enriched {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}

		fields := EnrichedRow(tx)
		row := make([]any, len(fields))
		for j, field := range fields {
			row[j] = field
		}
		// Quantity and UnitPrice as native numbers so the sheet is usable.
		row[4] = tx.Quantity
		price, _ := tx.UnitPrice.Float64()
		row[5] = price
		row[10] = tx.APIMatch

		if err := f.SetSheetRow(enrichedSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
