package ingest

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quillium/salescope/internal/model"
)

// fieldCount is the exact number of pipe-delimited fields per record line.
const fieldCount = 8

// ParseLine parses one raw line into a Transaction. The second return value
// is false when the line is structurally malformed (wrong field count or a
// numeric field that fails to parse); such lines are dropped silently.
func ParseLine(line string) (model.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return model.Transaction{}, false
	}

	// Commas act as thousands separators in the numeric fields and stray
	// delimiters in product names; strip them before parsing. Numeric fields
	// may also carry padding around the digits.
	productName := strings.ReplaceAll(parts[3], ",", "")

	quantity, err := strconv.Atoi(numericField(parts[4]))
	if err != nil {
		return model.Transaction{}, false
	}

	unitPrice, err := decimal.NewFromString(numericField(parts[5]))
	if err != nil {
		return model.Transaction{}, false
	}

	return model.Transaction{
		TransactionID: parts[0],
		Date:          parts[1],
		ProductID:     parts[2],
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    parts[6],
		Region:        parts[7],
	}, true
}

func numericField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// ParseTransactions parses raw lines into transactions, preserving input
// order. Malformed lines are skipped; this stage never fails.
func ParseTransactions(lines []string) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(lines))
	for _, line := range lines {
		if tx, ok := ParseLine(line); ok {
			transactions = append(transactions, tx)
		}
	}
	return transactions
}
