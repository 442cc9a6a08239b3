// Package report renders the analysis results into the report document and
// the enriched data outputs.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillium/salescope/internal/analytics"
	"github.com/quillium/salescope/internal/model"
)

const ruleWidth = 44

// Composer renders the full sales report. It recomputes every aggregate from
// the transaction set it is given, so the report is always self-consistent
// regardless of what the caller computed earlier.
type Composer struct {
	// Clock supplies the generation timestamp; defaults to time.Now.
	Clock func() time.Time
	// Currency is the glyph prefixed to money values.
	Currency string
	// TopN bounds the product and customer tables.
	TopN int
	// LowThreshold is the quantity below which a product is low-performing.
	LowThreshold int
}

// NewComposer returns a Composer with the standard defaults.
func NewComposer(currency string) *Composer {
	return &Composer{
		Clock:        time.Now,
		Currency:     currency,
		TopN:         analytics.DefaultTopN,
		LowThreshold: analytics.DefaultLowThreshold,
	}
}

func (c *Composer) money(d decimal.Decimal, places int32) string {
	return c.Currency + formatAmount(d, places)
}

// Compose builds the report document from the validated transactions and the
// enriched rows. An empty transaction set still yields a complete report
// with an "N/A" date range.
func (c *Composer) Compose(transactions []model.Transaction, enriched []model.EnrichedTransaction) string {
	var b strings.Builder

	totalTransactions := len(transactions)
	totalRevenue := analytics.TotalRevenue(transactions)

	avgOrderValue := decimal.Zero
	if totalTransactions > 0 {
		avgOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(totalTransactions))).Round(2)
	}

	dateRange := "N/A"
	if totalTransactions > 0 {
		first, last := transactions[0].Date, transactions[0].Date
		for _, tx := range transactions[1:] {
			if tx.Date < first {
				first = tx.Date
			}
			if tx.Date > last {
				last = tx.Date
			}
		}
		dateRange = fmt.Sprintf("%s to %s", first, last)
	}

	regionStats := analytics.RegionWiseSales(transactions)
	topProducts := analytics.TopSellingProducts(transactions, c.TopN)
	customerStats := analytics.CustomerAnalysis(transactions)
	dailyStats := analytics.DailySalesTrend(transactions)
	peakDay := analytics.FindPeakSalesDay(transactions)
	lowProducts := analytics.LowPerformingProducts(transactions, c.LowThreshold)

	matched := 0
	for _, row := range enriched {
		if row.APIMatch {
			matched++
		}
	}
	matchRate := decimal.Zero
	if len(enriched) > 0 {
		matchRate = decimal.NewFromInt(int64(matched)).
			Div(decimal.NewFromInt(int64(len(enriched)))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	unmatched := unmatchedProducts(enriched)

	rule := strings.Repeat("=", ruleWidth)
	section := strings.Repeat("-", ruleWidth)

	// Header.
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "           SALES ANALYTICS REPORT\n")
	fmt.Fprintf(&b, "     Generated: %s\n", c.Clock().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "     Records Processed: %d\n", totalTransactions)
	fmt.Fprintf(&b, "%s\n\n", rule)

	// Overall summary.
	fmt.Fprintf(&b, "OVERALL SUMMARY\n%s\n", section)
	fmt.Fprintf(&b, "Total Revenue:        %s\n", c.money(totalRevenue, 2))
	fmt.Fprintf(&b, "Total Transactions:   %d\n", totalTransactions)
	fmt.Fprintf(&b, "Average Order Value:  %s\n", c.money(avgOrderValue, 2))
	fmt.Fprintf(&b, "Date Range:           %s\n\n", dateRange)

	// Region table.
	fmt.Fprintf(&b, "REGION-WISE PERFORMANCE\n%s\n", section)
	fmt.Fprintf(&b, "%-10s%-15s%-12s%s\n", "Region", "Sales", "% of Total", "Transactions")
	for _, rs := range regionStats {
		fmt.Fprintf(&b, "%-10s%s     %6s%%      %d\n",
			rs.Region, c.money(rs.TotalSales, 0), rs.Percentage.StringFixed(2), rs.TransactionCount)
	}
	b.WriteString("\n")

	// Top products.
	fmt.Fprintf(&b, "TOP %d PRODUCTS\n%s\n", c.TopN, section)
	fmt.Fprintf(&b, "Rank  Product                Quantity   Revenue\n")
	for i, p := range topProducts {
		fmt.Fprintf(&b, "%-5d %-22s %-10d %s\n", i+1, p.Name, p.TotalQuantity, c.money(p.TotalRevenue, 2))
	}
	b.WriteString("\n")

	// Top customers.
	fmt.Fprintf(&b, "TOP %d CUSTOMERS\n%s\n", c.TopN, section)
	fmt.Fprintf(&b, "Rank  CustomerID   Total Spent   Orders\n")
	for i, cs := range customerStats {
		if i >= c.TopN {
			break
		}
		fmt.Fprintf(&b, "%-5d %-12s %s   %d\n", i+1, cs.CustomerID, c.money(cs.TotalSpent, 2), cs.PurchaseCount)
	}
	b.WriteString("\n")

	// Daily trend.
	fmt.Fprintf(&b, "DAILY SALES TREND\n%s\n", section)
	fmt.Fprintf(&b, "Date         Revenue        Transactions  Customers\n")
	for _, ds := range dailyStats {
		fmt.Fprintf(&b, "%s   %s      %-13d %d\n",
			ds.Date, c.money(ds.Revenue, 2), ds.TransactionCount, ds.UniqueCustomers)
	}
	b.WriteString("\n")

	// Product performance.
	fmt.Fprintf(&b, "PRODUCT PERFORMANCE ANALYSIS\n%s\n", section)
	if peakDay != nil {
		fmt.Fprintf(&b, "Best Selling Day: %s (%s, %d transactions)\n\n",
			peakDay.Date, c.money(peakDay.Revenue, 2), peakDay.TransactionCount)
	} else {
		fmt.Fprintf(&b, "Best Selling Day: N/A\n\n")
	}

	if len(lowProducts) > 0 {
		b.WriteString("Low Performing Products:\n")
		for _, p := range lowProducts {
			fmt.Fprintf(&b, "- %s: %d units, %s\n", p.Name, p.TotalQuantity, c.money(p.TotalRevenue, 2))
		}
	} else {
		b.WriteString("No low performing products.\n")
	}
	b.WriteString("\n")

	// Enrichment summary.
	fmt.Fprintf(&b, "API ENRICHMENT SUMMARY\n%s\n", section)
	fmt.Fprintf(&b, "Total Records Enriched: %d\n", matched)
	fmt.Fprintf(&b, "Success Rate: %s%%\n", matchRate.StringFixed(2))
	b.WriteString("Unmatched Products:\n")
	for _, name := range unmatched {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	return b.String()
}

// unmatchedProducts returns the sorted distinct product names that failed
// enrichment.
func unmatchedProducts(enriched []model.EnrichedTransaction) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, row := range enriched {
		if row.APIMatch {
			continue
		}
		if _, ok := seen[row.ProductName]; ok {
			continue
		}
		seen[row.ProductName] = struct{}{}
		names = append(names, row.ProductName)
	}
	sort.Strings(names)
	return names
}

// WriteReport writes the report document, creating the output directory if
// needed.
func WriteReport(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
