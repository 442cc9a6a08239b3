// Package analytics computes descriptive sales analyses over a validated
// transaction set. Every function here is a pure read-only pass: amounts
// accumulate at full precision and are rounded to two decimals only on the
// way out.
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quillium/salescope/internal/model"
)

// Defaults for the parameterized analyses.
const (
	DefaultTopN         = 5
	DefaultLowThreshold = 10
)

var oneHundred = decimal.NewFromInt(100)

// RegionStats summarizes sales for one region.
type RegionStats struct {
	Region           string
	TotalSales       decimal.Decimal
	Percentage       decimal.Decimal
	TransactionCount int
}

// ProductStats summarizes quantity and revenue for one product.
type ProductStats struct {
	Name          string
	TotalRevenue  decimal.Decimal
	TotalQuantity int
}

// CustomerStats summarizes purchasing behavior for one customer.
type CustomerStats struct {
	CustomerID     string
	TotalSpent     decimal.Decimal
	AvgOrderValue  decimal.Decimal
	PurchaseCount  int
	ProductsBought []string
}

// DailyStats summarizes one day of sales.
type DailyStats struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the single highest-revenue date.
type PeakDay struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
}

// TotalRevenue sums all transaction amounts, rounded to two decimals.
func TotalRevenue(transactions []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount())
	}
	return total.Round(2)
}

type regionAcc struct {
	totalSales decimal.Decimal
	count      int
}

// RegionWiseSales groups transactions by region and reports each region's
// sales, transaction count, and share of the grand total. Results are
// ordered by total sales descending; regions with equal totals keep their
// first-seen order.
func RegionWiseSales(transactions []model.Transaction) []RegionStats {
	byRegion := newGroups[regionAcc]()
	grandTotal := decimal.Zero

	for _, tx := range transactions {
		amount := tx.Amount()
		grandTotal = grandTotal.Add(amount)

		acc := byRegion.at(tx.Region)
		acc.totalSales = acc.totalSales.Add(amount)
		acc.count++
	}

	stats := make([]RegionStats, 0, byRegion.len())
	byRegion.each(func(region string, acc *regionAcc) {
		percentage := decimal.Zero
		if !grandTotal.IsZero() {
			percentage = acc.totalSales.Div(grandTotal).Mul(oneHundred)
		}
		stats = append(stats, RegionStats{
			Region:           region,
			TotalSales:       acc.totalSales.Round(2),
			Percentage:       percentage.Round(2),
			TransactionCount: acc.count,
		})
	})

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales.GreaterThan(stats[j].TotalSales)
	})

	return stats
}

type productAcc struct {
	revenue  decimal.Decimal
	quantity int
}

func productTotals(transactions []model.Transaction) *groups[productAcc] {
	byProduct := newGroups[productAcc]()
	for _, tx := range transactions {
		acc := byProduct.at(tx.ProductName)
		acc.quantity += tx.Quantity
		acc.revenue = acc.revenue.Add(tx.Amount())
	}
	return byProduct
}

// TopSellingProducts returns the n products with the highest total quantity
// sold, quantity descending. Ties keep first-seen order. A negative n yields
// an empty result.
func TopSellingProducts(transactions []model.Transaction, n int) []ProductStats {
	if n < 0 {
		n = 0
	}

	byProduct := productTotals(transactions)

	stats := make([]ProductStats, 0, byProduct.len())
	byProduct.each(func(name string, acc *productAcc) {
		stats = append(stats, ProductStats{
			Name:          name,
			TotalQuantity: acc.quantity,
			TotalRevenue:  acc.revenue.Round(2),
		})
	})

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})

	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns products whose total quantity sold is below
// threshold, quantity ascending.
func LowPerformingProducts(transactions []model.Transaction, threshold int) []ProductStats {
	byProduct := productTotals(transactions)

	var low []ProductStats
	byProduct.each(func(name string, acc *productAcc) {
		if acc.quantity < threshold {
			low = append(low, ProductStats{
				Name:          name,
				TotalQuantity: acc.quantity,
				TotalRevenue:  acc.revenue.Round(2),
			})
		}
	})

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

type customerAcc struct {
	totalSpent decimal.Decimal
	products   map[string]struct{}
	count      int
}

// CustomerAnalysis groups transactions by customer and reports spend,
// purchase count, average order value, and the sorted distinct products
// bought. Customers with blank IDs are excluded; results are ordered by
// total spent descending.
func CustomerAnalysis(transactions []model.Transaction) []CustomerStats {
	byCustomer := newGroups[customerAcc]()

	for _, tx := range transactions {
		customerID := strings.TrimSpace(tx.CustomerID)
		if customerID == "" {
			continue
		}

		acc := byCustomer.at(customerID)
		if acc.products == nil {
			acc.products = make(map[string]struct{})
		}
		acc.totalSpent = acc.totalSpent.Add(tx.Amount())
		acc.count++
		acc.products[tx.ProductName] = struct{}{}
	}

	stats := make([]CustomerStats, 0, byCustomer.len())
	byCustomer.each(func(customerID string, acc *customerAcc) {
		products := make([]string, 0, len(acc.products))
		for p := range acc.products {
			products = append(products, p)
		}
		sort.Strings(products)

		stats = append(stats, CustomerStats{
			CustomerID:     customerID,
			TotalSpent:     acc.totalSpent.Round(2),
			PurchaseCount:  acc.count,
			AvgOrderValue:  acc.totalSpent.Div(decimal.NewFromInt(int64(acc.count))).Round(2),
			ProductsBought: products,
		})
	})

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
	})

	return stats
}

type dailyAcc struct {
	revenue   decimal.Decimal
	customers map[string]struct{}
	count     int
}

// DailySalesTrend groups transactions by date and reports revenue,
// transaction count, and distinct customers per day, chronologically
// ascending.
func DailySalesTrend(transactions []model.Transaction) []DailyStats {
	byDate := newGroups[dailyAcc]()

	for _, tx := range transactions {
		acc := byDate.at(tx.Date)
		if acc.customers == nil {
			acc.customers = make(map[string]struct{})
		}
		acc.revenue = acc.revenue.Add(tx.Amount())
		acc.count++
		acc.customers[tx.CustomerID] = struct{}{}
	}

	stats := make([]DailyStats, 0, byDate.len())
	byDate.each(func(date string, acc *dailyAcc) {
		stats = append(stats, DailyStats{
			Date:             date,
			Revenue:          acc.revenue.Round(2),
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	})

	// ISO dates sort chronologically as strings.
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// FindPeakSalesDay returns the date with the highest total revenue, or nil
// for an empty input. When two dates tie, the one seen first in the input
// wins (comparison is strict, scanning in first-seen order).
func FindPeakSalesDay(transactions []model.Transaction) *PeakDay {
	byDate := newGroups[dailyAcc]()

	for _, tx := range transactions {
		acc := byDate.at(tx.Date)
		acc.revenue = acc.revenue.Add(tx.Amount())
		acc.count++
	}

	var peak *PeakDay
	peakRevenue := decimal.Zero
	byDate.each(func(date string, acc *dailyAcc) {
		if acc.revenue.GreaterThan(peakRevenue) {
			peakRevenue = acc.revenue
			peak = &PeakDay{
				Date:             date,
				Revenue:          acc.revenue.Round(2),
				TransactionCount: acc.count,
			}
		}
	})

	return peak
}
