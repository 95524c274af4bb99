package entity

import (
	"github.com/shopspring/decimal"
)

// ProductSales aggregates the units and revenue of one product across orders.
type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesReport summarises the order history.
type SalesReport struct {
	OrderCount   int             `json:"order_count"`
	UnitsSold    int             `json:"units_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Products     []ProductSales  `json:"products"` // In order of first sale.
}

// BuildSalesReport aggregates revenue from the order line items, using the prices
// captured at order time. Tax is not counted as revenue.
func BuildSalesReport(records []*OrderRecord) *SalesReport {
	report := &SalesReport{TotalRevenue: decimal.Zero}
	index := make(map[string]int)

	for _, record := range records {
		if record == nil || record.Order == nil {
			continue
		}
		report.OrderCount++
		for _, item := range record.Order.Items {
			lineTotal := item.LineTotal()
			report.UnitsSold += item.Quantity
			report.TotalRevenue = report.TotalRevenue.Add(lineTotal)

			i, ok := index[item.ProductID]
			if !ok {
				i = len(report.Products)
				index[item.ProductID] = i
				report.Products = append(report.Products, ProductSales{
					ProductID: item.ProductID,
					Name:      item.Name,
					Revenue:   decimal.Zero,
				})
			}
			report.Products[i].UnitsSold += item.Quantity
			report.Products[i].Revenue = report.Products[i].Revenue.Add(lineTotal)
		}
	}

	return report
}
