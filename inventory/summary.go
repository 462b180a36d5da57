// summary.go - dashboard-style aggregate counts over the catalog.

package inventory

import "context"

// Summary holds the catalog-level dashboard figures.
type Summary struct {
	TotalProducts int   `json:"total_products"`
	TotalUnits    int64 `json:"total_units"`
	LowStockItems int   `json:"low_stock_items"`
}

// Summary computes aggregate counts in one pass over the catalog.
// Like the other display helpers, it degrades to zeros on store failure.
func (c *Catalog) Summary(ctx context.Context) Summary {
	var s Summary
	for _, p := range c.List(ctx) {
		s.TotalProducts++
		s.TotalUnits += p.Quantity
		if p.IsLowStock() {
			s.LowStockItems++
		}
	}
	return s
}
