/*
types.go - Product record and its table schema

PURPOSE:
  Product is the single authoritative shape of a catalog entry. The
  on-disk table keeps the column names the reference data files use
  (SKU, Product_Name, ...), so existing spreadsheets export cleanly.

OWNERSHIP:
  Products are owned by the Catalog. The stock ledger and the sales
  engine refer to them by SKU only; they never hold copies that can
  drift from the persisted table.
*/
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/godsarin/InventoryManagement/tabular"
)

// ProductsSchema describes the persisted products table.
var ProductsSchema = tabular.Schema{
	Name: "products",
	Columns: []tabular.Column{
		{Name: "SKU", Type: tabular.ColumnString},
		{Name: "Product_Name", Type: tabular.ColumnString},
		{Name: "Category", Type: tabular.ColumnString},
		{Name: "Price", Type: tabular.ColumnCurrency},
		{Name: "Cost", Type: tabular.ColumnCurrency},
		{Name: "Quantity", Type: tabular.ColumnInteger},
		{Name: "Supplier", Type: tabular.ColumnString},
		{Name: "Min_Stock", Type: tabular.ColumnInteger},
	},
}

// Product is one catalog entry. SKU is the unique key and is immutable
// after creation; Quantity only changes through stock adjustments.
type Product struct {
	SKU      string
	Name     string
	Category string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Quantity int64
	Supplier string
	MinStock int64
}

// Fields holds every mutable product attribute, i.e. everything but the
// SKU. Catalog.Update replaces them as a unit.
type Fields struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Quantity int64
	Supplier string
	MinStock int64
}

// IsLowStock reports whether the product is at or below its minimum
// stock threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// validate enforces the field invariants shared by Add and Update.
func (p Product) validate() error {
	switch {
	case p.SKU == "":
		return &InvalidProductError{Field: "SKU", Reason: "must not be empty"}
	case p.Name == "":
		return &InvalidProductError{Field: "Name", Reason: "must not be empty"}
	case p.Price.IsNegative():
		return &InvalidProductError{Field: "Price", Reason: "must not be negative"}
	case p.Cost.IsNegative():
		return &InvalidProductError{Field: "Cost", Reason: "must not be negative"}
	case p.Quantity < 0:
		return &InvalidProductError{Field: "Quantity", Reason: "must not be negative"}
	case p.MinStock < 0:
		return &InvalidProductError{Field: "MinStock", Reason: "must not be negative"}
	}
	return nil
}

// =============================================================================
// ROW CODEC
// =============================================================================

func productToRow(p Product) tabular.Row {
	return tabular.Row{
		"SKU":          p.SKU,
		"Product_Name": p.Name,
		"Category":     p.Category,
		"Price":        p.Price,
		"Cost":         p.Cost,
		"Quantity":     p.Quantity,
		"Supplier":     p.Supplier,
		"Min_Stock":    p.MinStock,
	}
}

func productFromRow(r tabular.Row) Product {
	return Product{
		SKU:      r.String("SKU"),
		Name:     r.String("Product_Name"),
		Category: r.String("Category"),
		Price:    r.Currency("Price"),
		Cost:     r.Currency("Cost"),
		Quantity: r.Int("Quantity"),
		Supplier: r.String("Supplier"),
		MinStock: r.Int("Min_Stock"),
	}
}
