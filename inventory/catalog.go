/*
catalog.go - The product catalog: the one authoritative copy of products

PURPOSE:
  Owns the products table. Every product mutation in the system goes
  through here so exactly one copy exists, in memory briefly and on
  disk durably. Mutations are whole-table read-modify-rewrite cycles:
  load all rows, change one, save all rows.

INVARIANTS:
  - SKU uniqueness at all times (Add rejects duplicates).
  - Insertion order is preserved across save/load.
  - Quantity never negative; field invariants checked on every write.

READ PATHS:
  List, Find and LowStock are display helpers: on a store I/O failure
  they degrade to an empty result rather than failing, so views can
  always render. Get and all mutations surface store errors.
*/
package inventory

import (
	"context"
	"strings"

	"github.com/godsarin/InventoryManagement/tabular"
)

// Catalog provides CRUD and stock-level queries over the products table.
type Catalog struct {
	store tabular.Store
}

// NewCatalog creates a catalog backed by the given store.
func NewCatalog(store tabular.Store) *Catalog {
	return &Catalog{store: store}
}

// =============================================================================
// INTERNAL LOAD/SAVE
// =============================================================================

func (c *Catalog) load(ctx context.Context) ([]Product, error) {
	rows, err := c.store.Load(ctx, ProductsSchema)
	if err != nil {
		return nil, err
	}
	products := make([]Product, len(rows))
	for i, r := range rows {
		products[i] = productFromRow(r)
	}
	return products, nil
}

func (c *Catalog) save(ctx context.Context, products []Product) error {
	rows := make([]tabular.Row, len(products))
	for i, p := range products {
		rows[i] = productToRow(p)
	}
	return c.store.Save(ctx, ProductsSchema, rows)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Add inserts a new product. Fails with ErrDuplicateKey if the SKU is
// already present; the table is unchanged on any failure.
func (c *Catalog) Add(ctx context.Context, p Product) error {
	if err := p.validate(); err != nil {
		return err
	}
	products, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range products {
		if existing.SKU == p.SKU {
			return &DuplicateKeyError{SKU: p.SKU}
		}
	}
	return c.save(ctx, append(products, p))
}

// Update replaces every mutable field of the product with the given
// SKU as a unit. Fails with ErrNotFound if the SKU is absent.
func (c *Catalog) Update(ctx context.Context, sku string, fields Fields) error {
	updated := Product{
		SKU:      sku,
		Name:     fields.Name,
		Category: fields.Category,
		Price:    fields.Price,
		Cost:     fields.Cost,
		Quantity: fields.Quantity,
		Supplier: fields.Supplier,
		MinStock: fields.MinStock,
	}
	if err := updated.validate(); err != nil {
		return err
	}
	products, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i, existing := range products {
		if existing.SKU == sku {
			products[i] = updated
			return c.save(ctx, products)
		}
	}
	return &NotFoundError{SKU: sku}
}

// Remove deletes the product with the given SKU.
// Fails with ErrNotFound if absent.
func (c *Catalog) Remove(ctx context.Context, sku string) error {
	products, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i, existing := range products {
		if existing.SKU == sku {
			return c.save(ctx, append(products[:i:i], products[i+1:]...))
		}
	}
	return &NotFoundError{SKU: sku}
}

// applyDeltas adjusts quantities for several SKUs in one table rewrite.
// All-or-nothing: if any SKU is missing or any resulting quantity would
// go negative, nothing is written. Returns the new quantity per SKU.
// Used by the stock ledger; not part of the public surface.
func (c *Catalog) applyDeltas(ctx context.Context, deltas map[string]int64) (map[string]int64, error) {
	products, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.SKU] = i
	}

	result := make(map[string]int64, len(deltas))
	for sku, delta := range deltas {
		i, ok := index[sku]
		if !ok {
			return nil, &NotFoundError{SKU: sku}
		}
		next := products[i].Quantity + delta
		if next < 0 {
			return nil, &InsufficientStockError{
				SKU:       sku,
				Available: products[i].Quantity,
				Requested: -delta,
			}
		}
		products[i].Quantity = next
		result[sku] = next
	}

	if err := c.save(ctx, products); err != nil {
		return nil, err
	}
	return result, nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Get returns the product with the given SKU.
func (c *Catalog) Get(ctx context.Context, sku string) (Product, error) {
	products, err := c.load(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{SKU: sku}
}

// List returns all products in insertion order.
// Degrades to an empty result on store failure (display helper).
func (c *Catalog) List(ctx context.Context) []Product {
	products, err := c.load(ctx)
	if err != nil {
		return nil
	}
	return products
}

// Find returns products whose name, SKU or category contains the query,
// case-insensitively. Degrades to an empty result on store failure.
func (c *Catalog) Find(ctx context.Context, query string) []Product {
	q := strings.ToLower(query)
	var matches []Product
	for _, p := range c.List(ctx) {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// LowStock returns products at or below their minimum stock threshold.
// Degrades to an empty result on store failure.
func (c *Catalog) LowStock(ctx context.Context) []Product {
	var low []Product
	for _, p := range c.List(ctx) {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}
