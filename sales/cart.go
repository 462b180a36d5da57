/*
cart.go - The in-memory cart for one checkout session

PURPOSE:
  Collects line items before checkout. A cart is never persisted; it
  lives for a single session and is discarded on Clear or after a
  successful checkout.

SNAPSHOT SEMANTICS:
  AddLine captures the product's name and price at add time. A later
  price change in the catalog does not retroactively reprice the cart;
  quantities, however, are re-validated against the live catalog at
  checkout because stock may have moved since the line was added.

INVARIANT:
  Total is always recomputed from the current lines. There is no cached
  running total to drift.
*/
package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/godsarin/InventoryManagement/inventory"
)

// CartLine is one item in the cart, with name and price snapshotted at
// the moment it was added.
type CartLine struct {
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// Total is the line total: snapshot price times quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart is a transient, per-session collection of line items.
type Cart struct {
	catalog *inventory.Catalog
	lines   []CartLine
}

// NewCart creates an empty cart that validates against catalog.
func NewCart(catalog *inventory.Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// AddLine looks the product up and appends a line for it.
// Fails with:
//   - ErrNotFound if the SKU is unknown
//   - ErrOutOfStock if the product has nothing on hand
//   - ErrInvalidQuantity if quantity is not positive
//   - ErrInsufficientStock if quantity exceeds the current on-hand count
func (c *Cart) AddLine(ctx context.Context, sku string, quantity int64) error {
	p, err := c.catalog.Get(ctx, sku)
	if err != nil {
		return err
	}
	if p.Quantity <= 0 {
		return inventory.ErrOutOfStock
	}
	if quantity <= 0 {
		return inventory.ErrInvalidQuantity
	}
	if quantity > p.Quantity {
		return &inventory.InsufficientStockError{
			SKU:       sku,
			Available: p.Quantity,
			Requested: quantity,
		}
	}
	c.lines = append(c.lines, CartLine{
		SKU:      p.SKU,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: quantity,
	})
	return nil
}

// Lines returns a copy of the current line items, in add order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total sums all line totals. Recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// ChangeDue returns the change owed for a received cash amount:
// received minus the cart total. Negative means the customer still
// owes; the caller decides how to present that.
func (c *Cart) ChangeDue(received decimal.Decimal) decimal.Decimal {
	return received.Sub(c.Total())
}
