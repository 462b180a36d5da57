/*
stock.go - Signed stock adjustments over the catalog

PURPOSE:
  The stock ledger applies stock-in (positive) and stock-out (negative)
  movements to catalog quantities. It holds no state of its own; the
  catalog stays the single authority and persists each adjustment.

INVARIANT:
  Quantity never goes negative. A movement that would breach this is
  rejected in full with ErrInsufficientStock - no clamping, no partial
  fulfillment.

LIMITATION:
  The reason string is advisory metadata only. No movement history is
  kept beyond the current quantity snapshot, matching the reference
  system's behavior.
*/
package inventory

import "context"

// StockLedger applies quantity adjustments through the catalog.
type StockLedger struct {
	catalog *Catalog
}

// NewStockLedger creates a ledger over the given catalog.
func NewStockLedger(catalog *Catalog) *StockLedger {
	return &StockLedger{catalog: catalog}
}

// Adjustment is one signed stock movement.
type Adjustment struct {
	SKU    string
	Delta  int64  // positive = stock in, negative = stock out
	Reason string // advisory only, may be empty
}

// Adjust applies a single signed movement and returns the new quantity.
// Fails with ErrNotFound for an unknown SKU and ErrInsufficientStock if
// the result would be negative, leaving the quantity unchanged.
func (l *StockLedger) Adjust(ctx context.Context, sku string, delta int64, reason string) (int64, error) {
	quantities, err := l.AdjustBatch(ctx, []Adjustment{{SKU: sku, Delta: delta, Reason: reason}})
	if err != nil {
		return 0, err
	}
	return quantities[sku], nil
}

// AdjustBatch applies several movements in one table rewrite,
// all-or-nothing: if any SKU is unknown or any resulting quantity would
// be negative, no quantity changes. Deltas for the same SKU accumulate.
// Returns the new quantity per SKU.
func (l *StockLedger) AdjustBatch(ctx context.Context, adjustments []Adjustment) (map[string]int64, error) {
	deltas := make(map[string]int64, len(adjustments))
	for _, a := range adjustments {
		deltas[a.SKU] += a.Delta
	}
	return l.catalog.applyDeltas(ctx, deltas)
}
