/*
engine.go - Checkout: turning a cart into a durable invoice

PURPOSE:
  The sales engine is the only writer that touches two tables in one
  operation: it decrements catalog stock for every cart line and
  appends the resulting invoice. Both happen or neither does.

ALL-OR-NOTHING:
  1. Every line is re-validated against current catalog quantities
     inside one atomic batch adjustment; any shortfall rejects the
     whole checkout naming the offending SKU, with nothing written.
  2. If appending the invoice fails after stock was decremented, the
     decrements are compensated by the inverse batch adjustment, so no
     partial sale survives. Restocking cannot violate the non-negative
     invariant, which is what makes the compensation safe.

SEQUENCING:
  Invoice IDs come from the current ledger length + 1. Single-writer
  assumption is load-bearing; see invoice.go.
*/
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/godsarin/InventoryManagement/inventory"
)

// WalkInCustomer is the customer name recorded when none is given.
const WalkInCustomer = "Walk-in Customer"

// Engine converts carts into invoices.
type Engine struct {
	stock    *inventory.StockLedger
	invoices *InvoiceLedger
	now      func() time.Time
}

// NewEngine creates a sales engine over the given stock ledger and
// invoice ledger.
func NewEngine(stock *inventory.StockLedger, invoices *InvoiceLedger) *Engine {
	return &Engine{
		stock:    stock,
		invoices: invoices,
		now:      time.Now,
	}
}

// Checkout validates the cart against the current catalog, decrements
// stock for every line, appends an invoice and returns it. The cart is
// cleared only on success.
//
// Failure modes: ErrEmptyCart, ErrInvalidPayment,
// inventory.ErrInsufficientStock (naming the SKU), or a store failure.
// On any failure no catalog quantity changes and no invoice is written.
func (e *Engine) Checkout(ctx context.Context, cart *Cart, customer string, payment PaymentType) (Invoice, error) {
	if cart.IsEmpty() {
		return Invoice{}, ErrEmptyCart
	}
	if !payment.Valid() {
		return Invoice{}, &InvalidPaymentError{Value: string(payment)}
	}
	if customer == "" {
		customer = WalkInCustomer
	}

	id, err := e.invoices.NextID(ctx)
	if err != nil {
		return Invoice{}, err
	}

	lines := cart.Lines()
	adjustments := make([]inventory.Adjustment, len(lines))
	for i, l := range lines {
		adjustments[i] = inventory.Adjustment{
			SKU:    l.SKU,
			Delta:  -l.Quantity,
			Reason: "sale " + id,
		}
	}

	// Atomic: re-validates every line and writes the products table
	// once, or changes nothing.
	if _, err := e.stock.AdjustBatch(ctx, adjustments); err != nil {
		return Invoice{}, err
	}

	items := make([]LineDescription, len(lines))
	for i, l := range lines {
		items[i] = LineDescription{Name: l.Name, Quantity: l.Quantity}
	}
	invoice := Invoice{
		ID:       id,
		Date:     e.now().Truncate(time.Second),
		Customer: customer,
		Items:    items,
		Total:    cart.Total(),
		Payment:  payment,
	}

	if err := e.invoices.Append(ctx, invoice); err != nil {
		// Compensate the stock decrements so the failed sale leaves no
		// trace. Restocking always satisfies the quantity invariant.
		restock := make([]inventory.Adjustment, len(lines))
		for i, l := range lines {
			restock[i] = inventory.Adjustment{
				SKU:    l.SKU,
				Delta:  l.Quantity,
				Reason: "void " + id,
			}
		}
		if _, rbErr := e.stock.AdjustBatch(ctx, restock); rbErr != nil {
			return Invoice{}, fmt.Errorf("invoice write failed (%w); stock rollback also failed: %v", err, rbErr)
		}
		return Invoice{}, err
	}

	cart.Clear()
	return invoice, nil
}
