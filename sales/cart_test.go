package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godsarin/InventoryManagement/inventory"
	"github.com/godsarin/InventoryManagement/sales"
	"github.com/godsarin/InventoryManagement/store/memory"
)

// =============================================================================
// TEST SETUP (shared by cart, invoice and engine tests)
// =============================================================================

type fixture struct {
	store    *memory.Store
	catalog  *inventory.Catalog
	stock    *inventory.StockLedger
	invoices *sales.InvoiceLedger
	engine   *sales.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	catalog := inventory.NewCatalog(store)
	stock := inventory.NewStockLedger(catalog)
	invoices := sales.NewInvoiceLedger(store)
	return &fixture{
		store:    store,
		catalog:  catalog,
		stock:    stock,
		invoices: invoices,
		engine:   sales.NewEngine(stock, invoices),
	}
}

func (f *fixture) addProduct(t *testing.T, sku string, price string, qty int64) {
	t.Helper()
	err := f.catalog.Add(context.Background(), inventory.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Category: "Test",
		Price:    decimal.RequireFromString(price),
		Cost:     decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		Quantity: qty,
	})
	require.NoError(t, err)
}

// =============================================================================
// ADD LINE VALIDATION
// =============================================================================

func TestCart_AddLine_UnknownSKU(t *testing.T) {
	f := newFixture(t)
	cart := sales.NewCart(f.catalog)

	err := cart.AddLine(context.Background(), "NOPE", 1)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddLine_OutOfStock(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 0)
	cart := sales.NewCart(f.catalog)

	err := cart.AddLine(context.Background(), "SKU1", 1)
	assert.ErrorIs(t, err, inventory.ErrOutOfStock)
}

func TestCart_AddLine_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)
	ctx := context.Background()

	assert.ErrorIs(t, cart.AddLine(ctx, "SKU1", 0), inventory.ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddLine(ctx, "SKU1", -2), inventory.ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_AddLine_MoreThanAvailable(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)

	err := cart.AddLine(context.Background(), "SKU1", 6)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Available)
	assert.Equal(t, int64(6), stockErr.Requested)
}

// =============================================================================
// TOTALS AND SNAPSHOTS
// =============================================================================

func TestCart_Total_SumsLineTotals(t *testing.T) {
	// GIVEN: one line of SKU1 (qty 2 at 9.99)
	// THEN: total is exactly 19.98

	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)
	ctx := context.Background()

	require.NoError(t, cart.AddLine(ctx, "SKU1", 2))
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("19.98")),
		"got %s", cart.Total())

	f.addProduct(t, "SKU2", "0.01", 3)
	require.NoError(t, cart.AddLine(ctx, "SKU2", 3))
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("20.01")),
		"got %s", cart.Total())
}

func TestCart_PriceSnapshot_IgnoresLaterCatalogChanges(t *testing.T) {
	// GIVEN: a line added at price 9.99
	// WHEN: the catalog price changes to 100.00
	// THEN: the cart still totals at the snapshot price

	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)
	ctx := context.Background()

	require.NoError(t, cart.AddLine(ctx, "SKU1", 2))

	p, err := f.catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	err = f.catalog.Update(ctx, "SKU1", inventory.Fields{
		Name: p.Name, Category: p.Category,
		Price: decimal.RequireFromString("100.00"), Cost: p.Cost,
		Quantity: p.Quantity, Supplier: p.Supplier, MinStock: p.MinStock,
	})
	require.NoError(t, err)

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("19.98")))
}

func TestCart_Clear_ResetsTotalToZero(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)

	require.NoError(t, cart.AddLine(context.Background(), "SKU1", 2))
	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_ChangeDue(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "SKU1", "9.99", 5)
	cart := sales.NewCart(f.catalog)

	require.NoError(t, cart.AddLine(context.Background(), "SKU1", 2))

	change := cart.ChangeDue(decimal.RequireFromString("20.00"))
	assert.True(t, change.Equal(decimal.RequireFromString("0.02")), "got %s", change)

	short := cart.ChangeDue(decimal.RequireFromString("10.00"))
	assert.True(t, short.IsNegative(), "underpayment yields negative change")
}
