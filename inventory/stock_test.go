package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godsarin/InventoryManagement/inventory"
)

func newTestStockLedger(t *testing.T) (*inventory.StockLedger, *inventory.Catalog) {
	t.Helper()
	catalog, _ := newTestCatalog(t)
	return inventory.NewStockLedger(catalog), catalog
}

// =============================================================================
// SINGLE ADJUSTMENTS
// =============================================================================

func TestStockLedger_Adjust_StockInAndOut(t *testing.T) {
	ledger, catalog := newTestStockLedger(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))

	qty, err := ledger.Adjust(ctx, "SKU1", +4, "delivery")
	require.NoError(t, err)
	assert.Equal(t, int64(9), qty)

	qty, err = ledger.Adjust(ctx, "SKU1", -9, "shrinkage")
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty, "adjusting exactly to zero is allowed")

	p, err := catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity, "adjustment must persist through the catalog")
}

func TestStockLedger_Adjust_UnknownSKU(t *testing.T) {
	ledger, _ := newTestStockLedger(t)

	_, err := ledger.Adjust(context.Background(), "NOPE", 1, "")
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestStockLedger_Adjust_OversellRejectedInFull(t *testing.T) {
	// GIVEN: SKU1 with quantity 5 and min-stock 2
	// WHEN: adjusting by -3, then by -3 again
	// THEN: the first succeeds (qty 2, now low stock); the second is
	//       rejected with ErrInsufficientStock and qty stays 2

	ledger, catalog := newTestStockLedger(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))

	qty, err := ledger.Adjust(ctx, "SKU1", -3, "sale")
	require.NoError(t, err)
	assert.Equal(t, int64(2), qty)

	low := catalog.LowStock(ctx)
	require.Len(t, low, 1)
	assert.Equal(t, "SKU1", low[0].SKU)

	_, err = ledger.Adjust(ctx, "SKU1", -3, "oversell")
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "SKU1", stockErr.SKU)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)

	p, err := catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Quantity, "rejected adjustment must not change quantity")
}

// =============================================================================
// BATCH ADJUSTMENTS
// =============================================================================

func TestStockLedger_AdjustBatch_AllOrNothing(t *testing.T) {
	// GIVEN: two products
	// WHEN: one batch where the second movement would go negative
	// THEN: neither quantity changes

	ledger, catalog := newTestStockLedger(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 0)))
	require.NoError(t, catalog.Add(ctx, widget("SKU2", 1, 0)))

	_, err := ledger.AdjustBatch(ctx, []inventory.Adjustment{
		{SKU: "SKU1", Delta: -2, Reason: "sale"},
		{SKU: "SKU2", Delta: -3, Reason: "sale"},
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	p1, _ := catalog.Get(ctx, "SKU1")
	p2, _ := catalog.Get(ctx, "SKU2")
	assert.Equal(t, int64(5), p1.Quantity)
	assert.Equal(t, int64(1), p2.Quantity)
}

func TestStockLedger_AdjustBatch_AccumulatesSameSKU(t *testing.T) {
	ledger, catalog := newTestStockLedger(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 0)))

	quantities, err := ledger.AdjustBatch(ctx, []inventory.Adjustment{
		{SKU: "SKU1", Delta: -2},
		{SKU: "SKU1", Delta: -2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), quantities["SKU1"])
}
