package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godsarin/InventoryManagement/inventory"
	"github.com/godsarin/InventoryManagement/store/memory"
	"github.com/godsarin/InventoryManagement/tabular"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestCatalog(t *testing.T) (*inventory.Catalog, *memory.Store) {
	t.Helper()
	store := memory.New()
	return inventory.NewCatalog(store), store
}

func widget(sku string, qty, minStock int64) inventory.Product {
	return inventory.Product{
		SKU:      sku,
		Name:     "Widget " + sku,
		Category: "Widgets",
		Price:    decimal.RequireFromString("9.99"),
		Cost:     decimal.RequireFromString("4.50"),
		Quantity: qty,
		Supplier: "Acme Supply Co",
		MinStock: minStock,
	}
}

// =============================================================================
// ADD
// =============================================================================

func TestCatalog_Add_ThenGet(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))

	p, err := catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Widget SKU1", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, int64(5), p.Quantity)
}

func TestCatalog_Add_DuplicateSKU_Rejected(t *testing.T) {
	// GIVEN: a catalog already holding SKU1
	// WHEN: adding another product with the same SKU
	// THEN: the add fails with ErrDuplicateKey and the catalog is unchanged

	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))

	err := catalog.Add(ctx, widget("SKU1", 99, 0))
	assert.ErrorIs(t, err, inventory.ErrDuplicateKey)

	var dupErr *inventory.DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "SKU1", dupErr.SKU)

	assert.Len(t, catalog.List(ctx), 1, "catalog size must be unchanged")
	p, err := catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Quantity, "original product must survive")
}

func TestCatalog_Add_InvalidFields_Rejected(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	bad := widget("SKU1", 5, 2)
	bad.Price = decimal.RequireFromString("-1")
	assert.ErrorIs(t, catalog.Add(ctx, bad), inventory.ErrInvalidProduct)

	bad = widget("", 5, 2)
	assert.ErrorIs(t, catalog.Add(ctx, bad), inventory.ErrInvalidProduct)

	assert.Empty(t, catalog.List(ctx))
}

// =============================================================================
// UPDATE / REMOVE
// =============================================================================

func TestCatalog_Update_ReplacesAllMutableFields(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))

	err := catalog.Update(ctx, "SKU1", inventory.Fields{
		Name:     "Renamed",
		Category: "Gadgets",
		Price:    decimal.RequireFromString("12.00"),
		Cost:     decimal.RequireFromString("6.00"),
		Quantity: 7,
		Supplier: "Other Supply",
		MinStock: 3,
	})
	require.NoError(t, err)

	p, err := catalog.Get(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "Gadgets", p.Category)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, int64(7), p.Quantity)
	assert.Equal(t, int64(3), p.MinStock)
}

func TestCatalog_Update_UnknownSKU_NotFound(t *testing.T) {
	catalog, _ := newTestCatalog(t)

	err := catalog.Update(context.Background(), "NOPE", inventory.Fields{Name: "x"})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestCatalog_Remove(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))
	require.NoError(t, catalog.Add(ctx, widget("SKU2", 1, 1)))

	require.NoError(t, catalog.Remove(ctx, "SKU1"))
	assert.Len(t, catalog.List(ctx), 1)

	_, err := catalog.Get(ctx, "SKU1")
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	assert.ErrorIs(t, catalog.Remove(ctx, "SKU1"), inventory.ErrNotFound)
}

// =============================================================================
// QUERIES
// =============================================================================

func TestCatalog_List_PreservesInsertionOrder(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	for _, sku := range []string{"C3", "A1", "B2"} {
		require.NoError(t, catalog.Add(ctx, widget(sku, 1, 0)))
	}

	products := catalog.List(ctx)
	require.Len(t, products, 3)
	assert.Equal(t, "C3", products[0].SKU)
	assert.Equal(t, "A1", products[1].SKU)
	assert.Equal(t, "B2", products[2].SKU)
}

func TestCatalog_Find_CaseInsensitiveSubstring(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	keyboard := inventory.Product{
		SKU: "KB-01", Name: "Mechanical Keyboard", Category: "Peripherals",
		Price: decimal.RequireFromString("59.99"), Quantity: 3,
	}
	mouse := inventory.Product{
		SKU: "MS-01", Name: "Wireless Mouse", Category: "Peripherals",
		Price: decimal.RequireFromString("19.99"), Quantity: 4,
	}
	require.NoError(t, catalog.Add(ctx, keyboard))
	require.NoError(t, catalog.Add(ctx, mouse))

	// by name, wrong case
	assert.Len(t, catalog.Find(ctx, "KEYBOARD"), 1)
	// by SKU fragment
	assert.Len(t, catalog.Find(ctx, "ms-"), 1)
	// by category matches both
	assert.Len(t, catalog.Find(ctx, "periph"), 2)
	// no match
	assert.Empty(t, catalog.Find(ctx, "monitor"))
}

func TestCatalog_LowStock_ThresholdIsInclusive(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("AT", 2, 2)))    // at threshold
	require.NoError(t, catalog.Add(ctx, widget("BELOW", 1, 2))) // below
	require.NoError(t, catalog.Add(ctx, widget("ABOVE", 3, 2))) // above

	low := catalog.LowStock(ctx)
	require.Len(t, low, 2)
	assert.Equal(t, "AT", low[0].SKU)
	assert.Equal(t, "BELOW", low[1].SKU)
}

func TestCatalog_ReadHelpers_DegradeToEmptyOnStoreFailure(t *testing.T) {
	// GIVEN: a store whose loads fail
	// WHEN: calling the display helpers
	// THEN: they return empty results; Get still surfaces the error

	catalog, store := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))
	store.LoadErr = errors.New("disk on fire")

	assert.Empty(t, catalog.List(ctx))
	assert.Empty(t, catalog.Find(ctx, "widget"))
	assert.Empty(t, catalog.LowStock(ctx))
	assert.Zero(t, catalog.Summary(ctx).TotalProducts)

	_, err := catalog.Get(ctx, "SKU1")
	assert.ErrorIs(t, err, tabular.ErrStoreIO)
}

func TestCatalog_Summary(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Add(ctx, widget("SKU1", 5, 2)))
	require.NoError(t, catalog.Add(ctx, widget("SKU2", 1, 2)))

	s := catalog.Summary(ctx)
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, int64(6), s.TotalUnits)
	assert.Equal(t, 1, s.LowStockItems)
}
