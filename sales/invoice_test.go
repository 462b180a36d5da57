package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godsarin/InventoryManagement/sales"
	"github.com/godsarin/InventoryManagement/tabular"
)

func testInvoice(id, customer string, date time.Time) sales.Invoice {
	return sales.Invoice{
		ID:       id,
		Date:     date,
		Customer: customer,
		Items:    []sales.LineDescription{{Name: "Widget", Quantity: 2}},
		Total:    decimal.RequireFromString("19.98"),
		Payment:  sales.PaymentCash,
	}
}

func TestInvoiceLedger_AppendAndAll_ChronologicalOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0001", "Alice", base)))
	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0002", "Bob", base.Add(time.Hour))))

	all := f.invoices.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "INV0001", all[0].ID)
	assert.Equal(t, "INV0002", all[1].ID)

	// Items survive the persisted round trip.
	require.Len(t, all[0].Items, 1)
	assert.Equal(t, "Widget", all[0].Items[0].Name)
	assert.Equal(t, int64(2), all[0].Items[0].Quantity)
	assert.Equal(t, "Widget x2", all[0].ItemsString())
}

func TestInvoiceLedger_NextID_DerivedFromLength(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.invoices.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV0001", id)

	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0001", "Alice", time.Now())))

	id, err = f.invoices.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV0002", id)
}

func TestInvoiceLedger_NextID_SurfacesStoreFailure(t *testing.T) {
	// NextID must never mint an ID off a silently-empty read.
	f := newFixture(t)
	f.store.LoadErr = errors.New("disk on fire")

	_, err := f.invoices.NextID(context.Background())
	assert.ErrorIs(t, err, tabular.ErrStoreIO)
}

func TestInvoiceLedger_FindByCustomer_CaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0001", "Alice Smith", now)))
	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0002", "Bob Jones", now)))
	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0003", "alice cooper", now)))

	matches := f.invoices.FindByCustomer(ctx, "ALICE")
	require.Len(t, matches, 2)
	assert.Equal(t, "INV0001", matches[0].ID)
	assert.Equal(t, "INV0003", matches[1].ID)

	assert.Empty(t, f.invoices.FindByCustomer(ctx, "charlie"))
}

func TestInvoiceLedger_SortedByDateDescending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0001", "Alice", base)))
	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0002", "Bob", base.Add(2*time.Hour))))
	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0003", "Carol", base.Add(time.Hour))))

	sorted := f.invoices.SortedByDateDescending(ctx)
	require.Len(t, sorted, 3)
	assert.Equal(t, "INV0002", sorted[0].ID)
	assert.Equal(t, "INV0003", sorted[1].ID)
	assert.Equal(t, "INV0001", sorted[2].ID)

	// The underlying ledger order is untouched.
	assert.Equal(t, "INV0001", f.invoices.All(ctx)[0].ID)
}

func TestInvoiceLedger_ReadHelpers_DegradeToEmptyOnStoreFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.invoices.Append(ctx, testInvoice("INV0001", "Alice", time.Now())))
	f.store.LoadErr = errors.New("disk on fire")

	assert.Empty(t, f.invoices.All(ctx))
	assert.Empty(t, f.invoices.FindByCustomer(ctx, "alice"))
	assert.Empty(t, f.invoices.SortedByDateDescending(ctx))
	assert.Zero(t, f.invoices.Count(ctx))
}

func TestParsePaymentType(t *testing.T) {
	for raw, want := range map[string]sales.PaymentType{
		"Cash":  sales.PaymentCash,
		"cash":  sales.PaymentCash,
		"CARD":  sales.PaymentCard,
		"check": sales.PaymentCheck,
	} {
		got, err := sales.ParsePaymentType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := sales.ParsePaymentType("Bitcoin")
	assert.ErrorIs(t, err, sales.ErrInvalidPayment)

	var payErr *sales.InvalidPaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "Bitcoin", payErr.Value)
}
