/*
invoice.go - Completed sales: the Invoice record and its append-only ledger

PURPOSE:
  An Invoice is the durable result of a checkout. Once appended it is
  never modified or deleted; history queries read the whole table.

IDENTIFIERS:
  Invoice IDs are "INV" + a zero-padded 4-digit sequence derived from
  the current ledger length + 1 (INV0001, INV0002, ...). This assumes a
  single writer; it is not collision-safe if the table is edited by
  hand or shared between processes, which is outside the supported use.

ITEM ENCODING:
  Line descriptions persist in the compact "Name x2, Other x1" form the
  reference data files use, so existing invoice tables stay readable.
*/
package sales

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/godsarin/InventoryManagement/tabular"
)

// InvoicesSchema describes the persisted invoices table.
var InvoicesSchema = tabular.Schema{
	Name: "invoices",
	Columns: []tabular.Column{
		{Name: "Invoice_ID", Type: tabular.ColumnString},
		{Name: "Date", Type: tabular.ColumnTimestamp},
		{Name: "Customer_Name", Type: tabular.ColumnString},
		{Name: "Items", Type: tabular.ColumnString},
		{Name: "Total_Amount", Type: tabular.ColumnCurrency},
		{Name: "Payment_Type", Type: tabular.ColumnString},
	},
}

// LineDescription is one "name × quantity" entry on an invoice.
type LineDescription struct {
	Name     string
	Quantity int64
}

func (d LineDescription) String() string {
	return fmt.Sprintf("%s x%d", d.Name, d.Quantity)
}

// Invoice is one completed sale. Immutable once appended.
type Invoice struct {
	ID       string
	Date     time.Time
	Customer string
	Items    []LineDescription
	Total    decimal.Decimal
	Payment  PaymentType
}

// ItemsString renders the line descriptions in their persisted form.
func (inv Invoice) ItemsString() string {
	parts := make([]string, len(inv.Items))
	for i, d := range inv.Items {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

func parseItems(s string) []LineDescription {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	items := make([]LineDescription, 0, len(parts))
	for _, part := range parts {
		d := LineDescription{Name: part, Quantity: 1}
		if i := strings.LastIndex(part, " x"); i >= 0 {
			if n, err := strconv.ParseInt(part[i+2:], 10, 64); err == nil {
				d = LineDescription{Name: part[:i], Quantity: n}
			}
		}
		items = append(items, d)
	}
	return items
}

// =============================================================================
// ROW CODEC
// =============================================================================

func invoiceToRow(inv Invoice) tabular.Row {
	return tabular.Row{
		"Invoice_ID":    inv.ID,
		"Date":          inv.Date,
		"Customer_Name": inv.Customer,
		"Items":         inv.ItemsString(),
		"Total_Amount":  inv.Total,
		"Payment_Type":  string(inv.Payment),
	}
}

func invoiceFromRow(r tabular.Row) Invoice {
	return Invoice{
		ID:       r.String("Invoice_ID"),
		Date:     r.Time("Date"),
		Customer: r.String("Customer_Name"),
		Items:    parseItems(r.String("Items")),
		Total:    r.Currency("Total_Amount"),
		Payment:  PaymentType(r.String("Payment_Type")),
	}
}

// =============================================================================
// INVOICE LEDGER
// =============================================================================

// InvoiceLedger is the append-only store of completed sales.
type InvoiceLedger struct {
	store tabular.Store
}

// NewInvoiceLedger creates a ledger backed by the given store.
func NewInvoiceLedger(store tabular.Store) *InvoiceLedger {
	return &InvoiceLedger{store: store}
}

func (l *InvoiceLedger) load(ctx context.Context) ([]Invoice, error) {
	rows, err := l.store.Load(ctx, InvoicesSchema)
	if err != nil {
		return nil, err
	}
	invoices := make([]Invoice, len(rows))
	for i, r := range rows {
		invoices[i] = invoiceFromRow(r)
	}
	return invoices, nil
}

// NextID derives the next invoice identifier from the current ledger
// length. Unlike the display helpers this surfaces store errors: an ID
// must never be minted off a silently-empty read.
func (l *InvoiceLedger) NextID(ctx context.Context) (string, error) {
	invoices, err := l.load(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV%04d", len(invoices)+1), nil
}

// Append adds a completed invoice to the ledger. No validation beyond
// what the sales engine already performed.
func (l *InvoiceLedger) Append(ctx context.Context, inv Invoice) error {
	rows, err := l.store.Load(ctx, InvoicesSchema)
	if err != nil {
		return err
	}
	rows = append(rows, invoiceToRow(inv))
	return l.store.Save(ctx, InvoicesSchema, rows)
}

// All returns every invoice in insertion (chronological) order.
// Degrades to an empty result on store failure (display helper).
func (l *InvoiceLedger) All(ctx context.Context) []Invoice {
	invoices, err := l.load(ctx)
	if err != nil {
		return nil
	}
	return invoices
}

// FindByCustomer returns invoices whose customer name contains the
// query, case-insensitively. Degrades to empty on store failure.
func (l *InvoiceLedger) FindByCustomer(ctx context.Context, query string) []Invoice {
	q := strings.ToLower(query)
	var matches []Invoice
	for _, inv := range l.All(ctx) {
		if strings.Contains(strings.ToLower(inv.Customer), q) {
			matches = append(matches, inv)
		}
	}
	return matches
}

// SortedByDateDescending returns invoices most recent first, for
// history views. Degrades to empty on store failure.
func (l *InvoiceLedger) SortedByDateDescending(ctx context.Context) []Invoice {
	invoices := l.All(ctx)
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
	return invoices
}

// Count returns the number of invoices on the ledger.
// Degrades to zero on store failure (display helper).
func (l *InvoiceLedger) Count(ctx context.Context) int {
	return len(l.All(ctx))
}
