/*
types.go - Schema and row types for flat tabular persistence

PURPOSE:
  Defines the shape of a persisted table: named, typed columns and rows of
  typed cells. Every entity in the system (products, invoices, users) is
  stored as one of these tables and rewritten in full on mutation.

DESIGN:
  1. Columns are ordered and named; column identity survives save/load.
  2. Currency cells use decimal.Decimal to avoid floating-point errors.
  3. Rows are loosely keyed by column name but validated against the
     schema at the store boundary, so domain code always sees typed values.

CELL TYPES:
  ColumnString    -> string
  ColumnInteger   -> int64
  ColumnCurrency  -> decimal.Decimal
  ColumnTimestamp -> time.Time

SEE ALSO:
  - store.go: Store interface consuming these types
  - cell.go: Text encoding for file-backed stores
*/
package tabular

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN TYPES
// =============================================================================

// ColumnType identifies the value type a column holds.
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnInteger
	ColumnCurrency
	ColumnTimestamp
)

func (t ColumnType) String() string {
	switch t {
	case ColumnString:
		return "string"
	case ColumnInteger:
		return "integer"
	case ColumnCurrency:
		return "currency"
	case ColumnTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Column is a single named, typed column in a table schema.
type Column struct {
	Name string
	Type ColumnType
}

// Schema describes one persisted table: its name and ordered columns.
type Schema struct {
	Name    string
	Columns []Column
}

// Column returns the column with the given name, if present.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the ordered column names.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// =============================================================================
// ROWS
// =============================================================================

// Row is one record of a table, keyed by column name.
// Cell values must match the column type: string, int64,
// decimal.Decimal or time.Time.
type Row map[string]any

// String returns the string cell for col, or "" if absent.
func (r Row) String(col string) string {
	v, _ := r[col].(string)
	return v
}

// Int returns the integer cell for col, or 0 if absent.
func (r Row) Int(col string) int64 {
	v, _ := r[col].(int64)
	return v
}

// Currency returns the currency cell for col, or zero if absent.
func (r Row) Currency(col string) decimal.Decimal {
	if v, ok := r[col].(decimal.Decimal); ok {
		return v
	}
	return decimal.Zero
}

// Time returns the timestamp cell for col, or the zero time if absent.
func (r Row) Time(col string) time.Time {
	v, _ := r[col].(time.Time)
	return v
}

// Clone returns a shallow copy of the row. Cell values are immutable
// value types, so a shallow copy is a safe snapshot.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneRows deep-copies a row slice. Stores hand these out so callers
// can stage mutations without aliasing persisted state.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
