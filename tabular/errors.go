/*
errors.go - Store-level error types

PURPOSE:
  All persistence errors funnel through StoreError so callers can test
  with errors.Is(err, ErrStoreIO) regardless of backend (flat file,
  SQLite, memory).

SEE ALSO:
  - store.go: Store interface returning these
*/
package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreIO is the sentinel for any underlying persistence failure.
	ErrStoreIO = errors.New("table store I/O failure")

	// ErrBadCell is returned when a cell cannot be decoded as its column type.
	ErrBadCell = errors.New("cell does not match column type")
)

// StoreError wraps a backend failure with the table and operation involved.
type StoreError struct {
	Table string
	Op    string // "load" or "save"
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("table %q: %s failed: %v", e.Table, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return ErrStoreIO }

// IOError builds a StoreError for the given table and operation.
func IOError(table, op string, err error) error {
	return &StoreError{Table: table, Op: op, Err: err}
}

// CellError describes a single undecodable cell.
type CellError struct {
	Table  string
	Column string
	Raw    string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("table %q: column %q: bad cell %q: %v", e.Table, e.Column, e.Raw, e.Err)
}

func (e *CellError) Unwrap() error { return ErrBadCell }
