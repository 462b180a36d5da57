/*
store.go - Persistence interface for flat tables

PURPOSE:
  Defines the boundary between domain logic and storage. A Store holds
  whole tables; there is no row-level access. Every mutation in the
  system is load -> modify in memory -> save, which is the entire
  consistency model: single process, last writer wins.

CONTRACT:
  Load: returns every row of the table in stored order. If the table
        does not exist yet, the store creates it empty (schema only)
        and returns no rows. Never returns partial data.
  Save: atomically replaces the whole table with rows, preserving their
        order. Either the new table is fully written or the old one is
        still intact.

IMPLEMENTATIONS:
  - store/flatfile: CSV files, one per table (the production backend)
  - store/sqlite:   one SQL table per schema
  - store/memory:   map-backed, for tests (supports error injection)

SEE ALSO:
  - types.go: Schema and Row
*/
package tabular

import "context"

// Store persists whole tables. See the package contract above.
type Store interface {
	// Load returns all rows of the table described by schema, in stored
	// order, creating the table empty if it does not exist.
	Load(ctx context.Context, schema Schema) ([]Row, error)

	// Save replaces the entire table with rows, in order.
	Save(ctx context.Context, schema Schema, rows []Row) error
}
