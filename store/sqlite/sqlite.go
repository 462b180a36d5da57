/*
Package sqlite provides a SQLite-backed implementation of tabular.Store.

PURPOSE:
  Same whole-table contract as the flat-file backend, but in a single
  database file. Useful once the data directory grows past what
  rewrite-everything CSV handles comfortably, with no change to any
  caller: one SQL table per schema, cells stored in their text form.

ORDERING:
  Row order is part of the Store contract (insertion order of the
  catalog, chronology of the invoice ledger), so each table carries a
  seq column and every read orders by it.

CONCURRENCY:
  Uses sync.Mutex for in-process safety. The engine is single-user,
  so there is no contention to speak of; WAL mode keeps crash recovery
  sane.

USAGE:
  store, err := sqlite.New("./data/inventory.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tabular/store.go: interface and contract
  - store/flatfile: the CSV backend
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/godsarin/InventoryManagement/tabular"
)

// Store implements tabular.Store on a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

var _ tabular.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureTable creates the backing SQL table for schema if absent.
func (s *Store) ensureTable(ctx context.Context, schema tabular.Schema) error {
	cols := make([]string, 0, len(schema.Columns)+1)
	cols = append(cols, "seq INTEGER PRIMARY KEY")
	for _, c := range schema.Columns {
		cols = append(cols, fmt.Sprintf("%q TEXT", c.Name))
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", schema.Name, strings.Join(cols, ", "))
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Load returns all rows in seq order, creating the table if absent.
func (s *Store) Load(ctx context.Context, schema tabular.Schema) ([]tabular.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureTable(ctx, schema); err != nil {
		return nil, tabular.IOError(schema.Name, "load", err)
	}

	names := schema.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	query := fmt.Sprintf("SELECT %s FROM %q ORDER BY seq", strings.Join(quoted, ", "), schema.Name)

	rs, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, tabular.IOError(schema.Name, "load", err)
	}
	defer rs.Close()

	var rows []tabular.Row
	for rs.Next() {
		cells := make([]sql.NullString, len(schema.Columns))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rs.Scan(dest...); err != nil {
			return nil, tabular.IOError(schema.Name, "load", err)
		}
		row := make(tabular.Row, len(schema.Columns))
		for i, col := range schema.Columns {
			v, err := tabular.DecodeCell(schema.Name, col, cells[i].String)
			if err != nil {
				return nil, err
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, tabular.IOError(schema.Name, "load", err)
	}
	return rows, nil
}

// Save replaces the whole table within one SQL transaction.
func (s *Store) Save(ctx context.Context, schema tabular.Schema, rows []tabular.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureTable(ctx, schema); err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %q", schema.Name)); err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}

	names := schema.ColumnNames()
	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
		placeholders[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %q (seq, %s) VALUES (?, %s)",
		schema.Name, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	defer stmt.Close()

	for seq, row := range rows {
		args := make([]any, 0, len(schema.Columns)+1)
		args = append(args, seq)
		for _, col := range schema.Columns {
			cell, err := tabular.EncodeCell(col, row[col.Name])
			if err != nil {
				return tabular.IOError(schema.Name, "save", err)
			}
			args = append(args, cell)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return tabular.IOError(schema.Name, "save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	return nil
}
