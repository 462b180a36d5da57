/*
Package flatfile is the file-backed tabular.Store: one CSV file per table.

PURPOSE:
  The production backend for a single-user tool. Each table lives in
  <dir>/<table>.csv with a header row naming the columns. Every Save
  rewrites the whole file; every Load reads the whole file. That is
  deliberately the entire story - no locking, no partial updates,
  exactly one process is assumed to touch the directory.

FIRST RUN:
  Load on a missing table writes an empty file containing only the
  header row, so a fresh data directory self-initializes with the
  schema-defined tables.

CRASH SAFETY:
  Save writes to a temp file in the same directory and renames it over
  the real one, so a crash mid-write leaves the previous table intact.

SEE ALSO:
  - tabular/store.go: the interface and its contract
  - store/sqlite: same contract over SQLite
*/
package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/godsarin/InventoryManagement/tabular"
)

// Store persists tables as CSV files under a single directory.
type Store struct {
	dir string
}

var _ tabular.Store = (*Store)(nil)

// New creates a flat-file store rooted at dir, creating dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// Load reads all rows of the table, creating an empty table file if absent.
func (s *Store) Load(_ context.Context, schema tabular.Schema) ([]tabular.Row, error) {
	f, err := os.Open(s.path(schema.Name))
	if os.IsNotExist(err) {
		if err := s.writeFile(schema, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, tabular.IOError(schema.Name, "load", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, tabular.IOError(schema.Name, "load", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]tabular.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(tabular.Row, len(schema.Columns))
		for i, name := range header {
			col, ok := schema.Column(name)
			if !ok || i >= len(record) {
				continue // unknown or missing column, ignore
			}
			v, err := tabular.DecodeCell(schema.Name, col, record[i])
			if err != nil {
				return nil, err
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save atomically replaces the table file with rows.
func (s *Store) Save(_ context.Context, schema tabular.Schema, rows []tabular.Row) error {
	return s.writeFile(schema, rows)
}

func (s *Store) writeFile(schema tabular.Schema, rows []tabular.Row) error {
	tmp, err := os.CreateTemp(s.dir, schema.Name+".*.tmp")
	if err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(schema.ColumnNames()); err != nil {
		tmp.Close()
		return tabular.IOError(schema.Name, "save", err)
	}
	for _, row := range rows {
		record := make([]string, len(schema.Columns))
		for i, col := range schema.Columns {
			cell, err := tabular.EncodeCell(col, row[col.Name])
			if err != nil {
				tmp.Close()
				return tabular.IOError(schema.Name, "save", err)
			}
			record[i] = cell
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return tabular.IOError(schema.Name, "save", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return tabular.IOError(schema.Name, "save", err)
	}
	if err := tmp.Close(); err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	if err := os.Rename(tmp.Name(), s.path(schema.Name)); err != nil {
		return tabular.IOError(schema.Name, "save", err)
	}
	return nil
}
