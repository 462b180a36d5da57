// Package memory provides an in-memory tabular.Store for tests and dev.
package memory

import (
	"context"
	"sync"

	"github.com/godsarin/InventoryManagement/tabular"
)

// Store keeps tables in maps. Safe for concurrent use, though the
// engine itself is single-threaded.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]tabular.Row

	// Error injection for tests: when set, the matching operation
	// fails with the given error wrapped as a StoreError. FailTable
	// limits the failure to one table; empty means every table.
	LoadErr   error
	SaveErr   error
	FailTable string
}

func (s *Store) failing(table string) bool {
	return s.FailTable == "" || s.FailTable == table
}

var _ tabular.Store = (*Store)(nil)

func New() *Store {
	return &Store{tables: make(map[string][]tabular.Row)}
}

// Load returns a copy of the table's rows, creating the table if absent.
func (s *Store) Load(_ context.Context, schema tabular.Schema) ([]tabular.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.LoadErr != nil && s.failing(schema.Name) {
		return nil, tabular.IOError(schema.Name, "load", s.LoadErr)
	}
	if _, ok := s.tables[schema.Name]; !ok {
		s.tables[schema.Name] = nil
	}
	return tabular.CloneRows(s.tables[schema.Name]), nil
}

// Save replaces the table with a copy of rows.
func (s *Store) Save(_ context.Context, schema tabular.Schema, rows []tabular.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil && s.failing(schema.Name) {
		return tabular.IOError(schema.Name, "save", s.SaveErr)
	}
	s.tables[schema.Name] = tabular.CloneRows(rows)
	return nil
}

// Rows returns the stored rows of a table for test assertions.
func (s *Store) Rows(table string) []tabular.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tabular.CloneRows(s.tables[table])
}
