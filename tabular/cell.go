// cell.go - text encoding of typed cells, shared by file-backed stores.
//
// Timestamps use the same layout the reference data files carry
// ("2006-01-02 15:04:05"); currency round-trips through decimal strings
// so no precision is lost.

package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the canonical text form of timestamp cells.
const TimeLayout = "2006-01-02 15:04:05"

// EncodeCell renders a typed cell value as text.
func EncodeCell(col Column, v any) (string, error) {
	if v == nil {
		return "", nil
	}
	switch col.Type {
	case ColumnString:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("column %q: expected string, got %T", col.Name, v)
		}
		return s, nil
	case ColumnInteger:
		n, ok := v.(int64)
		if !ok {
			return "", fmt.Errorf("column %q: expected int64, got %T", col.Name, v)
		}
		return strconv.FormatInt(n, 10), nil
	case ColumnCurrency:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return "", fmt.Errorf("column %q: expected decimal, got %T", col.Name, v)
		}
		return d.String(), nil
	case ColumnTimestamp:
		t, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("column %q: expected time, got %T", col.Name, v)
		}
		return t.Format(TimeLayout), nil
	default:
		return "", fmt.Errorf("column %q: unknown column type %d", col.Name, col.Type)
	}
}

// DecodeCell parses text back into the typed cell value for col.
// Empty text decodes to the type's zero value.
func DecodeCell(table string, col Column, raw string) (any, error) {
	switch col.Type {
	case ColumnString:
		return raw, nil
	case ColumnInteger:
		if raw == "" {
			return int64(0), nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &CellError{Table: table, Column: col.Name, Raw: raw, Err: err}
		}
		return n, nil
	case ColumnCurrency:
		if raw == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &CellError{Table: table, Column: col.Name, Raw: raw, Err: err}
		}
		return d, nil
	case ColumnTimestamp:
		if raw == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(TimeLayout, raw)
		if err != nil {
			return nil, &CellError{Table: table, Column: col.Name, Raw: raw, Err: err}
		}
		return t, nil
	default:
		return nil, &CellError{Table: table, Column: col.Name, Raw: raw, Err: errors.New("unknown column type")}
	}
}
