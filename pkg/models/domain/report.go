package domain

import (
	"fmt"
	"math"
)

// SavingsColumn is the well-known column name carrying per-row estimated
// monthly savings. Tables without it simply report zero total savings.
const SavingsColumn = "estimated_savings"

// Table is one report's flattened output: ordered column names plus rows in
// insertion order. The engine never sorts or deduplicates rows; duplicate
// (account_id, resource_id) pairs are a collector defect.
type Table struct {
	Columns []string
	Rows    [][]any
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. The cell count must match the declared columns.
func (t *Table) Append(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SavingsSum adds up the savings column, rounded to two decimals. A missing
// column or non-numeric cells contribute zero.
func (t *Table) SavingsSum() float64 {
	if t.Empty() {
		return 0.0
	}
	idx := t.ColumnIndex(SavingsColumn)
	if idx < 0 {
		return 0.0
	}
	var total float64
	for _, row := range t.Rows {
		if v, ok := cellFloat(row[idx]); ok {
			total += v
		}
	}
	return math.Round(total*100) / 100
}

func cellFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
