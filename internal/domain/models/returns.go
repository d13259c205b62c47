package models

import "time"

// ReturnSeries is a TimeSeries whose values are cumulative percentage changes
// relative to a baseline.
//
// For price series the first value is exactly 0.0. For compounding-rate series
// the baseline is the start of compounding, so the first value equals the first
// period's rate.
type ReturnSeries struct {
	TimeSeries
}

// Column is a named ReturnSeries that takes part in an alignment.
type Column struct {
	Name   string
	Series ReturnSeries
}

// Row is one calendar date of an AlignedTable.
//
// Values only holds the columns that are defined on Date; a missing key means
// the column had not produced its first observation yet.
type Row struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// AlignedTable merges several return series onto one calendar.
//
// Columns keeps insertion order (the selection order). Once a column has a value
// on some row, every later row has a value for that column.
type AlignedTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty reports whether the table has no columns or no rows.
func (t AlignedTable) Empty() bool { return len(t.Columns) == 0 || len(t.Rows) == 0 }

// Value returns the value of column on row i.
func (t AlignedTable) Value(i int, column string) (float64, bool) {
	if i < 0 || i >= len(t.Rows) {
		return 0, false
	}
	v, ok := t.Rows[i].Values[column]
	return v, ok
}
