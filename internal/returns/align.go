package returns

import (
	"sort"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// Align merges named return series onto one calendar.
//
// Empty columns are dropped entirely. When calendar is nil the rows are the union
// of the dates of the remaining columns; otherwise they are the given dates.
// Each column is forward-filled: a row takes the most recent native observation at
// or before its date, and stays absent before the column's first observation.
// Rows on which no column is defined are not emitted.
//
// Columns keep the order in which they were passed. A repeated name keeps its
// first position and the data of its last occurrence.
func Align(columns []models.Column, calendar []time.Time) models.AlignedTable {
	names := make([]string, 0, len(columns))
	data := make(map[string]models.ReturnSeries, len(columns))
	for _, c := range columns {
		if c.Series.Empty() {
			continue
		}
		if _, seen := data[c.Name]; !seen {
			names = append(names, c.Name)
		}
		data[c.Name] = c.Series
	}
	if len(names) == 0 {
		return models.AlignedTable{}
	}

	var days []time.Time
	if calendar == nil {
		all := make([]models.TimeSeries, 0, len(names))
		for _, n := range names {
			all = append(all, data[n].TimeSeries)
		}
		days = UnionCalendar(all...)
	} else {
		days = normalizeCalendar(calendar)
	}

	rows := make([]models.Row, len(days))
	for i, d := range days {
		rows[i] = models.Row{Date: d, Values: make(map[string]float64, len(names))}
	}

	for _, n := range names {
		pts := data[n].Points
		next := 0
		for i, d := range days {
			for next < len(pts) && !pts[next].Date.After(d) {
				next++
			}
			if next > 0 {
				rows[i].Values[n] = pts[next-1].Value
			}
		}
	}

	kept := rows[:0]
	for _, r := range rows {
		if len(r.Values) > 0 {
			kept = append(kept, r)
		}
	}

	return models.AlignedTable{Columns: names, Rows: kept}
}

// UnionCalendar returns the sorted, de-duplicated dates observed by any series.
func UnionCalendar(series ...models.TimeSeries) []time.Time {
	var all []time.Time
	for _, s := range series {
		all = append(all, s.Dates()...)
	}
	return normalizeCalendar(all)
}

// normalizeCalendar truncates, sorts and de-duplicates dates into a fresh slice.
func normalizeCalendar(in []time.Time) []time.Time {
	out := make([]time.Time, 0, len(in))
	for _, d := range in {
		out = append(out, models.DateOnly(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })

	uniq := out[:0]
	for i, d := range out {
		if i > 0 && d.Equal(uniq[len(uniq)-1]) {
			continue
		}
		uniq = append(uniq, d)
	}
	return uniq
}
