package models

import (
	"sort"
	"time"
)

// Point is a single dated observation.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is an ordered sequence of observations for one instrument or indicator.
//
// Invariants:
//   - Dates are UTC midnights, strictly increasing, without duplicates.
//   - A TimeSeries is never mutated after construction; operations return new values.
type TimeSeries struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// NewTimeSeries builds a TimeSeries from raw provider points.
//
// Dates are truncated to the calendar day, points are sorted chronologically and
// duplicated dates keep the value that appeared last in the input.
func NewTimeSeries(name string, points []Point) TimeSeries {
	if len(points) == 0 {
		return TimeSeries{Name: name}
	}

	byDay := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDay[DateOnly(p.Date)] = p.Value
	}

	out := make([]Point, 0, len(byDay))
	for d, v := range byDay {
		out = append(out, Point{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return TimeSeries{Name: name, Points: out}
}

// Len returns the number of observations.
func (s TimeSeries) Len() int { return len(s.Points) }

// Empty reports whether the series has no observations.
func (s TimeSeries) Empty() bool { return len(s.Points) == 0 }

// First returns the earliest observation. ok is false for an empty series.
func (s TimeSeries) First() (p Point, ok bool) {
	if s.Empty() {
		return Point{}, false
	}
	return s.Points[0], true
}

// Last returns the latest observation. ok is false for an empty series.
func (s TimeSeries) Last() (p Point, ok bool) {
	if s.Empty() {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Dates returns the native calendar of the series.
func (s TimeSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// Between returns the observations whose dates fall inside w (inclusive on both ends).
func (s TimeSeries) Between(w Window) TimeSeries {
	start, end := DateOnly(w.Start), DateOnly(w.End)
	out := make([]Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return TimeSeries{Name: s.Name, Points: out}
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
