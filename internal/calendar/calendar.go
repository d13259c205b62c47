// Package calendar knows which days B3 and Banco Central publish data on.
package calendar

import (
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// fixedHolidays are national holidays that fall on the same month/day every year.
var fixedHolidays = map[string]struct{}{
	"01-01": {}, // New Year
	"04-21": {}, // Tiradentes
	"05-01": {}, // Labor Day
	"09-07": {}, // Independence Day
	"10-12": {}, // Our Lady Aparecida
	"11-02": {}, // All Souls' Day
	"11-15": {}, // Republic Proclamation
	"12-25": {}, // Christmas
}

// IsBusinessDay reports whether d is a Brazilian business day.
// Weekends, fixed national holidays and the Easter-based movable holidays
// (Carnival Monday/Tuesday, Good Friday, Corpus Christi) are excluded.
func IsBusinessDay(d time.Time) bool {
	d = models.DateOnly(d)

	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	key := d.Format("01-02")
	if _, ok := fixedHolidays[key]; ok {
		return false
	}
	// Black Consciousness Day became a national holiday in 2024.
	if key == "11-20" && d.Year() >= 2024 {
		return false
	}

	easter := EasterSunday(d.Year())
	for _, offset := range []int{-48, -47, -2, 60} {
		if d.Equal(easter.AddDate(0, 0, offset)) {
			return false
		}
	}
	return true
}

// LastNBusinessDays returns the last n business days up to and including from,
// most recent first.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := models.DateOnly(from)
	for len(out) < n {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// LastBusinessDay returns the most recent business day on or before from.
func LastBusinessDay(from time.Time) time.Time {
	return LastNBusinessDays(1, from)[0]
}

// BusinessDays lists the business days inside w, oldest first.
func BusinessDays(w models.Window) []time.Time {
	var out []time.Time
	for d := models.DateOnly(w.Start); !d.After(models.DateOnly(w.End)); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// DefaultWindow spans from start to today, which is the range offered before the
// user touches the date picker.
func DefaultWindow(start, now time.Time) models.Window {
	return models.NewWindow(start, now)
}

// EasterSunday returns Easter Sunday of year (Meeus/Jones/Butcher algorithm).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
