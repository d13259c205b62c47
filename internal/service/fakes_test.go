package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
)

func d(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

func jan() models.Window { return models.Window{Start: d(1), End: d(31)} }

func series(name string, vals map[int]float64) models.TimeSeries {
	var pts []models.Point
	for day, v := range vals {
		pts = append(pts, models.Point{Date: d(day), Value: v})
	}
	return models.NewTimeSeries(name, pts)
}

func bars(closes map[int]float64) []models.Bar {
	var out []models.Bar
	for _, p := range series("", closes).Points {
		out = append(out, models.Bar{Date: p.Date, Open: p.Value, High: p.Value, Low: p.Value, Close: p.Value, Volume: 1000})
	}
	return out
}

type fakeRates map[int]models.TimeSeries

func (f fakeRates) Series(_ context.Context, code int, _ models.Window) (models.TimeSeries, error) {
	ts, ok := f[code]
	if !ok {
		return models.TimeSeries{}, models.ErrNoData
	}
	return ts, nil
}

type fakeQuotes map[string]models.TimeSeries

func (f fakeQuotes) Quotes(_ context.Context, code string, _ models.Window) (models.TimeSeries, error) {
	ts, ok := f[code]
	if !ok {
		return models.TimeSeries{}, errors.New("ptax unavailable")
	}
	return ts, nil
}

type fakeBars map[string][]models.Bar

func (f fakeBars) Name() string { return "fake" }

func (f fakeBars) DailyBars(_ context.Context, ticker string, _ models.Window) ([]models.Bar, error) {
	b, ok := f[ticker]
	if !ok {
		return nil, models.ErrNoData
	}
	return b, nil
}

func newTestService(r fakeRates, q fakeQuotes, b fakeBars) DashboardService {
	return NewDashboardService(Deps{
		Rates:      r,
		Currencies: q,
		Bars:       b,
		Now:        func() time.Time { return time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC) },
	})
}

type fakeLister struct {
	tickers []string
	err     error
}

func (f fakeLister) Instruments(context.Context) ([]string, error) { return f.tickers, f.err }
