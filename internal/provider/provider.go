// Package provider defines the contracts of the external market data sources and
// the decorators shared by all of them (caching, fallback).
//
// Providers return models.ErrNoData when a request is valid but yields nothing.
// Any other error is a transport or decoding failure. Callers at the service
// layer treat both the same way: the instrument simply gets no column.
package provider

import (
	"context"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// RateProvider serves numeric indicator series identified by a code
// (e.g. SGS 1178 for Selic).
type RateProvider interface {
	Series(ctx context.Context, code int, w models.Window) (models.TimeSeries, error)
}

// CurrencyProvider serves BRL quotes for a foreign currency.
type CurrencyProvider interface {
	Quotes(ctx context.Context, currency string, w models.Window) (models.TimeSeries, error)
}

// BarProvider serves daily OHLCV bars for a ticker.
type BarProvider interface {
	Name() string
	DailyBars(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error)
}

// InstrumentLister reports the tickers a local source holds data for.
type InstrumentLister interface {
	Instruments(ctx context.Context) ([]string, error)
}
