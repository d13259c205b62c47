package provider

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/guttosm/b3dash/internal/cache"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/logger"
)

// CachedRates memoizes a RateProvider in store.
type CachedRates struct {
	Inner RateProvider
	Store *cache.Store
}

// Series returns the cached series for (code, w) or fetches it.
// An ErrNoData answer is cached as an empty series so the provider is not asked again.
func (c CachedRates) Series(ctx context.Context, code int, w models.Window) (models.TimeSeries, error) {
	key := cache.NewKey("bcb-sgs", strconv.Itoa(code), w)
	v, hit, err := c.Store.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		ts, err := c.Inner.Series(ctx, code, w)
		if errors.Is(err, models.ErrNoData) {
			return models.TimeSeries{Name: ts.Name}, nil
		}
		return ts, err
	})
	if err != nil {
		return models.TimeSeries{}, err
	}
	logger.L().Debug().Str("key", key.String()).Bool("cache_hit", hit).Msg("rate series")
	return emptyAsNoData(v.(models.TimeSeries))
}

// CachedCurrencies memoizes a CurrencyProvider in store.
type CachedCurrencies struct {
	Inner CurrencyProvider
	Store *cache.Store
}

// Quotes returns the cached quotes for (currency, w) or fetches them.
func (c CachedCurrencies) Quotes(ctx context.Context, currency string, w models.Window) (models.TimeSeries, error) {
	key := cache.NewKey("bcb-ptax", strings.ToUpper(currency), w)
	v, hit, err := c.Store.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		ts, err := c.Inner.Quotes(ctx, currency, w)
		if errors.Is(err, models.ErrNoData) {
			return models.TimeSeries{Name: ts.Name}, nil
		}
		return ts, err
	})
	if err != nil {
		return models.TimeSeries{}, err
	}
	logger.L().Debug().Str("key", key.String()).Bool("cache_hit", hit).Msg("currency quotes")
	return emptyAsNoData(v.(models.TimeSeries))
}

// CachedBars memoizes a BarProvider in store.
type CachedBars struct {
	Inner BarProvider
	Store *cache.Store
}

// Name returns the wrapped provider's name.
func (c CachedBars) Name() string { return c.Inner.Name() }

// DailyBars returns the cached bars for (ticker, w) or fetches them.
func (c CachedBars) DailyBars(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error) {
	key := cache.NewKey(c.Inner.Name(), ticker, w)
	v, hit, err := c.Store.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		bars, err := c.Inner.DailyBars(ctx, ticker, w)
		if errors.Is(err, models.ErrNoData) {
			return []models.Bar(nil), nil
		}
		return bars, err
	})
	if err != nil {
		return nil, err
	}
	logger.L().Debug().Str("key", key.String()).Bool("cache_hit", hit).Msg("daily bars")

	bars := v.([]models.Bar)
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	return bars, nil
}

func emptyAsNoData(ts models.TimeSeries) (models.TimeSeries, error) {
	if ts.Empty() {
		return ts, models.ErrNoData
	}
	return ts, nil
}
