package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/logger"
)

// Fallback asks each BarProvider in order and returns the first non-empty answer.
type Fallback []BarProvider

// Name joins the names of the chained providers.
func (f Fallback) Name() string {
	names := make([]string, len(f))
	for i, p := range f {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

// DailyBars returns ErrNoData only when every provider came back empty; otherwise
// the last transport error is reported.
func (f Fallback) DailyBars(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error) {
	var lastErr error
	for _, p := range f {
		bars, err := p.DailyBars(ctx, ticker, w)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err != nil && !errors.Is(err, models.ErrNoData) {
			logger.L().Warn().Str("provider", p.Name()).Str("ticker", ticker).Err(err).Msg("bar provider failed, trying next")
			lastErr = err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, models.ErrNoData
}
