// Package b3local serves daily bars aggregated from locally ingested B3 trade files.
package b3local

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/storage"
)

// Store implements provider.BarProvider on top of the trades repository.
type Store struct {
	repo storage.TradesRepository
}

func New(repo storage.TradesRepository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Name() string { return "b3local" }

// DailyBars looks the ticker up by its B3 instrument code, so "PETR4.SA" and
// "PETR4" resolve to the same rows. Index symbols such as "^BVSP" are not traded
// in the spot file and always come back empty.
func (s *Store) DailyBars(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error) {
	code := strings.ToUpper(models.DisplayTicker(strings.TrimSpace(ticker)))
	if code == "" || strings.HasPrefix(code, "^") {
		return nil, models.ErrNoData
	}

	bars, err := s.repo.DailyBars(ctx, code, models.DateOnly(w.Start), models.DateOnly(w.End))
	if err != nil {
		return nil, fmt.Errorf("b3local %s: %w", code, err)
	}
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	return bars, nil
}

// Instruments lists every ingested instrument code as a Yahoo style ticker,
// e.g. "PETR4" becomes "PETR4.SA", so the result can be fed back to DailyBars.
func (s *Store) Instruments(ctx context.Context) ([]string, error) {
	codes, err := s.repo.Instruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("b3local instruments: %w", err)
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c+".SA")
		}
	}
	return out, nil
}
