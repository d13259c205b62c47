package ingestion

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// fakeRepo records calls made by the ingestor and parser.
type fakeRepo struct {
	mu        sync.Mutex
	has       map[time.Time]bool
	deleted   map[time.Time]bool
	logged    map[time.Time]int
	batches   [][]models.Trade
	insertErr error
	hasErr    error
	upsertErr error
}

func (f *fakeRepo) InsertTradesBatch(_ context.Context, trades []models.Trade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]models.Trade(nil), trades...))
	return f.insertErr
}

func (f *fakeRepo) DailyBars(context.Context, string, time.Time, time.Time) ([]models.Bar, error) {
	return nil, nil
}

func (f *fakeRepo) Instruments(context.Context) ([]string, error) { return nil, nil }

func (f *fakeRepo) HasIngestionForDate(_ context.Context, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.has[date], f.hasErr
}

func (f *fakeRepo) UpsertIngestionLog(_ context.Context, date time.Time, _ string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.logged == nil {
		f.logged = map[time.Time]int{}
	}
	f.logged[date] = rowCount
	return nil
}

func (f *fakeRepo) DeleteTradesByDate(_ context.Context, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleted == nil {
		f.deleted = map[time.Time]bool{}
	}
	f.deleted[date] = true
	return nil
}

func (f *fakeRepo) LatestIngestion(context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func (f *fakeRepo) rows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}
