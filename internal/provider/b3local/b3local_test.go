package b3local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/storage"
)

type fakeRepo struct {
	storage.TradesRepository
	gotCode string
	bars    []models.Bar
	codes   []string
	err     error
}

func (f *fakeRepo) Instruments(context.Context) ([]string, error) {
	return f.codes, f.err
}

func (f *fakeRepo) DailyBars(_ context.Context, code string, _, _ time.Time) ([]models.Bar, error) {
	f.gotCode = code
	return f.bars, f.err
}

func window() models.Window {
	return models.Window{
		Start: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestDailyBars(t *testing.T) {
	repo := &fakeRepo{bars: []models.Bar{{Date: window().Start, Close: 38}}}
	s := New(repo)

	bars, err := s.DailyBars(context.Background(), "petr4.SA", window())
	if err != nil || len(bars) != 1 {
		t.Fatalf("bars=%v err=%v", bars, err)
	}
	if repo.gotCode != "PETR4" {
		t.Errorf("instrument code = %q, want PETR4", repo.gotCode)
	}
}

func TestDailyBars_NoData(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
		repo   *fakeRepo
	}{
		{"index symbol", "^BVSP", &fakeRepo{}},
		{"empty ticker", " ", &fakeRepo{}},
		{"no rows", "WEGE3.SA", &fakeRepo{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.repo).DailyBars(context.Background(), tt.ticker, window()); !errors.Is(err, models.ErrNoData) {
				t.Fatalf("err = %v, want ErrNoData", err)
			}
		})
	}
}

func TestDailyBars_RepoError(t *testing.T) {
	_, err := New(&fakeRepo{err: errors.New("conn refused")}).DailyBars(context.Background(), "VALE3.SA", window())
	if err == nil || errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestInstruments(t *testing.T) {
	got, err := New(&fakeRepo{codes: []string{"PETR4", " vale3", ""}}).Instruments(context.Background())
	if err != nil {
		t.Fatalf("Instruments: %v", err)
	}
	if len(got) != 2 || got[0] != "PETR4.SA" || got[1] != "VALE3.SA" {
		t.Fatalf("got %v", got)
	}

	boom := errors.New("db down")
	if _, err := New(&fakeRepo{err: boom}).Instruments(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
