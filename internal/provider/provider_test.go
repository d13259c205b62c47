package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/b3dash/internal/cache"
	"github.com/guttosm/b3dash/internal/domain/models"
)

type fakeBars struct {
	name  string
	bars  []models.Bar
	err   error
	calls int
}

func (f *fakeBars) Name() string { return f.name }

func (f *fakeBars) DailyBars(context.Context, string, models.Window) ([]models.Bar, error) {
	f.calls++
	return f.bars, f.err
}

type fakeRates struct {
	ts    models.TimeSeries
	err   error
	calls int
}

func (f *fakeRates) Series(context.Context, int, models.Window) (models.TimeSeries, error) {
	f.calls++
	return f.ts, f.err
}

type fakeQuotes struct {
	calls int
	last  string
}

func (f *fakeQuotes) Quotes(_ context.Context, currency string, _ models.Window) (models.TimeSeries, error) {
	f.calls++
	f.last = currency
	return models.NewTimeSeries(currency, []models.Point{{Date: testWindow().Start, Value: 5}}), nil
}

func testWindow() models.Window {
	return models.Window{
		Start: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func someBars() []models.Bar {
	return []models.Bar{{Date: testWindow().Start, Close: 10}}
}

func TestCachedBars_HitsInnerOnce(t *testing.T) {
	inner := &fakeBars{name: "yahoo", bars: someBars()}
	c := CachedBars{Inner: inner, Store: cache.New(time.Hour)}

	for i := 0; i < 3; i++ {
		bars, err := c.DailyBars(context.Background(), "PETR4.SA", testWindow())
		if err != nil || len(bars) != 1 {
			t.Fatalf("call %d: bars=%v err=%v", i, bars, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if c.Name() != "yahoo" {
		t.Errorf("name = %q", c.Name())
	}
}

func TestCachedBars_NoDataIsCached(t *testing.T) {
	inner := &fakeBars{name: "yahoo", err: models.ErrNoData}
	c := CachedBars{Inner: inner, Store: cache.New(time.Hour)}

	for i := 0; i < 2; i++ {
		if _, err := c.DailyBars(context.Background(), "XXXX3.SA", testWindow()); !errors.Is(err, models.ErrNoData) {
			t.Fatalf("err = %v, want ErrNoData", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedBars_TransportErrorNotCached(t *testing.T) {
	inner := &fakeBars{name: "yahoo", err: errors.New("timeout")}
	c := CachedBars{Inner: inner, Store: cache.New(time.Hour)}

	for i := 0; i < 2; i++ {
		if _, err := c.DailyBars(context.Background(), "VALE3.SA", testWindow()); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCachedRates(t *testing.T) {
	inner := &fakeRates{ts: models.NewTimeSeries("SELIC", []models.Point{{Date: testWindow().Start, Value: 11.65}})}
	c := CachedRates{Inner: inner, Store: cache.New(time.Hour)}

	for i := 0; i < 2; i++ {
		ts, err := c.Series(context.Background(), models.SGSSelic, testWindow())
		if err != nil || ts.Len() != 1 {
			t.Fatalf("ts=%v err=%v", ts, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	other := testWindow()
	other.End = other.End.AddDate(0, 1, 0)
	if _, err := c.Series(context.Background(), models.SGSSelic, other); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("different window should miss, calls = %d", inner.calls)
	}
}

func TestCachedCurrencies_KeyIsCaseInsensitive(t *testing.T) {
	inner := &fakeQuotes{}
	c := CachedCurrencies{Inner: inner, Store: cache.New(time.Hour)}

	if _, err := c.Quotes(context.Background(), "usd", testWindow()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Quotes(context.Background(), "USD", testWindow()); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name      string
		chain     []*fakeBars
		wantLen   int
		wantNoDat bool
		wantErr   bool
	}{
		{
			name:    "first provider answers",
			chain:   []*fakeBars{{name: "a", bars: someBars()}, {name: "b", bars: someBars()}},
			wantLen: 1,
		},
		{
			name:    "falls through empty and failing providers",
			chain:   []*fakeBars{{name: "a", err: models.ErrNoData}, {name: "b", err: errors.New("down")}, {name: "c", bars: someBars()}},
			wantLen: 1,
		},
		{
			name:      "all empty",
			chain:     []*fakeBars{{name: "a", err: models.ErrNoData}, {name: "b"}},
			wantNoDat: true,
		},
		{
			name:    "transport error wins over empty",
			chain:   []*fakeBars{{name: "a", err: errors.New("down")}, {name: "b", err: models.ErrNoData}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fallback
			for _, p := range tt.chain {
				f = append(f, p)
			}
			bars, err := f.DailyBars(context.Background(), "PETR4.SA", testWindow())
			switch {
			case tt.wantNoDat:
				if !errors.Is(err, models.ErrNoData) {
					t.Fatalf("err = %v, want ErrNoData", err)
				}
			case tt.wantErr:
				if err == nil || errors.Is(err, models.ErrNoData) {
					t.Fatalf("err = %v, want transport error", err)
				}
			default:
				if err != nil || len(bars) != tt.wantLen {
					t.Fatalf("bars=%v err=%v", bars, err)
				}
			}
		})
	}
}

func TestFallback_Name(t *testing.T) {
	f := Fallback{&fakeBars{name: "yahoo"}, &fakeBars{name: "b3"}}
	if f.Name() != "yahoo+b3" {
		t.Errorf("name = %q", f.Name())
	}
	if f[1].(*fakeBars).calls != 0 {
		t.Error("Name must not fetch")
	}
}
