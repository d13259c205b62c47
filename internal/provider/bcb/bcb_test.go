package bcb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSGS_Series(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		if r.URL.Path != "/bcdata.sgs.1178/dados" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"data":"03/01/2024","valor":"11.65"},{"data":"02/01/2024","valor":"11.75"}]`))
	}))
	defer srv.Close()

	sgs := NewSGS(resty.New(), srv.URL+"/bcdata.sgs.%d/dados")
	ts, err := sgs.Series(context.Background(), models.SGSSelic, models.Window{Start: day(2024, 1, 1), End: day(2024, 1, 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Name != models.IndicatorSELIC {
		t.Errorf("name = %q, want %q", ts.Name, models.IndicatorSELIC)
	}
	if ts.Len() != 2 {
		t.Fatalf("len = %d, want 2", ts.Len())
	}
	if !ts.Points[0].Date.Equal(day(2024, 1, 2)) || ts.Points[0].Value != 11.75 {
		t.Errorf("first point = %+v", ts.Points[0])
	}
	q, _ := gotQuery.Load().(string)
	if q == "" {
		t.Fatal("no query received")
	}
	for _, want := range []string{"dataInicial=01%2F01%2F2024", "dataFinal=05%2F01%2F2024", "formato=json"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestSGS_NotFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	sgs := NewSGS(resty.New(), srv.URL+"/%d")
	_, err := sgs.Series(context.Background(), 433, models.Window{Start: day(2024, 1, 1), End: day(2024, 2, 1)})
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestSGS_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sgs := NewSGS(resty.New(), srv.URL+"/%d")
	_, err := sgs.Series(context.Background(), 433, models.Window{Start: day(2024, 1, 1), End: day(2024, 2, 1)})
	if err == nil || errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSGS_ChunksLongWindows(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			_, _ = w.Write([]byte(`[{"data":"02/01/2004","valor":"1"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"data":"02/01/2024","valor":"2"}]`))
	}))
	defer srv.Close()

	sgs := NewSGS(resty.New(), srv.URL+"/%d")
	ts, err := sgs.Series(context.Background(), 1, models.Window{Start: day(2004, 1, 1), End: day(2024, 12, 31)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
	if ts.Name != "1" {
		t.Errorf("unknown codes should be named by number, got %q", ts.Name)
	}
}

func TestSplitWindow(t *testing.T) {
	chunks := splitWindow(models.Window{Start: day(2000, 1, 1), End: day(2020, 6, 30)}, 10)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if !chunks[0].End.Equal(day(2009, 12, 31)) || !chunks[1].Start.Equal(day(2010, 1, 1)) {
		t.Errorf("unexpected boundaries: %v", chunks)
	}
	if !chunks[2].End.Equal(day(2020, 6, 30)) {
		t.Errorf("last chunk end = %v", chunks[2].End)
	}
}

func TestPTAX_Quotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("@moeda"); got != "'USD'" {
			t.Errorf("moeda = %q", got)
		}
		_, _ = w.Write([]byte(`{"value":[
			{"cotacaoCompra":4.85,"cotacaoVenda":4.86,"dataHoraCotacao":"2024-01-02 10:04:29.154","tipoBoletim":"Abertura"},
			{"cotacaoCompra":4.89,"cotacaoVenda":4.8914,"dataHoraCotacao":"2024-01-02 13:08:26.871","tipoBoletim":"Fechamento"},
			{"cotacaoCompra":4.91,"cotacaoVenda":4.9116,"dataHoraCotacao":"2024-01-03 13:03:23.54","tipoBoletim":"Fechamento"}
		]}`))
	}))
	defer srv.Close()

	p := NewPTAX(resty.New(), srv.URL)
	ts, err := p.Quotes(context.Background(), "usd", models.Window{Start: day(2024, 1, 1), End: day(2024, 1, 3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Name != "USD" || ts.Len() != 2 {
		t.Fatalf("got %s with %d points", ts.Name, ts.Len())
	}
	if ts.Points[0].Value != 4.8914 || !ts.Points[1].Date.Equal(day(2024, 1, 3)) {
		t.Errorf("unexpected points: %+v", ts.Points)
	}
}

func TestPTAX_EmptyIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	_, err := NewPTAX(resty.New(), srv.URL).Quotes(context.Background(), "CHF", models.Window{Start: day(2024, 1, 1), End: day(2024, 1, 3)})
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}
