package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/export"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go gracefulShutdown(context.Background(), srv, func() { close(cleaned) })

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd(&bytes.Buffer{})
	for _, name := range []string{"serve", "ingest", "returns"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %s not registered: %v", name, err)
		}
	}
}

func TestDateValue(t *testing.T) {
	var d time.Time
	v := newDateValue(&d)
	if v.String() != "" || v.Type() != "date" {
		t.Fatalf("zero value: %q %q", v.String(), v.Type())
	}
	if err := v.Set("2024-02-30"); err == nil {
		t.Fatal("expected error for impossible date")
	}
	if err := v.Set("2024-03-12"); err != nil {
		t.Fatal(err)
	}
	if v.String() != "2024-03-12" || !d.Equal(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %s", d)
	}
}

func TestWriteTable(t *testing.T) {
	d := func(n int) time.Time { return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC) }
	table := models.AlignedTable{
		Columns: []string{"PETR4.SA", "IPCA"},
		Rows: []models.Row{
			{Date: d(2), Values: map[string]float64{"PETR4.SA": 0}},
			{Date: d(3), Values: map[string]float64{"PETR4.SA": 10, "IPCA": 0.42}},
		},
	}
	var buf bytes.Buffer
	if err := writeTable(&buf, table); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines=%q", lines)
	}
	if f := strings.Fields(lines[0]); strings.Join(f, " ") != "Data PETR4.SA IPCA" {
		t.Fatalf("header=%q", lines[0])
	}
	if f := strings.Fields(lines[1]); strings.Join(f, " ") != "2024-01-02 0.00" {
		t.Fatalf("row1=%q", lines[1])
	}
	if f := strings.Fields(lines[2]); strings.Join(f, " ") != "2024-01-03 10.00 0.42" {
		t.Fatalf("row2=%q", lines[2])
	}
}

func TestUpper(t *testing.T) {
	got := upper([]string{" selic", "", "ipca "})
	if strings.Join(got, ",") != "SELIC,IPCA" {
		t.Fatalf("got %v", got)
	}
}

// fakeSGS answers every SGS request with two daily observations.
func fakeSGS(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"data":"02/01/2024","valor":"11.65"},{"data":"03/01/2024","valor":"11.65"}]`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("BCB_SGS_URL", srv.URL+"/sgs/%d")
	t.Setenv("B3_STORE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "disabled")
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	root.SetContext(context.Background())
	err := root.Execute()
	return out.String(), err
}

func TestReturnsCmd_Table(t *testing.T) {
	fakeSGS(t)

	out, err := runRoot(t, "returns", "--tickers=", "--indicators", "selic", "--start", "2024-01-01", "--end", "2024-01-05")
	if err != nil {
		t.Fatalf("returns: %v", err)
	}
	if !strings.Contains(out, "SELIC") || !strings.Contains(out, "2024-01-03") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestReturnsCmd_XLSX(t *testing.T) {
	fakeSGS(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if _, err := runRoot(t, "returns", "--tickers=", "--indicators", "IPCA", "--start", "2024-01-01", "--end", "2024-01-05", "--xlsx", path); err != nil {
		t.Fatalf("returns: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.SheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0][1] != "IPCA" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestReturnsCmd_EmptySelection(t *testing.T) {
	fakeSGS(t)
	_, err := runRoot(t, "returns", "--tickers=", "--indicators=", "--start", "2024-01-01", "--end", "2024-01-05")
	if err == nil || !strings.Contains(err.Error(), "select at least one asset") {
		t.Fatalf("err=%v", err)
	}
}

func TestReturnsCmd_DefaultIndicators(t *testing.T) {
	fakeSGS(t)

	out, err := runRoot(t, "returns", "--tickers=", "--start", "2024-01-01", "--end", "2024-01-05")
	if err != nil {
		t.Fatalf("returns: %v", err)
	}
	header := strings.Fields(strings.SplitN(out, "\n", 2)[0])
	if strings.Join(header, " ") != "Data SELIC IPCA" {
		t.Fatalf("header=%q", header)
	}
}

func TestReturnsCmd_BadDate(t *testing.T) {
	fakeSGS(t)
	if _, err := runRoot(t, "returns", "--start", "01/01/2024"); err == nil {
		t.Fatal("expected flag parse error")
	}
}
