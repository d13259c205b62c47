package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestParseAndPersistFile_TableDriven(t *testing.T) {
	dir := t.TempDir()
	validRow := ";PETR4;0;10,50;100;101530000;ABC;1;2025-09-11;B;S\n"

	cases := []struct {
		name        string
		content     string
		batch       int
		wantErr     string
		wantBatches int
		wantRows    int
	}{
		{name: "ok single row", content: header + validRow, batch: 5, wantBatches: 1, wantRows: 1},
		{name: "rows split in batches", content: header + strings.Repeat(validRow, 5), batch: 2, wantBatches: 3, wantRows: 5},
		{name: "header only", content: header, batch: 5},
		{name: "bom before header", content: "\ufeff" + header + validRow, batch: 5, wantBatches: 1, wantRows: 1},
		{name: "empty file", content: "", batch: 5, wantErr: "read header"},
		{name: "bad header order", content: "X;Y;Z\n", batch: 5, wantErr: "invalid header length"},
		{name: "bad col count", content: header + "a;b\n", batch: 5, wantErr: "invalid column count on line 2"},
		{name: "empty numeric tolerated", content: header + ";PETR4;0;; ;;;;;;\n", batch: 5, wantBatches: 1, wantRows: 1},
		{name: "invalid price", content: header + ";PETR4;0;abc;100;;;;;;\n", batch: 5, wantErr: "invalid TradePrice"},
		{name: "invalid quantity", content: header + ";PETR4;0;1;1.5;;;;;;\n", batch: 5, wantErr: "invalid TradeQuantity"},
		{name: "invalid closing time", content: header + ";PETR4;0;1;100;12;;;;;\n", batch: 5, wantErr: "ClosingTime length"},
		{name: "invalid date", content: header + ";PETR4;0;1;100;;;;11/09/2025;;\n", batch: 5, wantErr: "invalid TradeDate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, dir, "file.txt", tc.content)
			repo := &fakeRepo{}
			n, err := parseAndPersistFile(context.Background(), path, repo, tc.batch)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("err = %v, want it to mention %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if n != tc.wantRows || len(repo.batches) != tc.wantBatches {
				t.Fatalf("rows=%d batches=%d, want %d and %d", n, len(repo.batches), tc.wantRows, tc.wantBatches)
			}
		})
	}
}

func TestCheckHeader(t *testing.T) {
	good := append([]string(nil), models.TradeFileHeader...)
	swapped := append([]string(nil), good...)
	swapped[3], swapped[4] = swapped[4], swapped[3]
	padded := append([]string(nil), good...)
	padded[0] = "\ufeff" + padded[0] + " "

	for name, tc := range map[string]struct {
		in      []string
		wantErr bool
	}{
		"exact":        {in: good},
		"bom and pad":  {in: padded},
		"short":        {in: good[:10], wantErr: true},
		"swapped cols": {in: swapped, wantErr: true},
	} {
		if err := checkHeader(tc.in); (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", name, err, tc.wantErr)
		}
	}
}

func TestRecordToTrade(t *testing.T) {
	rec := strings.Split("2025-09-11;VALE3;0;61,42;300;163012345;2050;1;2025-09-11;85;3", ";")
	tr, err := recordToTrade(rec)
	if err != nil {
		t.Fatalf("recordToTrade: %v", err)
	}
	if tr.InstrumentCode != "VALE3" || tr.TradePrice != 61.42 || tr.TradeQuantity != 300 {
		t.Fatalf("unexpected trade: %+v", tr)
	}
	if tr.ClosingTime.Hour() != 16 || tr.ClosingTime.Minute() != 30 || tr.ClosingTime.Second() != 12 {
		t.Fatalf("closing time = %v", tr.ClosingTime)
	}
	if !tr.TradeDate.Equal(time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("trade date = %v", tr.TradeDate)
	}
}

func TestParseAndPersistFile_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	rows := strings.Repeat(";PETR4;0;10,50;100;101530000;ABC;1;2025-09-11;B;S\n", 1000)
	path := writeTempFile(t, dir, "big.csv", header+rows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := parseAndPersistFile(ctx, path, &fakeRepo{}, 100); err == nil {
		t.Fatalf("expected context canceled error")
	}
}

func TestParseAndPersistFile_MissingFile(t *testing.T) {
	if _, err := parseAndPersistFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), &fakeRepo{}, 10); err == nil {
		t.Fatal("expected open error")
	}
}
