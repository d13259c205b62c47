package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const header = "DataReferencia;CodigoInstrumento;AcaoAtualizacao;PrecoNegocio;QuantidadeNegociada;HoraFechamento;CodigoIdentificadorNegocio;TipoSessaoPregao;DataNegocio;CodigoParticipanteComprador;CodigoParticipanteVendedor\n"

// Friday 2025-09-19; the three business days before and including it are 17, 18, 19.
var anchor = time.Date(2025, 9, 19, 18, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2025, 9, d, 0, 0, 0, 0, time.UTC) }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func sampleFile(d time.Time) string {
	iso := d.Format("2006-01-02")
	return header +
		iso + ";PETR4;0;38,10;100;100000000;10;1;" + iso + ";3;308\n" +
		iso + ";PETR4;0;38,25;200;163000000;11;1;" + iso + ";3;308\n"
}

func TestRun_LoadsEveryDay(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []int{17, 18, 19} {
		writeFile(t, dir, FileName(day(d)), sampleFile(day(d)))
	}

	repo := &fakeRepo{}
	rep, err := New(repo).Run(context.Background(), Options{Dir: dir, Days: 3, Parallel: 2, Now: anchor})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Files != 3 || rep.Rows != 6 || rep.Skipped != 0 {
		t.Fatalf("report = %+v", rep)
	}
	if repo.rows() != 6 {
		t.Fatalf("inserted = %d, want 6", repo.rows())
	}
	for _, d := range []int{17, 18, 19} {
		if repo.logged[day(d)] != 2 {
			t.Errorf("log for %d = %d, want 2", d, repo.logged[day(d)])
		}
	}
}

func TestRun_SkipIfAlreadyIngested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName(day(19)), sampleFile(day(19)))

	repo := &fakeRepo{has: map[time.Time]bool{day(19): true}}
	rep, err := New(repo).Run(context.Background(), Options{Dir: dir, Days: 1, Now: anchor})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if repo.rows() != 0 || rep.Skipped != 1 {
		t.Fatalf("expected skip, rows=%d report=%+v", repo.rows(), rep)
	}
}

func TestRun_ForceReprocess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName(day(19)), sampleFile(day(19)))

	repo := &fakeRepo{has: map[time.Time]bool{day(19): true}}
	if _, err := New(repo).Run(context.Background(), Options{Dir: dir, Days: 1, Parallel: 1, Force: true, Now: anchor}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !repo.deleted[day(19)] {
		t.Fatal("expected delete before reload")
	}
	if repo.rows() != 2 {
		t.Fatalf("inserted = %d, want 2", repo.rows())
	}
}

func TestRun_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName(day(19)), sampleFile(day(19)))

	_, err := New(&fakeRepo{}).Run(context.Background(), Options{Dir: dir, Days: 2, Now: anchor})
	if err == nil || !strings.Contains(err.Error(), "missing required files") || !strings.Contains(err.Error(), FileName(day(18))) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestRun_SkipsHolidays(t *testing.T) {
	dir := t.TempDir()
	// 2025-11-20 (Thursday) is a national holiday; the day before the 21st is the 19th.
	writeFile(t, dir, FileName(time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)), header)
	writeFile(t, dir, FileName(time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC)), header)

	rep, err := New(&fakeRepo{}).Run(context.Background(), Options{Dir: dir, Days: 2, Now: time.Date(2025, 11, 21, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Files != 2 || rep.Rows != 0 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRun_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeRepo
	}{
		{"has ingestion", &fakeRepo{hasErr: context.DeadlineExceeded}},
		{"upsert log", &fakeRepo{upsertErr: context.Canceled}},
		{"insert", &fakeRepo{insertErr: context.Canceled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName(day(19)), sampleFile(day(19)))
			if _, err := New(tt.repo).Run(context.Background(), Options{Dir: dir, Days: 1, Parallel: 1, Now: anchor}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want int }{{-1, 1}, {0, 1}, {3, 3}, {7, 7}, {10, 7}}
	for _, c := range cases {
		if got := clamp(c.in, 1, 7); got != c.want {
			t.Errorf("clamp(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
