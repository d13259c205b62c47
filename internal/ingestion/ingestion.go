// Package ingestion loads B3 "Negócios à Vista" daily trade files into the
// trades store.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/b3dash/internal/calendar"
	"github.com/guttosm/b3dash/internal/logger"
	"github.com/guttosm/b3dash/internal/storage"
)

const (
	fileDateLayout   = "02-01-2006" // DD-MM-YYYY
	fileSuffix       = "_NEGOCIOSAVISTA.txt"
	defaultBatchSize = 5000
	maxDays          = 7
)

// Options controls one ingestion run.
type Options struct {
	Dir      string
	Days     int  // business days to load, clamped to 1..7
	Parallel int  // concurrent files; 0 means min(7, NumCPU)
	Force    bool // reload days that were already ingested
	// Now anchors the business-day lookback; zero means time.Now.
	Now time.Time
}

// Report summarizes a finished run.
type Report struct {
	Files   int
	Skipped int
	Rows    int
}

// Ingestor loads files through a TradesRepository.
type Ingestor struct {
	repo  storage.TradesRepository
	batch int
}

func New(repo storage.TradesRepository) *Ingestor {
	return &Ingestor{repo: repo, batch: defaultBatchSize}
}

// FileName returns the expected input file name for a business day.
func FileName(day time.Time) string {
	return day.Format(fileDateLayout) + fileSuffix
}

// Run ingests one file per business day in opts.Dir. Every expected file must
// be present before anything is loaded. The first failing file cancels the rest.
func (in *Ingestor) Run(ctx context.Context, opts Options) (Report, error) {
	days := clamp(opts.Days, 1, maxDays)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	dates := calendar.LastNBusinessDays(days, now)

	var (
		files   []string
		missing []string
	)
	for _, d := range dates {
		name := FileName(d)
		full := filepath.Join(opts.Dir, name)
		files = append(files, full)

		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
				continue
			}
			return Report{}, fmt.Errorf("stat failed for %s: %w", full, err)
		}
	}
	if len(missing) > 0 {
		return Report{}, fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = min(maxDays, runtime.NumCPU())
	}
	parallel = clamp(parallel, 1, maxDays)

	log := logger.L().With().Str("component", "ingestion").Logger()
	log.Info().Int("files", len(files)).Str("dir", opts.Dir).Int("max_parallel", parallel).Bool("force", opts.Force).Msg("ingestion start")

	var skipped, rows atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, file := range files {
		file := file
		day := dates[i]
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(file)

			exists, err := in.repo.HasIngestionForDate(gctx, day)
			if err != nil {
				return fmt.Errorf("file %s: check ingestion log: %w", base, err)
			}
			if exists && !opts.Force {
				log.Info().Str("file", base).Bool("skipped", true).Msg("already ingested")
				skipped.Add(1)
				return nil
			}
			if exists {
				if err := in.repo.DeleteTradesByDate(gctx, day); err != nil {
					return fmt.Errorf("file %s: delete existing: %w", base, err)
				}
			}

			total, err := parseAndPersistFile(gctx, file, in.repo, in.batch)
			if err != nil {
				log.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", base, err)
			}
			if err := in.repo.UpsertIngestionLog(gctx, day, base, total); err != nil {
				return fmt.Errorf("file %s: upsert ingestion log: %w", base, err)
			}
			rows.Add(int64(total))
			log.Info().Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{Files: len(files), Skipped: int(skipped.Load()), Rows: int(rows.Load())}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
