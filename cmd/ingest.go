package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/b3dash/internal/app"
	"github.com/guttosm/b3dash/internal/ingestion"
	"github.com/guttosm/b3dash/internal/logger"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/storage"
)

func (c *cli) ingestCmd() *cobra.Command {
	var opts ingestion.Options

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the last business days of B3 trade files into PostgreSQL",
		Long: `Load one DD-MM-YYYY_NEGOCIOSAVISTA.txt file per business day into the
trades store. Days already in the ingestion log are skipped unless --force.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.InitPostgres(c.cfg)
			if err != nil {
				return fmt.Errorf("db connect error: %w", err)
			}
			defer func() { _ = db.Close() }()

			repo := storage.NewTradesRepository(db)
			report, err := ingestion.New(repo).Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}

			latest, ok, err := repo.LatestIngestion(cmd.Context())
			if err != nil {
				return fmt.Errorf("read ingestion log: %w", err)
			}
			ev := logger.L().Info().Int("files", report.Files).Int("skipped", report.Skipped).Int("rows", report.Rows)
			if ok {
				ev = ev.Str("latest_day", latest.Format(models.DateLayout))
			}
			ev.Msg("ingestion completed successfully")

			_, err = fmt.Fprintf(c.out, "ingested %d file(s), %d skipped, %d rows\n", report.Files, report.Skipped, report.Rows)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "./data/input", "directory with .txt files")
	cmd.Flags().IntVar(&opts.Days, "days", 7, "number of last business days to ingest (1-7)")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", 0, "files processed concurrently (0=auto up to CPU, max 7)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "reprocess days already ingested (deletes their trades first)")
	cmd.Flags().Var(newDateValue(&opts.Now), "as-of", "anchor day for the lookback, YYYY-MM-DD (default today)")
	return cmd
}

// dateValue is a pflag.Value for YYYY-MM-DD flags.
type dateValue struct{ t *time.Time }

func newDateValue(t *time.Time) *dateValue { return &dateValue{t: t} }

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(models.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	*d.t = t
	return nil
}

func (d *dateValue) Type() string { return "date" }
