package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/b3dash/internal/app"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/export"
)

func (c *cli) returnsCmd() *cobra.Command {
	var (
		tickers, indicators []string
		custom, xlsxPath    string
		start, end          time.Time
	)

	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Print the cumulative returns table or save it as XLSX",
		Example: `  b3dash returns --tickers ^BVSP,VALE3.SA,USD --indicators SELIC,IPCA --start 2024-01-01
  b3dash returns --custom "itub4.sa, bbdc4.sa" --xlsx rentabilidade.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var db *sql.DB
			if c.cfg.Store.Enabled {
				var err error
				if db, err = app.InitPostgres(c.cfg); err != nil {
					return fmt.Errorf("db connect error: %w", err)
				}
				defer func() { _ = db.Close() }()
			}
			svc := app.NewDashboard(c.cfg, db).Service

			w := svc.Catalog().DefaultWindow
			if !start.IsZero() {
				w.Start = start
			}
			if !end.IsZero() {
				w.End = end
			}
			sel := models.Selection{
				Window:        models.NewWindow(w.Start, w.End),
				Instruments:   upper(tickers),
				Indicators:    upper(indicators),
				CustomTickers: custom,
			}
			if !cmd.Flags().Changed("tickers") {
				sel.Instruments = svc.Catalog().Comparison
			}
			if !cmd.Flags().Changed("indicators") {
				sel.Indicators = svc.Catalog().Indicators
			}

			table, err := svc.CumulativeReturns(cmd.Context(), sel)
			if err != nil {
				return fmt.Errorf("returns %s: %w", sel.Window, err)
			}

			if xlsxPath == "" {
				return writeTable(c.out, table)
			}
			return saveXLSX(xlsxPath, table)
		},
	}

	cmd.Flags().StringSliceVar(&tickers, "tickers", nil, "instruments, comma separated (default comparison set)")
	cmd.Flags().StringSliceVar(&indicators, "indicators", nil, "indicators: SELIC, IPCA (default both)")
	cmd.Flags().StringVar(&custom, "custom", "", "extra tickers as free text")
	cmd.Flags().Var(newDateValue(&start), "start", "window start YYYY-MM-DD")
	cmd.Flags().Var(newDateValue(&end), "end", "window end YYYY-MM-DD")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an XLSX file instead of printing")
	return cmd
}

// writeTable prints table with aligned columns; absent cells are left blank.
func writeTable(out io.Writer, table models.AlignedTable) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{export.DateHeader}, table.Columns...)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for i, r := range table.Rows {
		cells := []string{r.Date.Format(models.DateLayout)}
		for _, col := range table.Columns {
			v, ok := table.Value(i, col)
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, strconv.FormatFloat(v, 'f', 2, 64))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func saveXLSX(path string, table models.AlignedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteXLSX(f, table); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func upper(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
