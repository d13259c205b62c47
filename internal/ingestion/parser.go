package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/storage"
)

// parseAndPersistFile streams one file into repo in batches of size batch.
// A header that differs from models.TradeFileHeader, a row with the wrong column count,
// or a malformed value fails the whole file. Empty cells become zero values.
func parseAndPersistFile(ctx context.Context, path string, repo storage.TradesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	buf := make([]models.Trade, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertTradesBatch(ctx, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(models.TradeFileHeader) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(models.TradeFileHeader), len(rec))
		}

		tr, err := recordToTrade(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, tr)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

func checkHeader(header []string) error {
	want := models.TradeFileHeader
	if len(header) != len(want) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(want), len(header))
	}
	for i, h := range header {
		// a UTF-8 BOM may precede the first column name
		if got := strings.TrimPrefix(strings.TrimSpace(h), "\ufeff"); got != want[i] {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, want[i], h)
		}
	}
	return nil
}

// recordToTrade maps one validated record onto a Trade. Columns follow
// models.TradeFileHeader; dates are ISO, prices use a comma decimal separator and
// HoraFechamento is HHMMSSmmm of which only HHMMSS is kept.
func recordToTrade(rec []string) (models.Trade, error) {
	var (
		t   models.Trade
		err error
	)
	field := func(i int) string { return strings.TrimSpace(rec[i]) }

	if t.ReferenceDate, err = parseDate(field(0)); err != nil {
		return t, fmt.Errorf("invalid ReferenceDate: %w", err)
	}
	t.InstrumentCode = field(1)
	t.UpdateAction = field(2)

	if s := field(3); s != "" {
		if t.TradePrice, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err != nil {
			return t, fmt.Errorf("invalid TradePrice: %w", err)
		}
	}
	if s := field(4); s != "" {
		if t.TradeQuantity, err = strconv.ParseInt(s, 10, 64); err != nil {
			return t, fmt.Errorf("invalid TradeQuantity: %w", err)
		}
	}
	if t.ClosingTime, err = parseClock(field(5)); err != nil {
		return t, err
	}

	t.TradeIdentifierCode = field(6)
	t.SessionType = field(7)

	if t.TradeDate, err = parseDate(field(8)); err != nil {
		return t, fmt.Errorf("invalid TradeDate: %w", err)
	}
	t.BuyerParticipantCode = field(9)
	t.SellerParticipantCode = field(10)

	return t, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, s)
}

func parseClock(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if len(s) < 6 {
		return time.Time{}, fmt.Errorf("invalid ClosingTime length (need at least HHMMSS): %q", s)
	}
	h, err := time.Parse("150405", s[:6])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ClosingTime: %w", err)
	}
	return time.Date(0, 1, 1, h.Hour(), h.Minute(), h.Second(), 0, time.UTC), nil
}
