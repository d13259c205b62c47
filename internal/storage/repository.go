package storage

import (
	"context"
	"database/sql"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// TradesRepository persists B3 spot trades and serves daily bars built from them.
type TradesRepository interface {
	InsertTradesBatch(ctx context.Context, trades []models.Trade) error
	DailyBars(ctx context.Context, instrument string, start, end time.Time) ([]models.Bar, error)
	Instruments(ctx context.Context) ([]string, error)
	HasIngestionForDate(ctx context.Context, date time.Time) (bool, error)
	UpsertIngestionLog(ctx context.Context, date time.Time, filename string, rowCount int) error
	DeleteTradesByDate(ctx context.Context, date time.Time) error
	LatestIngestion(ctx context.Context) (time.Time, bool, error)
}

type tradesRepository struct {
	db *sql.DB
}

func NewTradesRepository(db *sql.DB) TradesRepository {
	return &tradesRepository{db: db}
}

var tradeColumns = []string{
	"reference_date",
	"instrument_code",
	"update_action",
	"trade_price",
	"trade_quantity",
	"closing_time",
	"trade_identifier_code",
	"session_type",
	"trade_date",
	"buyer_participant_code",
	"seller_participant_code",
}

// InsertTradesBatch bulk loads trades with COPY inside a single transaction.
func (r *tradesRepository) InsertTradesBatch(ctx context.Context, trades []models.Trade) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("trades", tradeColumns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			nullTime(t.ReferenceDate),
			t.InstrumentCode,
			t.UpdateAction,
			t.TradePrice,
			t.TradeQuantity,
			nullTime(t.ClosingTime),
			t.TradeIdentifierCode,
			t.SessionType,
			nullTime(t.TradeDate),
			t.BuyerParticipantCode,
			t.SellerParticipantCode,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	// flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

const dailyBarsQuery = `
	SELECT trade_date,
	       (array_agg(trade_price ORDER BY closing_time ASC, trade_identifier_code ASC))[1]  AS open_price,
	       MAX(trade_price)                                                                  AS high_price,
	       MIN(trade_price)                                                                  AS low_price,
	       (array_agg(trade_price ORDER BY closing_time DESC, trade_identifier_code DESC))[1] AS close_price,
	       SUM(trade_quantity)                                                               AS volume
	FROM trades
	WHERE instrument_code = $1 AND trade_date BETWEEN $2 AND $3
	GROUP BY trade_date
	ORDER BY trade_date`

// DailyBars rolls trades of one instrument up into OHLCV bars, one per trade_date.
func (r *tradesRepository) DailyBars(ctx context.Context, instrument string, start, end time.Time) ([]models.Bar, error) {
	rows, err := r.db.QueryContext(ctx, dailyBarsQuery, instrument, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bars []models.Bar
	for rows.Next() {
		var (
			b      models.Bar
			volume int64
		)
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &volume); err != nil {
			return nil, err
		}
		b.Date = models.DateOnly(b.Date)
		b.Volume = float64(volume)
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Instruments lists the distinct instrument codes present in the store.
func (r *tradesRepository) Instruments(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT instrument_code FROM trades ORDER BY instrument_code`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

// HasIngestionForDate reports whether a file for date was already loaded.
func (r *tradesRepository) HasIngestionForDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records the loaded file for date, replacing any earlier entry.
func (r *tradesRepository) UpsertIngestionLog(ctx context.Context, date time.Time, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (file_date, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_date)
		DO UPDATE SET filename = EXCLUDED.filename, row_count = EXCLUDED.row_count, ingested_at = NOW()`,
		date, filename, rowCount)
	return err
}

func (r *tradesRepository) DeleteTradesByDate(ctx context.Context, date time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_date = $1`, date)
	return err
}

// LatestIngestion returns the most recent file_date in the ingestion log.
func (r *tradesRepository) LatestIngestion(ctx context.Context) (time.Time, bool, error) {
	var d sql.NullTime
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(file_date) FROM ingestion_log`).Scan(&d); err != nil {
		return time.Time{}, false, err
	}
	if !d.Valid {
		return time.Time{}, false, nil
	}
	return models.DateOnly(d.Time), true, nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
