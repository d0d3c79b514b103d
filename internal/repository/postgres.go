package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"bitbucket.org/novatechnologies/spychart/domain"
)

const regularSession = "regular"

const minuteDataSchema = `
CREATE TABLE IF NOT EXISTS minute_data (
	timestamp_market TIMESTAMPTZ NOT NULL,
	open             NUMERIC     NOT NULL,
	high             NUMERIC     NOT NULL,
	low              NUMERIC     NOT NULL,
	close            NUMERIC     NOT NULL,
	volume           BIGINT      NOT NULL,
	trading_session  TEXT        NOT NULL DEFAULT 'regular',
	PRIMARY KEY (timestamp_market, trading_session)
)`

// MinuteData reads regular-session bars of one symbol from the minute_data
// table.
type MinuteData struct {
	db     *sql.DB
	symbol string
}

func NewMinuteData(db *sql.DB, symbol string) *MinuteData {
	return &MinuteData{db: db, symbol: symbol}
}

func (r *MinuteData) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, minuteDataSchema); err != nil {
		return fmt.Errorf("can't create minute_data %w", err)
	}
	return nil
}

// Latest returns the newest limit bars, oldest first.
func (r *MinuteData) Latest(ctx context.Context, limit int) ([]domain.Bar, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT timestamp_market, open, high, low, close, volume
		FROM minute_data
		WHERE trading_session = $1
		ORDER BY timestamp_market DESC
		LIMIT $2`, regularSession, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query latest bars %w", err)
	}
	bars, err := r.scan(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// Between returns bars with from <= t < to, oldest first.
func (r *MinuteData) Between(ctx context.Context, from, to time.Time) ([]domain.Bar, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT timestamp_market, open, high, low, close, volume
		FROM minute_data
		WHERE trading_session = $1 AND timestamp_market >= $2 AND timestamp_market < $3
		ORDER BY timestamp_market`, regularSession, from, to)
	if err != nil {
		return nil, fmt.Errorf("can't query bars between %s and %s %w", from, to, err)
	}
	return r.scan(rows)
}

func (r *MinuteData) LatestTimestamp(ctx context.Context) (time.Time, error) {
	var ts pq.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(timestamp_market) FROM minute_data WHERE trading_session = $1`,
		regularSession,
	).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("can't query latest timestamp %w", err)
	}
	if !ts.Valid {
		return time.Time{}, domain.ErrNoData
	}
	return ts.Time.UTC(), nil
}

// Save upserts bars into the regular session.
func (r *MinuteData) Save(ctx context.Context, bars []domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO minute_data (timestamp_market, open, high, low, close, volume, trading_session)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (timestamp_market, trading_session) DO UPDATE
		SET open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			close = EXCLUDED.close, volume = EXCLUDED.volume`)
	if err != nil {
		return fmt.Errorf("can't prepare insert %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err = stmt.ExecContext(ctx,
			b.Timestamp.UTC(), b.Open, b.High, b.Low, b.Close, b.Volume, regularSession,
		)
		if err != nil {
			return fmt.Errorf("can't save bar %s %w", b.Timestamp, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit bars %w", err)
	}
	return nil
}

func (r *MinuteData) scan(rows *sql.Rows) ([]domain.Bar, error) {
	defer rows.Close()

	bars := make([]domain.Bar, 0)
	for rows.Next() {
		b := domain.Bar{Symbol: r.symbol}
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("can't scan bar %w", err)
		}
		b.Timestamp = b.Timestamp.UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read bars %w", err)
	}
	return bars, nil
}
