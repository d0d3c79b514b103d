package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoData = errors.New("no data available")

// Bar is one stored OHLCV record.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    int64
}

func (b Bar) ChartPoint() ChartPoint {
	return ChartPoint{
		Time:  NewUTCTimestamp(b.Timestamp),
		Open:  b.Open.InexactFloat64(),
		High:  b.High.InexactFloat64(),
		Low:   b.Low.InexactFloat64(),
		Close: b.Close.InexactFloat64(),
	}
}

// BarRepository returns bars in ascending time order.
type BarRepository interface {
	Latest(ctx context.Context, limit int) ([]Bar, error)
	Between(ctx context.Context, from, to time.Time) ([]Bar, error)
	// LatestTimestamp returns ErrNoData when the store is empty.
	LatestTimestamp(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, bars []Bar) error
}
