package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/novatechnologies/spychart/domain"
)

func TestCandle_RoundTrip(t *testing.T) {
	bar := domain.Bar{
		Symbol:    "SPY",
		Timestamp: time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
		Open:      decimal.RequireFromString("510.12"),
		High:      decimal.RequireFromString("511.5"),
		Low:       decimal.RequireFromString("509.99"),
		Close:     decimal.RequireFromString("511.01"),
		Volume:    1250000,
	}

	c, err := NewCandle(bar)
	require.NoError(t, err)
	assert.Equal(t, "510.12", c.Open.String())
	assert.Equal(t, "1250000", c.Volume.String())

	got, err := c.Bar()
	require.NoError(t, err)
	assert.Equal(t, bar.Symbol, got.Symbol)
	assert.True(t, bar.Timestamp.Equal(got.Timestamp))
	assert.True(t, bar.High.Equal(got.High))
	assert.True(t, bar.Close.Equal(got.Close))
	assert.Equal(t, bar.Volume, got.Volume)
}
