package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartPoint_IsBullish(t *testing.T) {
	tests := []struct {
		name  string
		point ChartPoint
		want  bool
	}{
		{"up", ChartPoint{Open: 99, Close: 100}, true},
		{"down", ChartPoint{Open: 100, Close: 99}, false},
		{"flat", ChartPoint{Open: 100, Close: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.IsBullish())
		})
	}
}

func TestChartPoint_Valid(t *testing.T) {
	assert.True(t, ChartPoint{Open: 10, High: 12, Low: 9, Close: 11}.Valid())
	assert.True(t, ChartPoint{Open: 10, High: 10, Low: 10, Close: 10}.Valid())
	assert.False(t, ChartPoint{Open: 10, High: 11, Low: 9, Close: 12}.Valid())
	assert.False(t, ChartPoint{Open: 8, High: 11, Low: 9, Close: 10}.Valid())
}

func TestEmptyPayload_JSON(t *testing.T) {
	bs, err := json.Marshal(EmptyPayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"candlesticks":[],"volume":[],"oscillator":[]}`, string(bs))
}

func TestChartPayload_Decode(t *testing.T) {
	body := `{
		"candlesticks":[{"time":1700000000,"open":1,"high":2,"low":0.5,"close":1.5}],
		"volume":[{"time":1700000000,"value":1200,"color":"red"}],
		"oscillator":[{"time":1700000000,"value":-12.5}],
		"markers":[{"time":1700000000,"position":"belowBar","color":"#2196F3","shape":"arrowUp","text":"LA"}]
	}`
	var p ChartPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, ChartPoint{Time: 1700000000, Open: 1, High: 2, Low: 0.5, Close: 1.5}, p.Candlesticks[0])
	assert.Equal(t, "red", p.Volume[0].Color)
	assert.Equal(t, -12.5, p.Oscillator[0].Value)
	assert.Equal(t, Marker{Time: 1700000000, Position: MarkerBelowBar, Color: "#2196F3", Shape: MarkerArrowUp, Text: "LA"}, p.Markers[0])
}

func TestBar_ChartPoint(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	b := Bar{
		Timestamp: ts,
		Open:      decimal.RequireFromString("512.10"),
		High:      decimal.RequireFromString("512.75"),
		Low:       decimal.RequireFromString("511.90"),
		Close:     decimal.RequireFromString("512.40"),
		Volume:    183000,
	}
	assert.Equal(t, ChartPoint{Time: UTCTimestamp(ts.Unix()), Open: 512.10, High: 512.75, Low: 511.90, Close: 512.40}, b.ChartPoint())
	assert.Equal(t, ts, b.ChartPoint().Time.Time())
}

func TestInterval(t *testing.T) {
	assert.True(t, Interval1M.IsValid())
	assert.True(t, Interval("1d").IsValid())
	assert.False(t, Interval("3m").IsValid())
	assert.Equal(t, 7, Interval1M.MaxHistoryDays())
	assert.Equal(t, 60, Interval5M.MaxHistoryDays())
}
