package domain

import "time"

// UTCTimestamp is a point on the chart time axis, in Unix seconds.
type UTCTimestamp int64

func NewUTCTimestamp(t time.Time) UTCTimestamp {
	return UTCTimestamp(t.Unix())
}

func (t UTCTimestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// ChartPoint is one candlestick of the price series.
type ChartPoint struct {
	Time  UTCTimestamp `json:"time"`
	Open  float64      `json:"open"`
	High  float64      `json:"high"`
	Low   float64      `json:"low"`
	Close float64      `json:"close"`
}

// IsBullish reports close >= open; a flat candle counts as up.
func (p ChartPoint) IsBullish() bool {
	return p.Close >= p.Open
}

// Valid reports whether low <= {open, close} <= high.
func (p ChartPoint) Valid() bool {
	return p.Low <= p.Open && p.Low <= p.Close &&
		p.Open <= p.High && p.Close <= p.High
}

type VolumeBar struct {
	Time  UTCTimestamp `json:"time"`
	Value float64      `json:"value"`
	Color string       `json:"color,omitempty"`
}

type OscillatorPoint struct {
	Time  UTCTimestamp `json:"time"`
	Value float64      `json:"value"`
	Color string       `json:"color,omitempty"`
}

type MarkerPosition string

const (
	MarkerAboveBar MarkerPosition = "aboveBar"
	MarkerBelowBar MarkerPosition = "belowBar"
	MarkerInBar    MarkerPosition = "inBar"
)

type MarkerShape string

const (
	MarkerArrowUp   MarkerShape = "arrowUp"
	MarkerArrowDown MarkerShape = "arrowDown"
	MarkerCircle    MarkerShape = "circle"
	MarkerSquare    MarkerShape = "square"
)

// Marker is a time-anchored annotation drawn on the price series.
type Marker struct {
	Time     UTCTimestamp   `json:"time"`
	Position MarkerPosition `json:"position"`
	Color    string         `json:"color"`
	Shape    MarkerShape    `json:"shape"`
	Text     string         `json:"text,omitempty"`
}

// ChartPayload is the full snapshot served by /api/chart-data.
type ChartPayload struct {
	Candlesticks []ChartPoint      `json:"candlesticks"`
	Volume       []VolumeBar       `json:"volume"`
	Oscillator   []OscillatorPoint `json:"oscillator"`
	Markers      []Marker          `json:"markers,omitempty"`
}

// EmptyPayload has non-nil slices so it encodes as empty arrays.
func EmptyPayload() *ChartPayload {
	return &ChartPayload{
		Candlesticks: []ChartPoint{},
		Volume:       []VolumeBar{},
		Oscillator:   []OscillatorPoint{},
	}
}
