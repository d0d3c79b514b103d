package chart

import (
	"context"

	"bitbucket.org/novatechnologies/spychart/domain"
)

// Element is the part of a DOM node the display works with.
type Element interface {
	AppendChild(child Element)
	SetClassName(name string)
	SetInnerHTML(html string)
	InnerHTML() string
	ClientWidth() float64
	ClientHeight() float64
}

// Document looks up and creates elements.
type Document interface {
	GetElementByID(id string) (Element, bool)
	CreateElement(tag string) Element
}

// Engine creates chart surfaces inside container elements.
type Engine interface {
	CreateChart(container Element, options Options) (Surface, error)
}

type Surface interface {
	AddCandlestickSeries(options CandlestickSeriesOptions) CandlestickSeries
	AddHistogramSeries(options HistogramSeriesOptions) HistogramSeries
	AddLineSeries(options LineSeriesOptions) LineSeries
	// SubscribeCrosshairMove registers h and returns a func removing it.
	SubscribeCrosshairMove(h CrosshairMoveHandler) (unsubscribe func())
	TimeScale() TimeScale
}

type TimeScale interface {
	FitContent()
}

// Series identifies a data series; the ID keys CrosshairEvent.SeriesData.
type Series interface {
	ID() string
}

type CandlestickSeries interface {
	Series
	SetData(data []domain.ChartPoint) error
	SetMarkers(markers []domain.Marker) error
}

type HistogramSeries interface {
	Series
	SetData(data []domain.VolumeBar) error
}

type LineSeries interface {
	Series
	SetData(data []domain.OscillatorPoint) error
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CrosshairEvent is delivered on every cursor move. SeriesData holds a
// domain.ChartPoint, domain.VolumeBar or domain.OscillatorPoint per series
// that has a value at Time.
type CrosshairEvent struct {
	Time       *domain.UTCTimestamp
	Point      *Point
	SeriesData map[string]interface{}
}

type CrosshairMoveHandler func(e CrosshairEvent)

// DataSource provides the chart snapshot.
type DataSource interface {
	ChartData(ctx context.Context) (*domain.ChartPayload, error)
}
