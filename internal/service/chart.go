package service

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/indicator"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

const (
	VolumeUpColor   = "rgba(38, 166, 154, 0.5)"
	VolumeDownColor = "rgba(239, 83, 80, 0.5)"
)

type signalMarker struct {
	signal indicator.Signal
	marker domain.Marker
}

// Order within one bar follows the signal bits.
var signalMarkers = []signalMarker{
	{indicator.LeavingAccumulation, domain.Marker{
		Position: domain.MarkerBelowBar, Color: "#2196F3", Shape: domain.MarkerArrowUp, Text: "LA",
	}},
	{indicator.LeavingExtremeDown, domain.Marker{
		Position: domain.MarkerBelowBar, Color: "#4CAF50", Shape: domain.MarkerArrowUp, Text: "LED",
	}},
	{indicator.LeavingDistribution, domain.Marker{
		Position: domain.MarkerAboveBar, Color: "#FFC107", Shape: domain.MarkerArrowDown, Text: "LD",
	}},
	{indicator.LeavingExtremeUp, domain.Marker{
		Position: domain.MarkerAboveBar, Color: "#FF5252", Shape: domain.MarkerArrowDown, Text: "LEU",
	}},
}

// Chart builds chart snapshots out of stored bars.
type Chart struct {
	bars         domain.BarRepository
	eventsBroker domain.EventsBroker
	limit        int
}

// NewChart returns chart service. eventsBroker may be nil.
func NewChart(bars domain.BarRepository, eventsBroker domain.EventsBroker, limit int) *Chart {
	return &Chart{bars: bars, eventsBroker: eventsBroker, limit: limit}
}

// Snapshot returns the latest bars as a payload and announces it.
func (s *Chart) Snapshot(ctx context.Context) (*domain.ChartPayload, error) {
	bars, err := s.bars.Latest(ctx, s.limit)
	if err != nil {
		return nil, errors.Wrap(err, "latest bars")
	}
	payload := BuildPayload(bars)

	logger.FromContext(ctx).
		WithField("bars", len(bars)).
		Debug("[service.Chart.Snapshot] payload built")

	if s.eventsBroker != nil {
		event := domain.NewEvent(ctx, payload)
		if len(bars) > 0 {
			event.WithMeta(domain.MetaSymbol, bars[len(bars)-1].Symbol)
		}
		s.eventsBroker.Publish(domain.EvTypeSnapshot, event)
	}
	return payload, nil
}

// LatestDate returns the newest bar time or domain.ErrNoData.
func (s *Chart) LatestDate(ctx context.Context) (time.Time, error) {
	return s.bars.LatestTimestamp(ctx)
}

// Day returns the payload of the UTC calendar day containing day. A zero day
// means the day of the newest bar. Returns domain.ErrNoData when the day has
// no bars.
func (s *Chart) Day(ctx context.Context, day time.Time) (*domain.ChartPayload, error) {
	if day.IsZero() {
		latest, err := s.bars.LatestTimestamp(ctx)
		if err != nil {
			return nil, err
		}
		day = latest
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	bars, err := s.bars.Between(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, errors.Wrapf(err, "bars of %s", from.Format("2006-01-02"))
	}
	if len(bars) == 0 {
		return nil, domain.ErrNoData
	}
	return BuildPayload(bars), nil
}

// BuildPayload turns ascending bars into chart series. Oscillator points are
// emitted only where the oscillator is defined.
func BuildPayload(bars []domain.Bar) *domain.ChartPayload {
	payload := domain.EmptyPayload()
	if len(bars) == 0 {
		return payload
	}

	n := len(bars)
	high, low, closes := make([]float64, n), make([]float64, n), make([]float64, n)
	payload.Candlesticks = make([]domain.ChartPoint, 0, n)
	payload.Volume = make([]domain.VolumeBar, 0, n)
	for i, b := range bars {
		p := b.ChartPoint()
		payload.Candlesticks = append(payload.Candlesticks, p)

		color := VolumeDownColor
		if p.IsBullish() {
			color = VolumeUpColor
		}
		payload.Volume = append(payload.Volume, domain.VolumeBar{
			Time:  p.Time,
			Value: float64(b.Volume),
			Color: color,
		})
		high[i], low[i], closes[i] = p.High, p.Low, p.Close
	}

	phase := indicator.PhaseOscillator(high, low, closes)
	payload.Oscillator = make([]domain.OscillatorPoint, 0, n)
	for i, v := range phase.Oscillator {
		if math.IsNaN(v) {
			continue
		}
		payload.Oscillator = append(payload.Oscillator, domain.OscillatorPoint{
			Time:  payload.Candlesticks[i].Time,
			Value: v,
			Color: phase.Colors[i],
		})
	}

	for i, sig := range phase.Signals {
		for _, sm := range signalMarkers {
			if !sig.Has(sm.signal) {
				continue
			}
			m := sm.marker
			m.Time = payload.Candlesticks[i].Time
			payload.Markers = append(payload.Markers, m)
		}
	}
	return payload
}
