package headless

import (
	"fmt"
	"sync"

	"bitbucket.org/novatechnologies/spychart/chart"
	"bitbucket.org/novatechnologies/spychart/domain"
)

var (
	_ chart.CandlestickSeries = new(CandlestickSeries)
	_ chart.HistogramSeries   = new(HistogramSeries)
	_ chart.LineSeries        = new(LineSeries)
)

type ErrUnordered struct {
	Index int
	Time  domain.UTCTimestamp
	Prev  domain.UTCTimestamp
}

func (e *ErrUnordered) Error() string {
	return fmt.Sprintf(
		"data must be asc ordered by time, index=%d, time=%d, prev time=%d",
		e.Index, e.Time, e.Prev,
	)
}

// checkOrder enforces strictly ascending times.
func checkOrder(n int, at func(i int) domain.UTCTimestamp) error {
	for i := 1; i < n; i++ {
		if at(i) <= at(i-1) {
			return &ErrUnordered{Index: i, Time: at(i), Prev: at(i - 1)}
		}
	}
	return nil
}

type series struct {
	mu    sync.RWMutex
	id    string
	index map[domain.UTCTimestamp]int
}

func (s *series) ID() string {
	return s.id
}

func (s *series) reindex(n int, at func(i int) domain.UTCTimestamp) {
	s.index = make(map[domain.UTCTimestamp]int, n)
	for i := 0; i < n; i++ {
		s.index[at(i)] = i
	}
}

type CandlestickSeries struct {
	series
	options chart.CandlestickSeriesOptions
	data    []domain.ChartPoint
	markers []domain.Marker
}

func (s *CandlestickSeries) SetData(data []domain.ChartPoint) error {
	at := func(i int) domain.UTCTimestamp { return data[i].Time }
	if err := checkOrder(len(data), at); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]domain.ChartPoint(nil), data...)
	s.reindex(len(data), at)
	return nil
}

func (s *CandlestickSeries) SetMarkers(markers []domain.Marker) error {
	// several markers may share a bar
	for i := 1; i < len(markers); i++ {
		if markers[i].Time < markers[i-1].Time {
			return &ErrUnordered{Index: i, Time: markers[i].Time, Prev: markers[i-1].Time}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = append([]domain.Marker(nil), markers...)
	return nil
}

func (s *CandlestickSeries) Data() []domain.ChartPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChartPoint(nil), s.data...)
}

func (s *CandlestickSeries) Markers() []domain.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Marker(nil), s.markers...)
}

func (s *CandlestickSeries) Options() chart.CandlestickSeriesOptions {
	return s.options
}

func (s *CandlestickSeries) valueAt(t domain.UTCTimestamp) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[t]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *CandlestickSeries) timeRange() (from, to domain.UTCTimestamp, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data) == 0 {
		return 0, 0, false
	}
	return s.data[0].Time, s.data[len(s.data)-1].Time, true
}

type HistogramSeries struct {
	series
	options chart.HistogramSeriesOptions
	data    []domain.VolumeBar
}

func (s *HistogramSeries) SetData(data []domain.VolumeBar) error {
	at := func(i int) domain.UTCTimestamp { return data[i].Time }
	if err := checkOrder(len(data), at); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]domain.VolumeBar(nil), data...)
	s.reindex(len(data), at)
	return nil
}

func (s *HistogramSeries) Data() []domain.VolumeBar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.VolumeBar(nil), s.data...)
}

func (s *HistogramSeries) Options() chart.HistogramSeriesOptions {
	return s.options
}

func (s *HistogramSeries) valueAt(t domain.UTCTimestamp) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[t]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *HistogramSeries) timeRange() (from, to domain.UTCTimestamp, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data) == 0 {
		return 0, 0, false
	}
	return s.data[0].Time, s.data[len(s.data)-1].Time, true
}

type LineSeries struct {
	series
	options chart.LineSeriesOptions
	data    []domain.OscillatorPoint
}

func (s *LineSeries) SetData(data []domain.OscillatorPoint) error {
	at := func(i int) domain.UTCTimestamp { return data[i].Time }
	if err := checkOrder(len(data), at); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]domain.OscillatorPoint(nil), data...)
	s.reindex(len(data), at)
	return nil
}

func (s *LineSeries) Data() []domain.OscillatorPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OscillatorPoint(nil), s.data...)
}

func (s *LineSeries) Options() chart.LineSeriesOptions {
	return s.options
}

func (s *LineSeries) valueAt(t domain.UTCTimestamp) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[t]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *LineSeries) timeRange() (from, to domain.UTCTimestamp, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data) == 0 {
		return 0, 0, false
	}
	return s.data[0].Time, s.data[len(s.data)-1].Time, true
}
