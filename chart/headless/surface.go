package headless

import (
	"sync"

	"github.com/google/uuid"

	"bitbucket.org/novatechnologies/spychart/chart"
	"bitbucket.org/novatechnologies/spychart/domain"
)

var (
	_ chart.Engine    = new(Engine)
	_ chart.Surface   = new(Surface)
	_ chart.TimeScale = new(TimeScale)
)

type Engine struct {
	mu       sync.Mutex
	surfaces []*Surface
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) CreateChart(container chart.Element, options chart.Options) (chart.Surface, error) {
	s := &Surface{
		container: container,
		options:   options,
		handlers:  make(map[string]chart.CrosshairMoveHandler),
	}
	s.timeScale = &TimeScale{surface: s}
	e.mu.Lock()
	e.surfaces = append(e.surfaces, s)
	e.mu.Unlock()
	return s, nil
}

// Surfaces returns every chart created so far.
func (e *Engine) Surfaces() []*Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Surface(nil), e.surfaces...)
}

type valueSeries interface {
	chart.Series
	valueAt(t domain.UTCTimestamp) (interface{}, bool)
	timeRange() (from, to domain.UTCTimestamp, ok bool)
}

// Surface keeps series in memory and dispatches crosshair events
// synchronously, one at a time.
type Surface struct {
	mu        sync.Mutex
	container chart.Element
	options   chart.Options
	series    []valueSeries
	handlers  map[string]chart.CrosshairMoveHandler
	order     []string
	timeScale *TimeScale

	// serializes handler invocations
	dispatchMu sync.Mutex
}

func (s *Surface) Options() chart.Options {
	return s.options
}

func (s *Surface) Container() chart.Element {
	return s.container
}

func (s *Surface) AddCandlestickSeries(options chart.CandlestickSeriesOptions) chart.CandlestickSeries {
	cs := &CandlestickSeries{series: series{id: uuid.NewString()}, options: options}
	s.add(cs)
	return cs
}

func (s *Surface) AddHistogramSeries(options chart.HistogramSeriesOptions) chart.HistogramSeries {
	hs := &HistogramSeries{series: series{id: uuid.NewString()}, options: options}
	s.add(hs)
	return hs
}

func (s *Surface) AddLineSeries(options chart.LineSeriesOptions) chart.LineSeries {
	ls := &LineSeries{series: series{id: uuid.NewString()}, options: options}
	s.add(ls)
	return ls
}

func (s *Surface) add(vs valueSeries) {
	s.mu.Lock()
	s.series = append(s.series, vs)
	s.mu.Unlock()
}

// Series returns the attached series in creation order.
func (s *Surface) Series() []chart.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chart.Series, len(s.series))
	for i := range s.series {
		out[i] = s.series[i]
	}
	return out
}

func (s *Surface) SubscribeCrosshairMove(h chart.CrosshairMoveHandler) func() {
	id := uuid.NewString()
	s.mu.Lock()
	s.handlers[id] = h
	s.order = append(s.order, id)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
		for i := range s.order {
			if s.order[i] == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of crosshair handlers.
func (s *Surface) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func (s *Surface) TimeScale() chart.TimeScale {
	return s.timeScale
}

func (s *Surface) VisibleRange() (from, to domain.UTCTimestamp, ok bool) {
	return s.timeScale.VisibleRange()
}

// MoveCrosshair reports the cursor at point over bar time t. Each series
// contributes its value only when it has a bar at exactly t.
func (s *Surface) MoveCrosshair(t domain.UTCTimestamp, point chart.Point) {
	data := make(map[string]interface{})
	s.mu.Lock()
	for _, vs := range s.series {
		if v, ok := vs.valueAt(t); ok {
			data[vs.ID()] = v
		}
	}
	s.mu.Unlock()

	s.Dispatch(chart.CrosshairEvent{Time: &t, Point: &point, SeriesData: data})
}

// LeaveCrosshair reports the cursor leaving the chart.
func (s *Surface) LeaveCrosshair() {
	s.Dispatch(chart.CrosshairEvent{SeriesData: map[string]interface{}{}})
}

// Dispatch delivers e to every subscriber in subscription order.
func (s *Surface) Dispatch(e chart.CrosshairEvent) {
	s.mu.Lock()
	handlers := make([]chart.CrosshairMoveHandler, 0, len(s.order))
	for _, id := range s.order {
		handlers = append(handlers, s.handlers[id])
	}
	s.mu.Unlock()

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

type TimeScale struct {
	mu      sync.Mutex
	surface *Surface
	from    domain.UTCTimestamp
	to      domain.UTCTimestamp
	fitted  bool
}

// FitContent makes the visible range span every loaded bar.
func (ts *TimeScale) FitContent() {
	ts.surface.mu.Lock()
	var from, to domain.UTCTimestamp
	found := false
	for _, vs := range ts.surface.series {
		f, t, ok := vs.timeRange()
		if !ok {
			continue
		}
		if !found || f < from {
			from = f
		}
		if !found || t > to {
			to = t
		}
		found = true
	}
	ts.surface.mu.Unlock()

	ts.mu.Lock()
	ts.from, ts.to, ts.fitted = from, to, found
	ts.mu.Unlock()
}

func (ts *TimeScale) VisibleRange() (from, to domain.UTCTimestamp, ok bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.from, ts.to, ts.fitted
}
