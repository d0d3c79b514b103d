package chart

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

var ErrContainerNotFound = errors.New("chart container not found")

// Display owns one chart surface with its price, volume and oscillator
// series, keeps the legend in sync with the crosshair and loads the data
// once.
type Display struct {
	container  Element
	surface    Surface
	price      CandlestickSeries
	volume     HistogramSeries
	oscillator LineSeries
	legend     *legend

	unsubscribe func()

	done    chan struct{}
	loadErr error
	once    sync.Once
}

// New builds the display inside the container with the given id and starts
// the data load from source in the background.
func New(
	ctx context.Context,
	doc Document,
	engine Engine,
	containerID string,
	source DataSource,
) (*Display, error) {
	container, ok := doc.GetElementByID(containerID)
	if !ok {
		return nil, errors.Wrap(ErrContainerNotFound, containerID)
	}
	surface, err := engine.CreateChart(container, DefaultOptions())
	if err != nil {
		return nil, errors.Wrap(err, "can't create chart")
	}

	d := &Display{
		container: container,
		surface:   surface,
		done:      make(chan struct{}),
	}
	d.price = surface.AddCandlestickSeries(PriceSeriesOptions())
	d.volume = surface.AddHistogramSeries(VolumeSeriesOptions())
	d.oscillator = surface.AddLineSeries(OscillatorSeriesOptions())

	d.legend = newLegend(doc, container)
	d.unsubscribe = surface.SubscribeCrosshairMove(d.handleCrosshairMove)

	go d.fetchAndUpdateData(ctx, source)

	return d, nil
}

// Done is closed once the data load has finished, successfully or not.
func (d *Display) Done() <-chan struct{} {
	return d.done
}

// Err returns the load failure after Done is closed. It is informational:
// a failed load is never retried.
func (d *Display) Err() error {
	select {
	case <-d.done:
		return d.loadErr
	default:
		return nil
	}
}

// Close detaches the legend from crosshair events.
func (d *Display) Close() {
	d.once.Do(d.unsubscribe)
}

func (d *Display) Surface() Surface {
	return d.surface
}

func (d *Display) handleCrosshairMove(e CrosshairEvent) {
	if e.Time == nil || outside(e.Point, d.container.ClientWidth(), d.container.ClientHeight()) {
		d.legend.clear()
		return
	}

	if price, ok := e.SeriesData[d.price.ID()].(domain.ChartPoint); ok {
		d.legend.ohlc.SetInnerHTML(formatOHLC(price))
	}
	if volume, ok := e.SeriesData[d.volume.ID()].(domain.VolumeBar); ok {
		d.legend.volume.SetInnerHTML(formatVolume(volume))
	}
	if osc, ok := e.SeriesData[d.oscillator.ID()].(domain.OscillatorPoint); ok {
		d.legend.oscillator.SetInnerHTML(formatOscillator(osc))
	}
}

func (d *Display) fetchAndUpdateData(ctx context.Context, source DataSource) {
	defer close(d.done)
	log := logger.FromContext(ctx).WithField("method", "chart.Display.fetchAndUpdateData")

	if err := d.load(ctx, source); err != nil {
		d.loadErr = err
		log.WithError(err).Error("Error fetching chart data")
		return
	}
	log.Debug("Chart data loaded")
}

func (d *Display) load(ctx context.Context, source DataSource) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic while loading chart data: %v", r)
		}
	}()

	data, err := source.ChartData(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		return errors.New("empty chart payload")
	}
	if err = d.price.SetData(data.Candlesticks); err != nil {
		return errors.Wrap(err, "price series")
	}
	if err = d.volume.SetData(data.Volume); err != nil {
		return errors.Wrap(err, "volume series")
	}
	if err = d.oscillator.SetData(data.Oscillator); err != nil {
		return errors.Wrap(err, "oscillator series")
	}
	if len(data.Markers) > 0 {
		if err = d.price.SetMarkers(data.Markers); err != nil {
			return errors.Wrap(err, "price markers")
		}
	}
	d.surface.TimeScale().FitContent()
	return nil
}
