package chart

import (
	"fmt"

	"bitbucket.org/novatechnologies/spychart/domain"
)

const (
	legendClass     = "legend"
	legendItemClass = "legend-item"
)

// legend is the overlay showing the values under the cursor.
type legend struct {
	container  Element
	ohlc       Element
	volume     Element
	oscillator Element
}

func newLegend(doc Document, parent Element) *legend {
	l := &legend{
		container:  doc.CreateElement("div"),
		ohlc:       doc.CreateElement("div"),
		volume:     doc.CreateElement("div"),
		oscillator: doc.CreateElement("div"),
	}
	l.container.SetClassName(legendClass)
	parent.AppendChild(l.container)
	for _, item := range []Element{l.ohlc, l.volume, l.oscillator} {
		item.SetClassName(legendItemClass)
		l.container.AppendChild(item)
	}
	return l
}

func (l *legend) clear() {
	l.ohlc.SetInnerHTML("")
	l.volume.SetInnerHTML("")
	l.oscillator.SetInnerHTML("")
}

func formatOHLC(p domain.ChartPoint) string {
	color := DownColor
	if p.IsBullish() {
		color = UpColor
	}
	return fmt.Sprintf(
		`<div style="color: %s">O: %s H: %s L: %s C: %s</div>`,
		color, fixed2(p.Open), fixed2(p.High), fixed2(p.Low), fixed2(p.Close),
	)
}

func formatVolume(v domain.VolumeBar) string {
	return fmt.Sprintf(`<div>Volume: %s</div>`, FormatMagnitude(v.Value))
}

func formatOscillator(p domain.OscillatorPoint) string {
	return fmt.Sprintf(`<div>Oscillator: %s</div>`, fixed2(p.Value))
}

// outside reports whether the cursor has left the container.
func outside(p *Point, width, height float64) bool {
	return p == nil || p.X < 0 || p.X > width || p.Y < 0 || p.Y > height
}
