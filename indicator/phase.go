// Package indicator computes the phase oscillator plotted under the price.
package indicator

import "math"

const (
	pivotPeriod     = 21
	stdevPeriod     = 21
	atrPeriod       = 14
	smoothingPeriod = 3

	bandMultiplier        = 2.0
	compressionMultiplier = 2.0
	expansionMultiplier   = 1.854
)

// Zone levels of the oscillator.
const (
	ExtendedUp   = 100.0
	Distribution = 61.8
	NeutralUp    = 23.6
	NeutralDown  = -23.6
	Accumulation = -61.8
	ExtendedDown = -100.0
)

const (
	ColorGreen   = "#00ff00"
	ColorRed     = "#ff0000"
	ColorMagenta = "#ff00ff"
)

// Signal is a bit set of zone exits on one bar.
type Signal uint8

const (
	LeavingAccumulation Signal = 1 << iota
	LeavingExtremeDown
	LeavingDistribution
	LeavingExtremeUp
)

func (s Signal) Has(flag Signal) bool {
	return s&flag != 0
}

// Phase holds one value per input bar. Oscillator is NaN until enough bars
// have been seen to define the ATR.
type Phase struct {
	Oscillator  []float64
	Compression []bool
	Colors      []string
	Signals     []Signal
}

// PhaseOscillator evaluates the oscillator over equally long high/low/close
// slices.
func PhaseOscillator(high, low, close []float64) Phase {
	n := len(close)
	if len(high) < n || len(low) < n {
		n = minInt(len(high), minInt(len(low), n))
	}
	high, low, close = high[:n], low[:n], close[:n]

	pivot := EMA(close, pivotPeriod)
	stdev := RollingStdev(close, stdevPeriod)
	atr := ATR(high, low, close, atrPeriod)

	compression := make([]float64, n)
	inExpansionZone := make([]float64, n)
	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		bandOffset := bandMultiplier * stdev[i]
		bandUp, bandDown := pivot[i]+bandOffset, pivot[i]-bandOffset
		compUp, compDown := pivot[i]+compressionMultiplier*atr[i], pivot[i]-compressionMultiplier*atr[i]
		expUp, expDown := pivot[i]+expansionMultiplier*atr[i], pivot[i]-expansionMultiplier*atr[i]

		if close[i] >= pivot[i] {
			compression[i] = bandUp - compUp
			inExpansionZone[i] = bandUp - expUp
		} else {
			compression[i] = compDown - bandDown
			inExpansionZone[i] = expDown - bandDown
		}

		if math.IsNaN(atr[i]) || atr[i] == 0 {
			raw[i] = math.NaN()
		} else {
			raw[i] = (close[i] - pivot[i]) / (3.0 * atr[i]) * 100
		}
	}

	p := Phase{
		Oscillator:  EMA(raw, smoothingPeriod),
		Compression: make([]bool, n),
		Colors:      make([]string, n),
		Signals:     make([]Signal, n),
	}
	for i := 1; i < n; i++ {
		expansion := compression[i-1] <= compression[i]
		switch {
		case expansion && inExpansionZone[i] > 0:
			p.Compression[i] = false
		case compression[i] <= 0:
			p.Compression[i] = true
		}
	}

	for i := 0; i < n; i++ {
		osc := p.Oscillator[i]
		switch {
		case p.Compression[i]:
			p.Colors[i] = ColorMagenta
		case osc >= 0:
			p.Colors[i] = ColorGreen
		default:
			p.Colors[i] = ColorRed
		}
		if i == 0 {
			continue
		}
		prev := p.Oscillator[i-1]
		if prev <= Accumulation && osc > Accumulation {
			p.Signals[i] |= LeavingAccumulation
		}
		if prev <= ExtendedDown && osc > ExtendedDown {
			p.Signals[i] |= LeavingExtremeDown
		}
		if prev >= Distribution && osc < Distribution {
			p.Signals[i] |= LeavingDistribution
		}
		if prev >= ExtendedUp && osc < ExtendedUp {
			p.Signals[i] |= LeavingExtremeUp
		}
	}
	return p
}

// EMA is the recursive exponential average with alpha 2/(period+1), seeded
// with the first defined value. NaN inputs produce NaN and leave the state
// untouched.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	alpha := 2 / (float64(period) + 1)
	seeded := false
	var ema float64
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if !seeded {
			ema, seeded = v, true
		} else {
			ema = alpha*v + (1-alpha)*ema
		}
		out[i] = ema
	}
	return out
}

// RollingStdev is the sample standard deviation over a trailing window,
// NaN until the window is full.
func RollingStdev(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < period || period < 2 {
			out[i] = math.NaN()
			continue
		}
		window := values[i+1-period : i+1]
		var mean float64
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		var ss float64
		for _, v := range window {
			ss += (v - mean) * (v - mean)
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

// ATR is the simple average of the true range over a trailing window. The
// first bar has no previous close, so its true range is high-low.
func ATR(high, low, close []float64, period int) []float64 {
	n := len(close)
	tr := make([]float64, n)
	for i := 0; i < n; i++ {
		tr[i] = high[i] - low[i]
		if i > 0 {
			tr[i] = math.Max(tr[i], math.Max(
				math.Abs(high[i]-close[i-1]),
				math.Abs(low[i]-close[i-1]),
			))
		}
	}

	out := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		sum += tr[i]
		if i >= period {
			sum -= tr[i-period]
		}
		if i+1 < period {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
