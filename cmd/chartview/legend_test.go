package main

import (
	"strings"
	"testing"

	finance "github.com/piquette/finance-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegend(t *testing.T) {
	lines, err := parseLegend([]string{
		`<div style="color: #4CAF50">O: 100.00 H: 101.00 L: 99.50 C: 100.75</div>`,
		`<div>Volume: 1.25M</div>`,
		``,
	})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, legendLine{Text: "O: 100.00 H: 101.00 L: 99.50 C: 100.75", Color: "#4CAF50"}, lines[0])
	assert.Equal(t, legendLine{Text: "Volume: 1.25M"}, lines[1])
	assert.Equal(t, legendLine{}, lines[2])
}

func TestStyleColor(t *testing.T) {
	assert.Equal(t, "#FF5252", styleColor("color: #FF5252"))
	assert.Equal(t, "red", styleColor("font-weight: bold; color:red;"))
	assert.Equal(t, "", styleColor("background-color"))
}

func TestRenderLegend(t *testing.T) {
	out := renderLegend([]legendLine{{Text: "Volume: 12K"}, {}})
	assert.True(t, strings.Contains(out, "Volume: 12K"), out)
	assert.True(t, strings.Contains(out, "-"), out)
}

func TestToBar(t *testing.T) {
	b, ok := toBar("SPY", &finance.ChartBar{
		Open:      decimal.RequireFromString("510.1"),
		High:      decimal.RequireFromString("511"),
		Low:       decimal.RequireFromString("509.5"),
		Close:     decimal.RequireFromString("510.8"),
		Volume:    120000,
		Timestamp: 1709303400,
	})
	require.True(t, ok)
	assert.Equal(t, "SPY", b.Symbol)
	assert.Equal(t, int64(1709303400), b.Timestamp.Unix())
	assert.Equal(t, int64(120000), b.Volume)
	assert.True(t, b.Close.Equal(decimal.RequireFromString("510.8")))

	_, ok = toBar("SPY", &finance.ChartBar{})
	assert.False(t, ok)
	_, ok = toBar("SPY", nil)
	assert.False(t, ok)
}
