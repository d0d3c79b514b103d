package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"bitbucket.org/novatechnologies/spychart/domain"
)

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{12.5, "12.5"},
		{999.99, "999.99"},
		{-5000, "-5000"},
		{1000, "1.00K"},
		{1500, "1.50K"},
		{2675, "2.67K"},
		{999_999, "1000.00K"},
		{1_000_000, "1.00M"},
		{1_005_000, "1.00M"},
		{2_500_000, "2.50M"},
		{1_234_567_890, "1234.57M"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMagnitude(tt.in))
		})
	}
}

func TestFixed2(t *testing.T) {
	assert.Equal(t, "512.40", fixed2(512.4))
	assert.Equal(t, "-61.80", fixed2(-61.8))
	assert.Equal(t, "1.00", fixed2(1.005))
	assert.Equal(t, "0.12", fixed2(0.125), "exact ties go to even")
	assert.Equal(t, "NaN", fixed2(math.NaN()))
}

func TestFormatOHLC(t *testing.T) {
	tests := []struct {
		name  string
		point domain.ChartPoint
		want  string
	}{
		{
			name:  "up",
			point: domain.ChartPoint{Open: 99, High: 101, Low: 98.5, Close: 100},
			want:  `<div style="color: #4CAF50">O: 99.00 H: 101.00 L: 98.50 C: 100.00</div>`,
		},
		{
			name:  "down",
			point: domain.ChartPoint{Open: 100, High: 101, Low: 98.5, Close: 99},
			want:  `<div style="color: #FF5252">O: 100.00 H: 101.00 L: 98.50 C: 99.00</div>`,
		},
		{
			name:  "flat is up",
			point: domain.ChartPoint{Open: 100, High: 100, Low: 100, Close: 100},
			want:  `<div style="color: #4CAF50">O: 100.00 H: 100.00 L: 100.00 C: 100.00</div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatOHLC(tt.point))
		})
	}
}

func TestOutside(t *testing.T) {
	tests := []struct {
		name  string
		point *Point
		want  bool
	}{
		{"nil", nil, true},
		{"inside", &Point{X: 10, Y: 10}, false},
		{"edges", &Point{X: 800, Y: 600}, false},
		{"origin", &Point{X: 0, Y: 0}, false},
		{"negative x", &Point{X: -1, Y: 10}, true},
		{"wide x", &Point{X: 801, Y: 10}, true},
		{"negative y", &Point{X: 10, Y: -0.5}, true},
		{"tall y", &Point{X: 10, Y: 601}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outside(tt.point, 800, 600))
		})
	}
}
