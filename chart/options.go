package chart

type CrosshairMode int

const (
	CrosshairNormal CrosshairMode = 0
	CrosshairMagnet CrosshairMode = 1
)

type LineStyle int

const (
	LineSolid  LineStyle = 0
	LineDotted LineStyle = 1
	LineDashed LineStyle = 2
)

const (
	UpColor   = "#4CAF50"
	DownColor = "#FF5252"
)

type Background struct {
	Color string `json:"color"`
}

type LayoutOptions struct {
	Background Background `json:"background"`
	TextColor  string     `json:"textColor"`
}

type GridLineOptions struct {
	Color string `json:"color"`
}

type GridOptions struct {
	VertLines GridLineOptions `json:"vertLines"`
	HorzLines GridLineOptions `json:"horzLines"`
}

type CrosshairLineOptions struct {
	Width                int       `json:"width"`
	Color                string    `json:"color"`
	Style                LineStyle `json:"style"`
	LabelBackgroundColor string    `json:"labelBackgroundColor"`
}

type CrosshairOptions struct {
	Mode     CrosshairMode        `json:"mode"`
	VertLine CrosshairLineOptions `json:"vertLine"`
	HorzLine CrosshairLineOptions `json:"horzLine"`
}

type TimeScaleOptions struct {
	TimeVisible    bool `json:"timeVisible"`
	SecondsVisible bool `json:"secondsVisible"`
}

// Options configures a chart surface; field names follow lightweight-charts.
type Options struct {
	Layout    LayoutOptions    `json:"layout"`
	Grid      GridOptions      `json:"grid"`
	Crosshair CrosshairOptions `json:"crosshair"`
	TimeScale TimeScaleOptions `json:"timeScale"`
}

// ScaleMargins are fractions of the pane height left empty above and below a scale.
type ScaleMargins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type PriceFormat struct {
	Type string `json:"type"`
}

type CandlestickSeriesOptions struct {
	UpColor       string `json:"upColor"`
	DownColor     string `json:"downColor"`
	BorderVisible bool   `json:"borderVisible"`
	WickUpColor   string `json:"wickUpColor"`
	WickDownColor string `json:"wickDownColor"`
}

type HistogramSeriesOptions struct {
	Color        string       `json:"color"`
	PriceFormat  PriceFormat  `json:"priceFormat"`
	PriceScaleID string       `json:"priceScaleId"`
	ScaleMargins ScaleMargins `json:"scaleMargins"`
}

type LineSeriesOptions struct {
	Color        string       `json:"color"`
	LineWidth    int          `json:"lineWidth"`
	PriceScaleID string       `json:"priceScaleId"`
	ScaleMargins ScaleMargins `json:"scaleMargins"`
}

// DefaultOptions is the dark theme of the SPY chart.
func DefaultOptions() Options {
	crosshairLine := CrosshairLineOptions{
		Width:                1,
		Color:                "#758696",
		Style:                LineSolid,
		LabelBackgroundColor: "#758696",
	}
	return Options{
		Layout: LayoutOptions{
			Background: Background{Color: "#1E1E1E"},
			TextColor:  "#DDD",
		},
		Grid: GridOptions{
			VertLines: GridLineOptions{Color: "#2B2B2B"},
			HorzLines: GridLineOptions{Color: "#2B2B2B"},
		},
		Crosshair: CrosshairOptions{
			Mode:     CrosshairNormal,
			VertLine: crosshairLine,
			HorzLine: crosshairLine,
		},
		TimeScale: TimeScaleOptions{
			TimeVisible:    true,
			SecondsVisible: false,
		},
	}
}

func PriceSeriesOptions() CandlestickSeriesOptions {
	return CandlestickSeriesOptions{
		UpColor:       UpColor,
		DownColor:     DownColor,
		BorderVisible: false,
		WickUpColor:   UpColor,
		WickDownColor: DownColor,
	}
}

// VolumeSeriesOptions puts volume on its own scale in the bottom 20% of the pane.
func VolumeSeriesOptions() HistogramSeriesOptions {
	return HistogramSeriesOptions{
		Color:        "#26a69a",
		PriceFormat:  PriceFormat{Type: "volume"},
		PriceScaleID: "",
		ScaleMargins: ScaleMargins{Top: 0.8, Bottom: 0},
	}
}

func OscillatorSeriesOptions() LineSeriesOptions {
	return LineSeriesOptions{
		Color:        "rgba(255, 255, 255, 0.5)",
		LineWidth:    2,
		PriceScaleID: "oscillator",
		ScaleMargins: ScaleMargins{Top: 0.1, Bottom: 0.1},
	}
}
