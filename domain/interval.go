package domain

// Interval is a bar width understood by the Yahoo Finance chart API.
type Interval string

const (
	Interval1M  Interval = "1m"
	Interval2M  Interval = "2m"
	Interval5M  Interval = "5m"
	Interval15M Interval = "15m"
	Interval30M Interval = "30m"
	Interval60M Interval = "60m"
	Interval90M Interval = "90m"
	Interval1H  Interval = "1h"
	Interval1D  Interval = "1d"
)

func GetAvailableIntervals() []Interval {
	return []Interval{
		Interval1M,
		Interval2M,
		Interval5M,
		Interval15M,
		Interval30M,
		Interval60M,
		Interval90M,
		Interval1H,
		Interval1D,
	}
}

func (i Interval) IsValid() bool {
	for _, v := range GetAvailableIntervals() {
		if v == i {
			return true
		}
	}
	return false
}

// MaxHistoryDays is how far back Yahoo serves bars of this width.
func (i Interval) MaxHistoryDays() int {
	switch i {
	case Interval1M:
		return 7
	case Interval1D:
		return 3650
	default:
		return 60
	}
}
