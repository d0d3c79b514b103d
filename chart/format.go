package chart

import "strconv"

// FormatMagnitude renders a volume with an M or K suffix.
//
//	999       -> "999"
//	1500      -> "1.50K"
//	2_500_000 -> "2.50M"
func FormatMagnitude(v float64) string {
	switch {
	case v >= 1_000_000:
		return fixed2(v/1_000_000) + "M"
	case v >= 1_000:
		return fixed2(v/1_000) + "K"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// fixed2 rounds the binary value, not its shortest decimal form, so 1.005
// (stored as 1.00499...) gives "1.00".
func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
