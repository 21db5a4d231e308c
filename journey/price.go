package journey

import (
	"strconv"
	"strings"
)

// ParsePrice turns a display price such as "₹2,500" into 2500. Everything
// except digits and '.' is dropped; unparseable input yields 0.
func ParsePrice(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
