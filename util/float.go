package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a float in its shortest round-tripping form, always
// showing a decimal point or an exponent so it reads back as a float.
func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	} else if math.IsInf(f, -1) {
		return "-inf"
	} else if math.IsNaN(f) {
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
