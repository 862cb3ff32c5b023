package export

import (
	"math"
	"strconv"
)

// FormatDecimal renders f the way encoding/json renders a float64: shortest
// round-trip digits, integral values without a fraction, exponent form below
// 1e-6 and from 1e21 up. Both formats use it so a coordinate reads the same in
// either file.
func FormatDecimal(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-07 -> e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
