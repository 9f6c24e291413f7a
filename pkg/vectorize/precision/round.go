// Package precision implements the decimal rounding used for published
// weights.
package precision

import (
	"math"
	"strconv"
)

// Round rounds x to the given number of decimal places. The result is the
// decimal nearest to the exact binary value of x, ties going to the even
// digit, so 0.125 rounds to 0.12 and 2.675 (stored as 2.67499...) to 2.67.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}
