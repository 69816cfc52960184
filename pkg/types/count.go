package types

import (
	"math"
	"strconv"
)

// Count is a float64 wrapper representing a quantity such as a parameter or
// token count. It is a float because the sweep covers up to 1e13 and FLOP
// budgets overflow uint64.
type Count float64

// Humanized returns a short-scale string with automatic unit (K, M, B, T),
// rounded to two decimals with trailing zeros dropped: 1e9 → "1B",
// 4.714e7 → "47.14M". The unit is chosen after rounding, so 999_999 is "1M".
func (c Count) Humanized() string {
	v := float64(c)
	a := math.Abs(v)

	i := 0
	for i+1 < len(units) && a >= units[i+1].scale {
		i++
	}
	r := round2(v / units[i].scale)
	if math.Abs(r) >= 1000 && i+1 < len(units) {
		i++
		r = round2(v / units[i].scale)
	}
	return strconv.FormatFloat(r, 'f', -1, 64) + units[i].suffix
}

var units = []struct {
	scale  float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
