package util

import (
	"math"
	"strconv"
)

// FmtFloat formats v with the shortest representation that round-trips.
func FmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// AllFinite reports whether none of vs is NaN or ±Inf.
func AllFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsStrictlyIncreasing reports whether every element is greater than the
// one before it.
func IsStrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

// IsNonDecreasing reports whether no element is less than the one before it.
func IsNonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		// NaN fails both comparisons
		if !(xs[i] >= xs[i-1]) {
			return false
		}
	}
	return true
}
