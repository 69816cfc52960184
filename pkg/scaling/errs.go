package scaling

import "errors"

var (
	// ErrBadParam indicates a coefficient that is zero, negative or non-finite.
	ErrBadParam = errors.New("scaling: coefficient must be finite and > 0")

	// ErrBadSweep indicates sweep bounds that are non-positive or inverted,
	// or fewer than two points.
	ErrBadSweep = errors.New("scaling: bad sweep range")

	// ErrBandOrder indicates that the shaded-band boundaries are not
	// non-decreasing, which would produce negative-height bands.
	ErrBandOrder = errors.New("scaling: band boundaries out of order")
)
