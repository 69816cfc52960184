package render

import "errors"

var (
	// ErrFormat indicates an output format the encoder does not support.
	ErrFormat = errors.New("render: unsupported format")

	// ErrEmptyCurve indicates a curve with no points.
	ErrEmptyCurve = errors.New("render: empty curve")
)
