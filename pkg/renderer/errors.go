package renderer

import "errors"

var (
	// ErrInvalidDimensions is returned when the image width or height is not positive.
	ErrInvalidDimensions = errors.New("renderer: image dimensions must be positive")

	// ErrInvalidSampling is returned when samples per pixel or max depth is not positive.
	ErrInvalidSampling = errors.New("renderer: samples per pixel and max depth must be positive")

	// ErrPoolClosed is returned when the worker pool stops before every tile reports back.
	ErrPoolClosed = errors.New("renderer: worker pool closed unexpectedly")
)
