package tga

import "errors"

var (
	// ErrTruncated is returned when the buffer ends before the header or
	// the pixel data is complete.
	ErrTruncated = errors.New("tga: truncated input")
	// ErrUnsupportedDepth is returned for any bit depth other than 16, 24
	// or 32.
	ErrUnsupportedDepth = errors.New("tga: unsupported bit depth")
	// ErrInvalidDimensions is returned when the width or height is not
	// positive.
	ErrInvalidDimensions = errors.New("tga: invalid dimensions")
	// ErrCorruptStream is returned when a run-length packet would produce
	// more pixels than the image holds.
	ErrCorruptStream = errors.New("tga: corrupt run-length stream")
)
