package piv

import "errors"

// Common errors for image and geometry operations.
var (
	// ErrInvalidSize is returned when a dimension is negative.
	ErrInvalidSize = errors.New("piv: invalid size")

	// ErrOutOfRange is returned when a row, pixel or view rectangle lies
	// outside the bounds of its image.
	ErrOutOfRange = errors.New("piv: out of range")

	// ErrSizeMismatch is returned when two operands of an operation do not
	// have the same dimensions.
	ErrSizeMismatch = errors.New("piv: size mismatch")

	// ErrDataTooSmall is returned when a pixel slice does not match the
	// requested dimensions.
	ErrDataTooSmall = errors.New("piv: pixel data does not match size")
)
