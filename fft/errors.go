package fft

import "errors"

var (
	// ErrNotPowerOfTwo is returned by New when a dimension is not a power of two.
	ErrNotPowerOfTwo = errors.New("fft: size is not a power of two")

	// ErrSizeMismatch is returned when an input does not match the engine size.
	ErrSizeMismatch = errors.New("fft: input size does not match engine size")

	// ErrWrongGoroutine is returned when an engine is used from a goroutine
	// other than the one that created it.
	ErrWrongGoroutine = errors.New("fft: engine used from a foreign goroutine")
)
