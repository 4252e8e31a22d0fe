// Package fft computes 2-D discrete Fourier transforms of images and derives
// cross- and auto-correlation planes from them.
//
// The transform is a textbook recursive decimate-in-time radix-2 FFT run
// along every row, then along every row of the transposed result. Sizes
// must be powers of two on both axes.
//
// # Goroutine affinity
//
// An Engine owns its scratch buffers and returns a pointer to its output
// buffer, so it is not safe for concurrent or interleaved use. Each Engine
// is bound to the goroutine that created it and rejects calls from any
// other goroutine with ErrWrongGoroutine. Parallel workloads create one
// Engine per worker goroutine; engines share nothing except the read-only
// twiddle tables.
//
// # Layout
//
// Forward transforms end with a quadrant swap, so the zero-frequency bin
// sits at (W/2, H/2). Reverse transforms undo that swap before transforming
// and scale by 1/(W*H), making Reverse the exact inverse of Forward.
// Correlation planes are swapped again so that zero lag is at (W/2, H/2).
package fft
