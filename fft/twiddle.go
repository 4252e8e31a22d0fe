package fft

import (
	"math"
	"math/cmplx"

	"github.com/gogpu/piv/internal/cache"
)

// twiddles memoizes forward twiddle tables by transform length. Tables are
// never mutated after construction and are shared by all engines.
var twiddles = cache.New[int, []complex128](32)

// twiddleTable returns exp(-2πik/n) for k in [0, n/2).
// The reverse direction uses the conjugates.
func twiddleTable(n int) []complex128 {
	return twiddles.GetOrCreate(n, func() []complex128 {
		tw := make([]complex128, n/2)
		for k := range tw {
			tw[k] = cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n))
		}
		return tw
	})
}

// isPowerOfTwo reports whether n is 2^k for some k >= 0.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
