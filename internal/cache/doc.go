// Package cache provides a small generic LRU cache.
//
// It backs process-wide memo tables whose values are immutable once built,
// such as FFT twiddle factors, so that every engine of the same size shares
// one table.
//
//	c := cache.New[int, []complex128](32)
//	tw := c.GetOrCreate(64, func() []complex128 { return build(64) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
