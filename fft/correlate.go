package fft

import "github.com/gogpu/piv"

// ForwardOf transforms any pixel type, casting each pixel to complex128 on
// the fly.
func ForwardOf[T piv.Pixel](e *Engine, in piv.Expr[T]) (*piv.Image[complex128], error) {
	return e.Transform(piv.Cast[complex128, T](in), Forward)
}

// CrossCorrelate returns IFFT(FFT(a) · conj(FFT(b))) with zero lag at
// (W/2, H/2). The imaginary parts of the result are numerical noise.
//
// If a is b shifted by d pixels, the plane peaks at (W/2, H/2) + d.
// The returned image is owned by the engine.
func CrossCorrelate[T piv.Pixel](e *Engine, a, b piv.Expr[T]) (*piv.Image[complex128], error) {
	fa, err := ForwardOf(e, a)
	if err != nil {
		return nil, err
	}
	copy(e.spec.Pix(), fa.Pix())

	fb, err := ForwardOf(e, b)
	if err != nil {
		return nil, err
	}
	// Element-wise, so writing into fb while reading it is safe.
	if err := piv.Assign(fb, piv.Mul[complex128](e.spec, piv.Conj(fb))); err != nil {
		return nil, err
	}
	return e.correlationPlane()
}

// AutoCorrelate returns the cross-correlation of a with itself.
func AutoCorrelate[T piv.Pixel](e *Engine, a piv.Expr[T]) (*piv.Image[complex128], error) {
	fa, err := ForwardOf(e, a)
	if err != nil {
		return nil, err
	}
	if err := piv.Assign(fa, piv.AbsSqrOf(fa)); err != nil {
		return nil, err
	}
	return e.correlationPlane()
}

// correlationPlane inverts the product spectrum in e.out and centres zero lag.
func (e *Engine) correlationPlane() (*piv.Image[complex128], error) {
	e.run(Reverse)
	piv.SwapQuadrants(e.out)
	return e.out, nil
}
