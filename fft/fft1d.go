package fft

// transform1D runs an in-place FFT over buf. scratch must be at least as
// long as buf; tw is the forward twiddle table for len(buf).
func transform1D(buf, scratch, tw []complex128, inverse bool) {
	n := len(buf)
	out := scratch[:n]
	copy(out, buf)
	butterfly(buf, out, tw, n, 1, inverse)
}

// butterfly is the recursive decimate-in-time step. buf and out are
// ping-ponged between levels: each level transforms the even and odd
// subsequences of out (stride 2*step) into out, then combines them into buf.
func butterfly(buf, out, tw []complex128, n, step int, inverse bool) {
	if step >= n {
		return
	}
	butterfly(out, buf, tw, n, step*2, inverse)
	butterfly(out[step:], buf[step:], tw, n, step*2, inverse)

	for i := 0; i < n; i += 2 * step {
		w := tw[i/2]
		if inverse {
			w = complex(real(w), -imag(w))
		}
		t := w * out[i+step]
		buf[i/2] = out[i] + t
		buf[(i+n)/2] = out[i] - t
	}
}
