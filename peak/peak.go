// Package peak locates the strongest separated maxima of a correlation plane.
package peak

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/piv"
)

var (
	// ErrInvalidCount is returned when the requested peak count is negative.
	ErrInvalidCount = errors.New("peak: negative peak count")

	// ErrInvalidSeparation is returned when the separation is negative.
	ErrInvalidSeparation = errors.New("peak: negative separation")
)

// Peak is a local maximum with the (2S+1)×(2S+1) rectangle centred on it.
type Peak struct {
	Value float64
	Rect  piv.Rect
}

// Location returns the peak pixel, the midpoint of Rect.
func (p Peak) Location() piv.Point[int] {
	return p.Rect.Midpoint()
}

type candidate struct {
	index int
	value float64
}

// Find returns up to n peaks of src, strongest first, such that no two
// peaks lie within separation pixels of each other (Chebyshev distance).
//
// Only local maxima (not smaller than any of their 8 neighbours) are
// considered. Equal values keep their row-major scan order. A candidate
// whose rectangle would extend past the image border is skipped rather than
// clipped, and it does not suppress its neighbours. Fewer than n peaks are
// returned when the image cannot supply them; that is not an error.
func Find[T piv.Real](src piv.Source[T], n, separation int) ([]Peak, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if separation < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeparation, separation)
	}
	if n == 0 || src.PixelCount() == 0 {
		return nil, nil
	}

	w, h := src.Width(), src.Height()
	values := make([]float64, 0, w*h)
	for y := range h {
		row, err := src.Line(y)
		if err != nil {
			return nil, err
		}
		for _, v := range row {
			values = append(values, float64(v))
		}
	}

	cands := localMaxima(values, w, h)
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.value, a.value)
	})

	bounds := piv.Rect{Size: piv.Size{Width: w, Height: h}}
	side := 2*separation + 1
	suppressed := make([]bool, len(values))
	peaks := make([]Peak, 0, n)

	for _, c := range cands {
		if len(peaks) == n {
			break
		}
		if suppressed[c.index] {
			continue
		}
		x, y := c.index%w, c.index/w
		rect := piv.R(x-separation, y-separation, side, side)
		if !bounds.Contains(rect) {
			continue
		}
		peaks = append(peaks, Peak{Value: c.value, Rect: rect})

		area := rect.Intersect(bounds)
		for sy := area.Origin.Y; sy < area.Origin.Y+area.Size.Height; sy++ {
			for sx := area.Origin.X; sx < area.Origin.X+area.Size.Width; sx++ {
				suppressed[sy*w+sx] = true
			}
		}
	}

	return peaks, nil
}

// localMaxima returns the pixels not smaller than any 8-neighbour, in scan
// order. NaN pixels are never maxima.
func localMaxima(values []float64, w, h int) []candidate {
	var out []candidate
	for y := range h {
		for x := range w {
			v := values[y*w+x]
			if math.IsNaN(v) || !isLocalMax(values, w, h, x, y, v) {
				continue
			}
			out = append(out, candidate{index: y*w + x, value: v})
		}
	}
	return out
}

func isLocalMax(values []float64, w, h, x, y int, v float64) bool {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
				continue
			}
			if values[ny*w+nx] > v {
				return false
			}
		}
	}
	return true
}

// Ratio returns the primary-to-secondary peak ratio, a common PIV
// signal-to-noise measure. It is +Inf when fewer than two peaks exist or the
// secondary peak is not positive.
func Ratio(peaks []Peak) float64 {
	if len(peaks) < 2 || peaks[1].Value <= 0 {
		return math.Inf(1)
	}
	return peaks[0].Value / peaks[1].Value
}
