// Package grid lays out interrogation windows over an image.
//
// Windows of a fixed size are placed every Offset pixels along each axis,
// and the whole lattice is centred in the image so the unused margin is
// split evenly between both sides.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/piv"
)

// Validation errors returned by Generate.
var (
	ErrEmptyImage     = errors.New("grid: image has zero area")
	ErrEmptyWindow    = errors.New("grid: window has zero area")
	ErrOverlapRange   = errors.New("grid: overlap fraction outside [0, 1]")
	ErrZeroOffset     = errors.New("grid: window offset must be positive")
	ErrWindowTooLarge = errors.New("grid: window larger than image")
)

// Spacing describes the distance between neighbouring windows, either as a
// fraction of the window size or as explicit pixel offsets.
type Spacing struct {
	fraction float64
	offset   piv.Size
	explicit bool
}

// Overlap spaces windows floor(window*fraction) pixels apart on each axis.
// fraction must lie in [0, 1].
func Overlap(fraction float64) Spacing {
	return Spacing{fraction: fraction}
}

// Offset spaces windows by explicit per-axis pixel offsets.
func Offset(offset piv.Size) Spacing {
	return Spacing{offset: offset, explicit: true}
}

// resolve converts the spacing to pixel offsets for the given window.
func (s Spacing) resolve(window piv.Size) (piv.Size, error) {
	if s.explicit {
		return s.offset, nil
	}
	if !(s.fraction >= 0 && s.fraction <= 1) {
		return piv.Size{}, fmt.Errorf("%w: %v", ErrOverlapRange, s.fraction)
	}
	return piv.Size{
		Width:  int(math.Floor(float64(window.Width) * s.fraction)),
		Height: int(math.Floor(float64(window.Height) * s.fraction)),
	}, nil
}

// String describes the spacing.
func (s Spacing) String() string {
	if s.explicit {
		return "offset " + s.offset.String()
	}
	return fmt.Sprintf("overlap %g", s.fraction)
}

// Grid is an ordered set of interrogation windows.
//
// Rects are stored row-major: all windows of the first row (lowest Y) from
// left to right, then the next row.
type Grid struct {
	// Image is the size of the image the grid covers.
	Image piv.Size

	// Window is the size of every interrogation window.
	Window piv.Size

	// Offset is the distance between neighbouring window origins.
	Offset piv.Size

	// Counts is the number of windows along each axis.
	Counts piv.Size

	// Start is the origin of the first window.
	Start piv.Point[int]

	// Rects holds Counts.Area() windows in row-major order.
	Rects []piv.Rect
}

// Generate lays out windows of the given size over an image.
func Generate(image, window piv.Size, spacing Spacing) (*Grid, error) {
	if image.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, image)
	}
	if window.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWindow, window)
	}
	offset, err := spacing.resolve(window)
	if err != nil {
		return nil, err
	}
	if offset.Width <= 0 || offset.Height <= 0 {
		return nil, fmt.Errorf("%w: %s from %s", ErrZeroOffset, offset, spacing)
	}
	if window.Width > image.Width || window.Height > image.Height {
		return nil, fmt.Errorf("%w: window %s, image %s", ErrWindowTooLarge, window, image)
	}

	counts := piv.Size{
		Width:  1 + (image.Width-window.Width)/offset.Width,
		Height: 1 + (image.Height-window.Height)/offset.Height,
	}
	start := piv.Point[int]{
		X: (image.Width - window.Width - offset.Width*(counts.Width-1)) / 2,
		Y: (image.Height - window.Height - offset.Height*(counts.Height-1)) / 2,
	}

	rects := make([]piv.Rect, 0, counts.Area())
	for row := range counts.Height {
		for col := range counts.Width {
			rects = append(rects, piv.Rect{
				Origin: piv.Point[int]{X: start.X + col*offset.Width, Y: start.Y + row*offset.Height},
				Size:   window,
			})
		}
	}

	return &Grid{
		Image:  image,
		Window: window,
		Offset: offset,
		Counts: counts,
		Start:  start,
		Rects:  rects,
	}, nil
}

// Len returns the number of windows.
func (g *Grid) Len() int {
	return len(g.Rects)
}

// Index returns the position in Rects of the window at (col, row).
func (g *Grid) Index(col, row int) int {
	return row*g.Counts.Width + col
}

// Cell returns the column and row of Rects[i].
func (g *Grid) Cell(i int) (col, row int) {
	return i % g.Counts.Width, i / g.Counts.Width
}

// Center returns the geometric center of Rects[i].
func (g *Grid) Center(i int) piv.Point[float64] {
	return g.Rects[i].Center()
}
