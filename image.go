package piv

import (
	"fmt"
	"slices"
)

// Source is the capability set shared by owning images and views. All
// algorithms in this module read pixels through it and never assume
// ownership of the buffer.
type Source[T Pixel] interface {
	Expr[T]

	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// PixelCount returns Width*Height.
	PixelCount() int

	// AtPoint returns the pixel at (p.X, p.Y).
	AtPoint(p Point[int]) T

	// Line returns row h. It fails with ErrOutOfRange when h >= Height.
	Line(h int) ([]T, error)
}

// Image owns a contiguous row-major buffer of Width*Height pixels.
//
// The zero value is a valid empty image. Images are passed by pointer; use
// Clone for a deep copy and Convert for an explicit change of pixel type.
//
// Thread safety: Image has no internal synchronization. Concurrent reads are
// safe; writes require external synchronization.
type Image[T Pixel] struct {
	pix  []T
	size Size
}

// NewImage allocates a zeroed image of the given size. An empty size keeps
// its dimensions with no buffer; negative dimensions are treated as zero.
func NewImage[T Pixel](size Size) *Image[T] {
	if size.IsEmpty() {
		return &Image[T]{size: Size{Width: max(size.Width, 0), Height: max(size.Height, 0)}}
	}
	return &Image[T]{pix: make([]T, size.Area()), size: size}
}

// NewImageFrom wraps pix without copying. len(pix) must equal size.Area().
func NewImageFrom[T Pixel](size Size, pix []T) (*Image[T], error) {
	if size.Width < 0 || size.Height < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	if len(pix) != size.Area() {
		return nil, fmt.Errorf("%w: %d pixels for %s", ErrDataTooSmall, len(pix), size)
	}
	return &Image[T]{pix: pix, size: size}, nil
}

// Clone returns a deep copy of the image.
func (m *Image[T]) Clone() *Image[T] {
	return &Image[T]{pix: slices.Clone(m.pix), size: m.size}
}

// Width returns the image width in pixels.
func (m *Image[T]) Width() int { return m.size.Width }

// Height returns the image height in pixels.
func (m *Image[T]) Height() int { return m.size.Height }

// PixelCount returns the number of pixels.
func (m *Image[T]) PixelCount() int { return len(m.pix) }

// Size returns the image dimensions.
func (m *Image[T]) Size() Size { return m.size }

// Rect returns the image bounds anchored at the origin.
func (m *Image[T]) Rect() Rect { return Rect{Size: m.size} }

// IsEmpty reports whether the image holds no pixels.
func (m *Image[T]) IsEmpty() bool { return len(m.pix) == 0 }

// Pix returns the underlying pixel slice.
func (m *Image[T]) Pix() []T { return m.pix }

// At returns the pixel at linear offset i.
func (m *Image[T]) At(i int) T { return m.pix[i] }

// AtPoint returns the pixel at (p.X, p.Y).
func (m *Image[T]) AtPoint(p Point[int]) T { return m.pix[p.Y*m.size.Width+p.X] }

// Set stores v at linear offset i.
func (m *Image[T]) Set(i int, v T) { m.pix[i] = v }

// SetPoint stores v at (p.X, p.Y).
func (m *Image[T]) SetPoint(p Point[int], v T) { m.pix[p.Y*m.size.Width+p.X] = v }

// Line returns row h as a slice aliasing the image buffer.
func (m *Image[T]) Line(h int) ([]T, error) {
	if h < 0 || h >= m.size.Height {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, h, m.size.Height)
	}
	start := h * m.size.Width
	return m.pix[start : start+m.size.Width : start+m.size.Width], nil
}

// Fill sets every pixel to v.
func (m *Image[T]) Fill(v T) {
	for i := range m.pix {
		m.pix[i] = v
	}
}

// Equal reports whether both images have the same size and pixels.
func (m *Image[T]) Equal(o *Image[T]) bool {
	return m.size == o.size && slices.Equal(m.pix, o.pix)
}

// Convert returns a new image holding every pixel of src cast to U.
// This walks and allocates the full image; it is never done implicitly.
func Convert[U, T Pixel](src Source[T]) *Image[U] {
	dst := NewImage[U](src.Size())
	cast := castFunc[U, T]()
	for i := range dst.pix {
		dst.pix[i] = cast(src.At(i))
	}
	return dst
}

// Transpose returns a new image with rows and columns exchanged.
func Transpose[T Pixel](src Source[T]) *Image[T] {
	dst := NewImage[T](src.Size().Transpose())
	TransposeInto(dst, src)
	return dst
}

// TransposeInto writes the transpose of src into dst, which must already
// have the transposed size.
func TransposeInto[T Pixel](dst *Image[T], src Source[T]) {
	h := src.Height()
	for y := range h {
		row, _ := src.Line(y)
		for x, v := range row {
			dst.pix[x*h+y] = v
		}
	}
}

// SwapQuadrants exchanges the top-left quadrant with the bottom-right and
// the top-right with the bottom-left, in place. For even dimensions the
// operation is its own inverse; odd dimensions leave the middle row and
// column where they are.
func SwapQuadrants[T Pixel](m *Image[T]) {
	w, h := m.size.Width, m.size.Height
	hw, hh := w/2, h/2
	for y := range hh {
		top := m.pix[y*w : (y+1)*w]
		bottom := m.pix[(y+hh+h%2)*w : (y+hh+h%2+1)*w]
		for x := range hw {
			xr := x + hw + w%2
			top[x], bottom[xr] = bottom[xr], top[x]
			top[xr], bottom[x] = bottom[x], top[xr]
		}
	}
}
