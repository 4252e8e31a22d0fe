package piv

import "fmt"

// View is a non-owning window onto an Image.
//
// The view keeps a pointer to its source, so the source buffer stays alive
// for as long as the view does. Mutating the source while a view is in use
// is visible through the view; callers that need a stable snapshot should
// Clone the source first.
type View[T Pixel] struct {
	src  *Image[T]
	rect Rect
}

// NewView returns a view of rect inside src. It fails with ErrOutOfRange
// unless rect is fully contained in the source bounds.
func NewView[T Pixel](src *Image[T], rect Rect) (*View[T], error) {
	if rect.Size.Width < 0 || rect.Size.Height < 0 || !src.Rect().Contains(rect) {
		return nil, fmt.Errorf("%w: view %s in image %s", ErrOutOfRange, rect, src.Size())
	}
	return &View[T]{src: src, rect: rect}, nil
}

// Source returns the referenced image.
func (v *View[T]) Source() *Image[T] { return v.src }

// Rect returns the window in source coordinates.
func (v *View[T]) Rect() Rect { return v.rect }

// Origin returns the window origin in source coordinates.
func (v *View[T]) Origin() Point[int] { return v.rect.Origin }

// Width returns the view width in pixels.
func (v *View[T]) Width() int { return v.rect.Size.Width }

// Height returns the view height in pixels.
func (v *View[T]) Height() int { return v.rect.Size.Height }

// PixelCount returns the number of pixels in the window.
func (v *View[T]) PixelCount() int { return v.rect.Size.Area() }

// Size returns the view dimensions.
func (v *View[T]) Size() Size { return v.rect.Size }

// At returns the pixel at linear offset i within the view.
func (v *View[T]) At(i int) T {
	w := v.rect.Size.Width
	return v.AtPoint(Point[int]{X: i % w, Y: i / w})
}

// AtPoint returns the pixel at p relative to the view origin.
func (v *View[T]) AtPoint(p Point[int]) T {
	return v.src.AtPoint(v.rect.Origin.Add(p))
}

// Line returns row h of the view as a slice aliasing the source buffer.
func (v *View[T]) Line(h int) ([]T, error) {
	if h < 0 || h >= v.rect.Size.Height {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, h, v.rect.Size.Height)
	}
	row, err := v.src.Line(v.rect.Origin.Y + h)
	if err != nil {
		return nil, err
	}
	x0 := v.rect.Origin.X
	return row[x0 : x0+v.rect.Size.Width : x0+v.rect.Size.Width], nil
}

// Resize changes the window size keeping its origin. On failure the view is
// left unchanged.
func (v *View[T]) Resize(size Size) error {
	r := Rect{Origin: v.rect.Origin, Size: size}
	if size.Width < 0 || size.Height < 0 || !v.src.Rect().Contains(r) {
		return fmt.Errorf("%w: resize to %s at (%d,%d) in image %s",
			ErrOutOfRange, size, r.Origin.X, r.Origin.Y, v.src.Size())
	}
	v.rect = r
	return nil
}

// Move repositions the window keeping its size, under the same containment
// rule as NewView.
func (v *View[T]) Move(origin Point[int]) error {
	r := Rect{Origin: origin, Size: v.rect.Size}
	if !v.src.Rect().Contains(r) {
		return fmt.Errorf("%w: move to %s in image %s", ErrOutOfRange, r, v.src.Size())
	}
	v.rect = r
	return nil
}

// Equal reports whether both views reference the same image instance with
// the same window.
func (v *View[T]) Equal(o *View[T]) bool {
	return v.src == o.src && v.rect == o.rect
}

// Clone copies the window into a new owning image.
func (v *View[T]) Clone() *Image[T] {
	dst := NewImage[T](v.rect.Size)
	for y := range v.rect.Size.Height {
		row, _ := v.Line(y)
		copy(dst.pix[y*v.rect.Size.Width:], row)
	}
	return dst
}
