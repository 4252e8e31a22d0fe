package piv

import "fmt"

// Number is the set of scalar types a Point may carry.
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~float32 | ~float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height int
}

// NewSize returns a Size, rejecting negative dimensions.
func NewSize(width, height int) (Size, error) {
	if width < 0 || height < 0 {
		return Size{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return Size{Width: width, Height: height}, nil
}

// Sz is a convenience constructor for sizes known to be valid.
func Sz(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// IsEmpty reports whether the size covers no pixels.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Transpose swaps width and height.
func (s Size) Transpose() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is a 2-D coordinate.
type Point[T Number] struct {
	X, Y T
}

// Pt is a convenience function to create a Point.
func Pt[T Number](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// Add returns the component-wise sum.
func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference.
func (p Point[T]) Sub(q Point[T]) Point[T] {
	return Point[T]{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point multiplied by s.
func (p Point[T]) Scale(s T) Point[T] {
	return Point[T]{X: p.X * s, Y: p.Y * s}
}

// Float converts an integer pixel coordinate to floating geometry.
func (p Point[T]) Float() Point[float64] {
	return Point[float64]{X: float64(p.X), Y: float64(p.Y)}
}

// Point3 is a 3-D coordinate.
type Point3[T Number] struct {
	X, Y, Z T
}

// Add returns the component-wise sum.
func (p Point3[T]) Add(q Point3[T]) Point3[T] {
	return Point3[T]{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the component-wise difference.
func (p Point3[T]) Sub(q Point3[T]) Point3[T] {
	return Point3[T]{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
//
// The bottom-left corner is the minimum X and Y of the rectangle. The other
// corners lie Size pixels away and are exclusive, so a 1x1 rectangle at the
// origin has corners (0,0) and (1,1).
type Rect struct {
	Origin Point[int]
	Size   Size
}

// R is a convenience constructor for a Rect.
func R(x, y, width, height int) Rect {
	return Rect{Origin: Point[int]{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// BottomLeft returns the origin.
func (r Rect) BottomLeft() Point[int] {
	return r.Origin
}

// TopLeft returns the corner above the origin.
func (r Rect) TopLeft() Point[int] {
	return Point[int]{X: r.Origin.X, Y: r.Origin.Y + r.Size.Height}
}

// BottomRight returns the corner right of the origin.
func (r Rect) BottomRight() Point[int] {
	return Point[int]{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y}
}

// TopRight returns the corner opposite the origin.
func (r Rect) TopRight() Point[int] {
	return Point[int]{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// Corners returns all four corners, starting at the origin and going
// counter-clockwise.
func (r Rect) Corners() [4]Point[int] {
	return [4]Point[int]{r.BottomLeft(), r.BottomRight(), r.TopRight(), r.TopLeft()}
}

// Within reports whether p lies inside the closed bounds of r.
func (r Rect) Within(p Point[int]) bool {
	return p.X >= r.Origin.X && p.X <= r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y <= r.Origin.Y+r.Size.Height
}

// Contains reports whether every corner of o lies within r.
func (r Rect) Contains(o Rect) bool {
	for _, c := range o.Corners() {
		if !r.Within(c) {
			return false
		}
	}
	return true
}

// Midpoint returns the integer pixel at the middle of the rectangle.
// For odd sizes this is the exact center pixel.
func (r Rect) Midpoint() Point[int] {
	return Point[int]{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// Center returns the geometric center.
func (r Rect) Center() Point[float64] {
	return Point[float64]{
		X: float64(r.Origin.X) + float64(r.Size.Width)/2,
		Y: float64(r.Origin.Y) + float64(r.Size.Height)/2,
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point[int]) Rect {
	return Rect{Origin: r.Origin.Add(d), Size: r.Size}
}

// Intersect returns the overlap of r and o, or an empty rectangle.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(r.Origin.X+r.Size.Width, o.Origin.X+o.Size.Width)
	y1 := min(r.Origin.Y+r.Size.Height, o.Origin.Y+o.Size.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// String returns "(x,y)+WxH".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)+%s", r.Origin.X, r.Origin.Y, r.Size)
}
