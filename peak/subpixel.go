package peak

import (
	"math"

	"github.com/gogpu/piv"
)

// Refine estimates the sub-pixel position of p by fitting a three-point
// Gaussian through the peak and its neighbours on each axis. When any of
// the three samples is not positive the Gaussian is undefined and a
// parabola is fitted instead. Axes touching the image border keep the
// integer coordinate.
func Refine[T piv.Real](src piv.Source[T], p Peak) piv.Point[float64] {
	loc := p.Location()
	x, y := loc.X, loc.Y
	at := func(x, y int) float64 { return float64(src.AtPoint(piv.Point[int]{X: x, Y: y})) }

	fx, fy := float64(x), float64(y)
	c := at(x, y)
	if x > 0 && x < src.Width()-1 {
		fx += offset3(at(x-1, y), c, at(x+1, y))
	}
	if y > 0 && y < src.Height()-1 {
		fy += offset3(at(x, y-1), c, at(x, y+1))
	}
	return piv.Point[float64]{X: fx, Y: fy}
}

// offset3 returns the vertex offset of the curve through (-1,l), (0,c), (1,r).
func offset3(l, c, r float64) float64 {
	if l > 0 && c > 0 && r > 0 {
		ll, lc, lr := math.Log(l), math.Log(c), math.Log(r)
		if d := 2*ll - 4*lc + 2*lr; d != 0 {
			return (ll - lr) / d
		}
		return 0
	}
	if d := 2*l - 4*c + 2*r; d != 0 {
		return (l - r) / d
	}
	return 0
}
