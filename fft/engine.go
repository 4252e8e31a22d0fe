package fft

import (
	"fmt"

	"github.com/gogpu/piv"
)

// Direction selects the forward or reverse transform.
type Direction int

const (
	// Forward maps spatial samples to a centred spectrum.
	Forward Direction = iota

	// Reverse maps a centred spectrum back to spatial samples.
	Reverse
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// minTableSize is the smallest transform length kept in an engine's table set.
const minTableSize = 4

// Engine computes 2-D transforms of one fixed size.
//
// Thread safety: an Engine must only be used by the goroutine that created
// it; see the package documentation.
type Engine struct {
	size    piv.Size
	out     *piv.Image[complex128] // result buffer, size
	scratch *piv.Image[complex128] // transposed buffer, size.Transpose()
	spec    *piv.Image[complex128] // first spectrum during correlation
	line    []complex128           // 1-D ping-pong buffer
	tables  map[int][]complex128
	owner   uint64
}

// New creates an engine for the given size. Both dimensions must be powers
// of two; otherwise New returns ErrNotPowerOfTwo and no engine.
func New(size piv.Size) (*Engine, error) {
	if !isPowerOfTwo(size.Width) || !isPowerOfTwo(size.Height) {
		return nil, fmt.Errorf("%w: %s", ErrNotPowerOfTwo, size)
	}

	longest := max(size.Width, size.Height)
	tables := make(map[int][]complex128)
	for n := longest; n >= minTableSize; n /= 2 {
		tables[n] = twiddleTable(n)
	}
	for _, n := range []int{size.Width, size.Height} {
		if _, ok := tables[n]; !ok {
			tables[n] = twiddleTable(n)
		}
	}

	e := &Engine{
		size:    size,
		out:     piv.NewImage[complex128](size),
		scratch: piv.NewImage[complex128](size.Transpose()),
		spec:    piv.NewImage[complex128](size),
		line:    make([]complex128, longest),
		tables:  tables,
		owner:   goroutineID(),
	}

	piv.Logger().Debug("fft: engine created", "size", size.String(), "tables", len(tables))
	return e, nil
}

// Size returns the transform size.
func (e *Engine) Size() piv.Size {
	return e.size
}

// check validates the calling goroutine and the input size.
func (e *Engine) check(in piv.Size) error {
	if id := goroutineID(); id != e.owner {
		return fmt.Errorf("%w: created on goroutine %d, called from %d", ErrWrongGoroutine, e.owner, id)
	}
	if in != e.size {
		return fmt.Errorf("%w: input %s, engine %s", ErrSizeMismatch, in, e.size)
	}
	return nil
}

// Transform computes the 2-D transform of in.
//
// The returned image is owned by the engine and is overwritten by the next
// call on the same engine; Clone it to keep it. Errors leave the engine
// usable.
func (e *Engine) Transform(in piv.Expr[complex128], dir Direction) (*piv.Image[complex128], error) {
	if err := e.check(in.Size()); err != nil {
		return nil, err
	}
	if err := piv.Assign(e.out, in); err != nil {
		return nil, err
	}
	e.run(dir)
	return e.out, nil
}

// run transforms e.out in place.
func (e *Engine) run(dir Direction) {
	inverse := dir == Reverse
	if inverse {
		piv.SwapQuadrants(e.out)
	}

	e.rows(e.out, inverse)
	piv.TransposeInto(e.scratch, e.out)
	e.rows(e.scratch, inverse)
	piv.TransposeInto(e.out, e.scratch)

	if inverse {
		scale := complex(1/float64(e.size.Area()), 0)
		pix := e.out.Pix()
		for i := range pix {
			pix[i] *= scale
		}
		return
	}
	piv.SwapQuadrants(e.out)
}

// rows runs the 1-D transform along every row of m.
func (e *Engine) rows(m *piv.Image[complex128], inverse bool) {
	tw := e.tables[m.Width()]
	for y := range m.Height() {
		row, _ := m.Line(y)
		transform1D(row, e.line, tw, inverse)
	}
}
