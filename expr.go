package piv

import "fmt"

// Expr is a lazily evaluated per-pixel expression. Images and views are
// leaf expressions that read their own buffers; composite expressions
// evaluate their children at the same linear index and combine the results.
//
// Expressions are plain values composed through type parameters, so a whole
// expression tree is one value with no heap nodes and evaluating it does not
// allocate. Nothing is computed until the expression is passed to Assign or
// Evaluate.
type Expr[T Pixel] interface {
	// Size returns the dimensions of the expression. Constants report a
	// zero size and take the size of the operand they are combined with.
	Size() Size

	// At evaluates the expression at linear pixel offset i.
	At(i int) T
}

// Const is a scalar broadcast to every pixel.
type Const[T Pixel] struct {
	v T
}

// Scalar wraps v as a constant expression.
func Scalar[T Pixel](v T) Const[T] {
	return Const[T]{v: v}
}

// Size returns the zero size; a constant adopts its sibling's size.
func (c Const[T]) Size() Size { return Size{} }

// At returns the constant for any index.
func (c Const[T]) At(int) T { return c.v }

// BinaryOp identifies an arithmetic operator.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

// String returns the operator symbol.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// BinaryExpr combines two sub-expressions pixel by pixel.
type BinaryExpr[T Pixel, L Expr[T], R Expr[T]] struct {
	op BinaryOp
	fn func(a, b T) T
	l  L
	r  R
}

func binary[T Pixel, L Expr[T], R Expr[T]](op BinaryOp, l L, r R) BinaryExpr[T, L, R] {
	table := arithFor[T]()
	var fn func(a, b T) T
	switch op {
	case OpAdd:
		fn = table.add
	case OpSub:
		fn = table.sub
	case OpMul:
		fn = table.mul
	case OpDiv:
		fn = table.div
	case OpMod:
		fn = table.mod
	}
	return BinaryExpr[T, L, R]{op: op, fn: fn, l: l, r: r}
}

// Add returns l + r.
func Add[T Pixel, L Expr[T], R Expr[T]](l L, r R) BinaryExpr[T, L, R] {
	return binary[T](OpAdd, l, r)
}

// Sub returns l - r.
func Sub[T Pixel, L Expr[T], R Expr[T]](l L, r R) BinaryExpr[T, L, R] {
	return binary[T](OpSub, l, r)
}

// Mul returns l * r.
func Mul[T Pixel, L Expr[T], R Expr[T]](l L, r R) BinaryExpr[T, L, R] {
	return binary[T](OpMul, l, r)
}

// Div returns l / r. Integer division by zero yields zero.
func Div[T Pixel, L Expr[T], R Expr[T]](l L, r R) BinaryExpr[T, L, R] {
	return binary[T](OpDiv, l, r)
}

// Mod returns l % r. Floats use math.Mod; complex operands yield zero.
func Mod[T Pixel, L Expr[T], R Expr[T]](l L, r R) BinaryExpr[T, L, R] {
	return binary[T](OpMod, l, r)
}

// Op returns the operator.
func (e BinaryExpr[T, L, R]) Op() BinaryOp { return e.op }

// Size returns the size of the left operand, or the right one when the left
// is a constant.
func (e BinaryExpr[T, L, R]) Size() Size {
	if s := e.l.Size(); !s.IsEmpty() {
		return s
	}
	return e.r.Size()
}

// At evaluates both operands at i and applies the operator.
func (e BinaryExpr[T, L, R]) At(i int) T {
	return e.fn(e.l.At(i), e.r.At(i))
}

// UnaryOp identifies a complex-valued unary operator.
type UnaryOp uint8

const (
	OpConj UnaryOp = iota
	OpAbs
	OpAbsSqr
	OpReal
	OpImag
)

// String returns the operator name.
func (op UnaryOp) String() string {
	switch op {
	case OpConj:
		return "conj"
	case OpAbs:
		return "abs"
	case OpAbsSqr:
		return "abs_sqr"
	case OpReal:
		return "real"
	case OpImag:
		return "imag"
	default:
		return "?"
	}
}

// UnaryExpr applies a complex operator to each pixel of a sub-expression.
// Results stay complex; magnitude and component operators return their value
// in the real part with a zero imaginary part.
type UnaryExpr[E Expr[complex128]] struct {
	op UnaryOp
	e  E
}

// Conj returns the complex conjugate of e.
func Conj[E Expr[complex128]](e E) UnaryExpr[E] { return UnaryExpr[E]{op: OpConj, e: e} }

// AbsOf returns the magnitude of e.
func AbsOf[E Expr[complex128]](e E) UnaryExpr[E] { return UnaryExpr[E]{op: OpAbs, e: e} }

// AbsSqrOf returns the squared magnitude of e.
func AbsSqrOf[E Expr[complex128]](e E) UnaryExpr[E] { return UnaryExpr[E]{op: OpAbsSqr, e: e} }

// RealPart returns the real component of e.
func RealPart[E Expr[complex128]](e E) UnaryExpr[E] { return UnaryExpr[E]{op: OpReal, e: e} }

// ImagPart returns the imaginary component of e.
func ImagPart[E Expr[complex128]](e E) UnaryExpr[E] { return UnaryExpr[E]{op: OpImag, e: e} }

// Op returns the operator.
func (u UnaryExpr[E]) Op() UnaryOp { return u.op }

// Size returns the size of the operand.
func (u UnaryExpr[E]) Size() Size { return u.e.Size() }

// At evaluates the operand at i and applies the operator.
func (u UnaryExpr[E]) At(i int) complex128 {
	z := u.e.At(i)
	switch u.op {
	case OpConj:
		return complex(real(z), -imag(z))
	case OpAbs:
		return complex(Abs(z), 0)
	case OpAbsSqr:
		return complex(AbsSqr(z), 0)
	case OpReal:
		return complex(real(z), 0)
	case OpImag:
		return complex(imag(z), 0)
	}
	return z
}

// CastExpr converts each pixel of a sub-expression to another pixel type.
type CastExpr[U, T Pixel] struct {
	e    Expr[T]
	cast func(T) U
}

// Cast lazily converts e to pixel type U.
func Cast[U, T Pixel](e Expr[T]) CastExpr[U, T] {
	return CastExpr[U, T]{e: e, cast: castFunc[U, T]()}
}

// Size returns the size of the operand.
func (c CastExpr[U, T]) Size() Size { return c.e.Size() }

// At converts the operand's pixel at i.
func (c CastExpr[U, T]) At(i int) U { return c.cast(c.e.At(i)) }

// Assign evaluates e into dst. This is the only place an expression is
// walked over its full index range.
func Assign[T Pixel, E Expr[T]](dst *Image[T], e E) error {
	if s := e.Size(); s != dst.size {
		return fmt.Errorf("%w: assign %s expression to %s image", ErrSizeMismatch, s, dst.size)
	}
	for i := range dst.pix {
		dst.pix[i] = e.At(i)
	}
	return nil
}

// Evaluate materializes e into a new image.
func Evaluate[T Pixel, E Expr[T]](e E) *Image[T] {
	dst := NewImage[T](e.Size())
	for i := range dst.pix {
		dst.pix[i] = e.At(i)
	}
	return dst
}
