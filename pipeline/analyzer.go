// Package pipeline runs one PIV pass: it tiles a frame pair into
// interrogation windows, cross-correlates each window pair and turns the
// correlation peaks into a displacement field.
//
// Windows are processed by a fixed set of workers. Each worker owns an FFT
// engine created on its own goroutine, so no engine is ever shared.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/fft"
	"github.com/gogpu/piv/grid"
	"github.com/gogpu/piv/internal/parallel"
	"github.com/gogpu/piv/peak"
)

var (
	// ErrFrameMismatch is returned when the two frames differ in size.
	ErrFrameMismatch = errors.New("pipeline: frame sizes differ")

	// ErrInvalidOption is returned by New for unusable settings.
	ErrInvalidOption = errors.New("pipeline: invalid option")
)

// Analyzer holds the settings of a PIV pass. It is immutable after New and
// safe for concurrent use; every Run builds its own workers.
type Analyzer struct {
	opts options
}

// New returns an analyzer configured by opts.
func New(opts ...Option) (*Analyzer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if w := o.window; w.IsEmpty() || w.Width&(w.Width-1) != 0 || w.Height&(w.Height-1) != 0 {
		return nil, fmt.Errorf("%w: window %s: %w", ErrInvalidOption, w, fft.ErrNotPowerOfTwo)
	}
	if o.separation < 0 {
		return nil, fmt.Errorf("%w: separation %d", ErrInvalidOption, o.separation)
	}
	return &Analyzer{opts: o}, nil
}

// Window returns the interrogation window size.
func (an *Analyzer) Window() piv.Size { return an.opts.window }

func (an *Analyzer) logger() *slog.Logger {
	if an.opts.logger != nil {
		return an.opts.logger
	}
	return piv.Logger()
}

// worker is the state owned by one pool goroutine.
type worker struct {
	engine *fft.Engine
	plane  *piv.Image[float64]
}

// Run computes the displacement field from frame a to frame b. It returns
// the context error if ctx is cancelled before every window is done.
func Run[T piv.Pixel](ctx context.Context, an *Analyzer, a, b *piv.Image[T]) (*Field, error) {
	if a.Size() != b.Size() {
		return nil, fmt.Errorf("%w: %s and %s", ErrFrameMismatch, a.Size(), b.Size())
	}
	g, err := grid.Generate(a.Size(), an.opts.window, an.opts.spacing)
	if err != nil {
		return nil, err
	}

	log := an.logger()
	started := time.Now()

	window := an.opts.window
	pool, err := parallel.NewWorkerPool(an.opts.workers, func(int) (*worker, error) {
		e, err := fft.New(window)
		if err != nil {
			return nil, err
		}
		return &worker{engine: e, plane: piv.NewImage[float64](window)}, nil
	})
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	log.Info("pipeline: pass started",
		"frame", a.Size(), "window", window, "offset", g.Offset,
		"windows", g.Len(), "workers", pool.Workers())

	field := &Field{Grid: g, Vectors: make([]Vector, g.Len())}
	errs := make([]error, g.Len())
	tasks := make([]func(*worker), g.Len())
	for i, rect := range g.Rects {
		tasks[i] = func(w *worker) {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			field.Vectors[i], errs[i] = analyzeWindow(an, w, a, b, rect)
			if errs[i] == nil && !field.Vectors[i].Valid {
				log.Warn("pipeline: window rejected", "rect", rect, "ratio", field.Vectors[i].Ratio)
			}
		}
	}
	if err := pool.ExecuteAll(tasks); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	log.Info("pipeline: pass complete",
		"windows", g.Len(), "valid", field.ValidCount(), "elapsed", time.Since(started))
	return field, nil
}

// analyzeWindow correlates one window pair. Each window has its mean
// removed first so the zero-lag DC term does not swamp the particle peak.
func analyzeWindow[T piv.Pixel](an *Analyzer, w *worker, a, b *piv.Image[T], rect piv.Rect) (Vector, error) {
	va, err := piv.NewView(a, rect)
	if err != nil {
		return Vector{}, err
	}
	vb, err := piv.NewView(b, rect)
	if err != nil {
		return Vector{}, err
	}
	fa, fb := piv.Cast[float64, T](va), piv.Cast[float64, T](vb)

	plane, err := fft.CrossCorrelate[float64](w.engine,
		piv.Sub[float64](fa, piv.Scalar(mean(fa))),
		piv.Sub[float64](fb, piv.Scalar(mean(fb))))
	if err != nil {
		return Vector{}, err
	}
	if err := piv.Assign(w.plane, piv.Cast[float64, complex128](plane)); err != nil {
		return Vector{}, err
	}

	v := Vector{Position: rect.Center()}
	peaks, err := peak.Find[float64](w.plane, 2, an.opts.separation)
	if err != nil {
		return Vector{}, err
	}
	if len(peaks) == 0 {
		return v, nil
	}

	loc := peaks[0].Location().Float()
	if an.opts.subpixel {
		loc = peak.Refine[float64](w.plane, peaks[0])
	}
	center := piv.Point[int]{X: rect.Size.Width / 2, Y: rect.Size.Height / 2}.Float()
	v.Displacement = center.Sub(loc)
	v.Value = peaks[0].Value
	v.Ratio = peak.Ratio(peaks)
	v.Valid = v.Value > 0 && v.Ratio >= an.opts.minRatio

	an.logger().Debug("pipeline: window", "rect", rect, "displacement", v.Displacement, "ratio", v.Ratio)
	return v, nil
}

func mean(e piv.Expr[float64]) float64 {
	n := e.Size().Area()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := range n {
		sum += e.At(i)
	}
	return sum / float64(n)
}
