package pipeline

import (
	"log/slog"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/grid"
)

// Option configures an Analyzer.
//
// Example:
//
//	an, err := pipeline.New(
//	    pipeline.WithWindow(piv.Sz(32, 32)),
//	    pipeline.WithOverlap(0.5),
//	)
type Option func(*options)

type options struct {
	window     piv.Size
	spacing    grid.Spacing
	workers    int
	separation int
	minRatio   float64
	subpixel   bool
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		window:     piv.Sz(32, 32),
		spacing:    grid.Overlap(0.5),
		workers:    0, // GOMAXPROCS
		separation: 2,
		minRatio:   1.2,
		subpixel:   true,
		logger:     nil, // piv.Logger() at run time
	}
}

// WithWindow sets the interrogation window size. Both dimensions must be
// powers of two.
func WithWindow(size piv.Size) Option {
	return func(o *options) {
		o.window = size
	}
}

// WithOverlap spaces windows so that neighbours overlap by the given
// fraction of the window size.
func WithOverlap(fraction float64) Option {
	return func(o *options) {
		o.spacing = grid.Overlap(fraction)
	}
}

// WithOffset spaces windows by an explicit distance in pixels.
func WithOffset(offset piv.Size) Option {
	return func(o *options) {
		o.spacing = grid.Offset(offset)
	}
}

// WithWorkers sets the number of correlation workers. Zero or a negative
// value uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSeparation sets the minimum distance in pixels between the primary
// and secondary correlation peaks.
func WithSeparation(s int) Option {
	return func(o *options) {
		o.separation = s
	}
}

// WithMinRatio sets the primary-to-secondary peak ratio below which a
// vector is marked invalid.
func WithMinRatio(r float64) Option {
	return func(o *options) {
		o.minRatio = r
	}
}

// WithSubpixel enables or disables three-point sub-pixel peak refinement.
func WithSubpixel(enabled bool) Option {
	return func(o *options) {
		o.subpixel = enabled
	}
}

// WithLogger sets the logger for this analyzer instead of piv.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
