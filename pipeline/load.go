package pipeline

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/codec"
)

// LoadPair reads and decodes both frames concurrently. A failed decode
// abandons the pair; no partial result is returned.
func LoadPair[T piv.Pixel](ctx context.Context, reg *codec.Registry, first, second io.Reader) (*piv.Image[T], *piv.Image[T], error) {
	g, ctx := errgroup.WithContext(ctx)
	frames := [2]*piv.Image[T]{}
	for i, r := range []io.Reader{first, second} {
		g.Go(func() error {
			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("pipeline: read frame %d: %w", i, err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			im, err := codec.Decode[T](reg, data)
			if err != nil {
				return fmt.Errorf("pipeline: decode frame %d: %w", i, err)
			}
			frames[i] = im
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if frames[0].Size() != frames[1].Size() {
		return nil, nil, fmt.Errorf("%w: %s and %s", ErrFrameMismatch, frames[0].Size(), frames[1].Size())
	}
	return frames[0], frames[1], nil
}
