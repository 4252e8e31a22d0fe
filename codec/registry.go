package codec

import (
	"cmp"
	"fmt"
	"image"
	"io"
	"slices"
	"sync"

	"github.com/gogpu/piv"
)

// HeaderSize is the number of leading bytes handed to Codec.Probe.
const HeaderSize = 16

// Codec encodes and decodes one image format.
type Codec interface {
	// Name returns the short lower-case format name, e.g. "tiff".
	Name() string

	// Priority orders probing; higher values are tried first.
	Priority() int

	// Probe reports whether header (at most HeaderSize bytes) starts a
	// stream this codec can decode.
	Probe(header []byte) bool

	// Decode reads a complete image from r.
	Decode(r io.Reader) (image.Image, error)

	// Encode writes m to w.
	Encode(w io.Writer, m image.Image) error
}

// Registry is an ordered set of codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs []Codec
}

// NewRegistry returns a registry holding the given codecs.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	r := &Registry{}
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry with every built-in codec.
func Default() *Registry {
	r, _ := NewRegistry(TIFF(), PNG(), JPEG(95), BMP(), PNM())
	return r
}

// Register adds c. Names must be unique.
func (r *Registry) Register(c Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, have := range r.codecs {
		if have.Name() == c.Name() {
			return fmt.Errorf("%w: %q", ErrDuplicate, c.Name())
		}
	}
	r.codecs = append(r.codecs, c)
	slices.SortStableFunc(r.codecs, func(a, b Codec) int {
		if d := cmp.Compare(b.Priority(), a.Priority()); d != 0 {
			return d
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	return nil
}

// Codecs returns the registered codecs in lookup order.
func (r *Registry) Codecs() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.codecs)
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.codecs {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Probe returns the first codec, in lookup order, that accepts the header
// of data.
func (r *Registry) Probe(data []byte) (Codec, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d byte header", ErrShortStream, len(data))
	}
	header := data[:min(len(data), HeaderSize)]

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.codecs {
		if c.Probe(header) {
			piv.Logger().Debug("codec: probe matched", "codec", c.Name(), "bytes", len(data))
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: header % x", ErrUnknownFormat, header[:min(len(header), 4)])
}
