package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/piv"
)

// Decode probes data against reg and decodes it into an image of pixel
// type T.
func Decode[T piv.Pixel](reg *Registry, data []byte) (*piv.Image[T], error) {
	c, err := reg.Probe(data)
	if err != nil {
		return nil, err
	}
	return decodeWith[T](c, data)
}

// DecodeAs decodes data with the codec registered under name, skipping
// header probing.
func DecodeAs[T piv.Pixel](reg *Registry, name string, data []byte) (*piv.Image[T], error) {
	c, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return decodeWith[T](c, data)
}

func decodeWith[T piv.Pixel](c Codec, data []byte) (*piv.Image[T], error) {
	if !representable[T]() {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPixel, *new(T))
	}
	m, err := c.Decode(bytes.NewReader(data))
	if err != nil {
		if isCodecError(err) {
			return nil, err
		}
		if err = short(err); !isCodecError(err) {
			err = fmt.Errorf("%w: %s: %w", ErrMalformed, c.Name(), err)
		}
		return nil, err
	}
	im := fromImage[T](m)
	piv.Logger().Debug("codec: decoded", "codec", c.Name(), "size", im.Size(), "model", modelName(m))
	return im, nil
}

// Encode writes src with the codec registered under name.
func Encode[T piv.Pixel](reg *Registry, name string, src piv.Source[T]) ([]byte, error) {
	c, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	m, err := toImage(src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, m); err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", c.Name(), err)
	}
	return buf.Bytes(), nil
}

// Normalize linearly maps the finite range of src onto 0-255. A constant
// image maps to zero, NaN and -Inf pixels map to 0 and +Inf maps to 255.
func Normalize[T piv.Real](src piv.Source[T]) *piv.Image[uint8] {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range src.PixelCount() {
		v := float64(src.At(i))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	scale := 0.0
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	dst := piv.NewImage[uint8](src.Size())
	for i := range dst.PixelCount() {
		v := float64(src.At(i))
		switch {
		case math.IsNaN(v) || math.IsInf(v, -1):
			continue
		case math.IsInf(v, 1):
			dst.Set(i, 255)
			continue
		}
		dst.Set(i, uint8(math.Round((v-lo)*scale)))
	}
	return dst
}

func isCodecError(err error) bool {
	for _, target := range []error{ErrShortStream, ErrMalformed, ErrUnsupportedPixel, ErrUnknownFormat} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func representable[T piv.Pixel]() bool {
	_, isComplex := any(*new(T)).(complex128)
	return !isComplex
}

func modelName(m image.Image) string {
	switch m.(type) {
	case *image.Gray:
		return "gray8"
	case *image.Gray16:
		return "gray16"
	case *image.RGBA, *image.NRGBA, *image.YCbCr, *image.Paletted:
		return "rgb8"
	}
	if deep(m) {
		return "rgb16"
	}
	return "other"
}

func deep(m image.Image) bool {
	switch m.ColorModel() {
	case color.Gray16Model, color.RGBA64Model, color.NRGBA64Model:
		return true
	}
	return false
}

// fromImage converts m into a piv image. T must not be complex128.
func fromImage[T piv.Pixel](m image.Image) *piv.Image[T] {
	switch any(*new(T)).(type) {
	case piv.RGBA:
		return any(rgbaOf(m)).(*piv.Image[T])
	case uint8:
		return any(grey8Of(m)).(*piv.Image[T])
	}
	if deep(m) {
		return piv.Convert[T, uint16](grey16Of(m))
	}
	return piv.Convert[T, uint8](grey8Of(m))
}

func grey8Of(m image.Image) *piv.Image[uint8] {
	b := m.Bounds()
	g, ok := m.(*image.Gray)
	if !ok {
		g = image.NewGray(b)
		draw.Draw(g, b, m, b.Min, draw.Src)
	}
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h)
	for y := range h {
		off := g.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w:(y+1)*w], g.Pix[off:off+w])
	}
	im, _ := piv.NewImageFrom(piv.Sz(w, h), pix)
	return im
}

func grey16Of(m image.Image) *piv.Image[uint16] {
	b := m.Bounds()
	g, ok := m.(*image.Gray16)
	if !ok {
		g = image.NewGray16(b)
		draw.Draw(g, b, m, b.Min, draw.Src)
	}
	w, h := b.Dx(), b.Dy()
	pix := make([]uint16, w*h)
	for y := range h {
		off := g.PixOffset(b.Min.X, b.Min.Y+y)
		for x := range w {
			pix[y*w+x] = binary.BigEndian.Uint16(g.Pix[off+2*x:])
		}
	}
	im, _ := piv.NewImageFrom(piv.Sz(w, h), pix)
	return im
}

func rgbaOf(m image.Image) *piv.Image[piv.RGBA] {
	b := m.Bounds()
	n, ok := m.(*image.NRGBA)
	if !ok {
		n = image.NewNRGBA(b)
		draw.Draw(n, b, m, b.Min, draw.Src)
	}
	w, h := b.Dx(), b.Dy()
	pix := make([]piv.RGBA, w*h)
	for y := range h {
		off := n.PixOffset(b.Min.X, b.Min.Y+y)
		for x := range w {
			p := n.Pix[off+4*x : off+4*x+4]
			pix[y*w+x] = piv.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	im, _ := piv.NewImageFrom(piv.Sz(w, h), pix)
	return im
}

// toImage copies src into the narrowest standard image able to hold it.
// Wide grey types are saturated into 16 bits.
func toImage[T piv.Pixel](src piv.Source[T]) (image.Image, error) {
	w, h := src.Width(), src.Height()
	r := image.Rect(0, 0, w, h)

	switch any(*new(T)).(type) {
	case complex128:
		return nil, fmt.Errorf("%w: complex128 has no encoded form", ErrUnsupportedPixel)
	case piv.RGBA:
		n := image.NewNRGBA(r)
		for y := range h {
			row, _ := src.Line(y)
			for x, c := range any(row).([]piv.RGBA) {
				p := n.Pix[n.PixOffset(x, y):]
				p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
			}
		}
		return n, nil
	case uint8:
		g := image.NewGray(r)
		for y := range h {
			row, _ := src.Line(y)
			copy(g.Pix[g.PixOffset(0, y):], any(row).([]uint8))
		}
		return g, nil
	}

	wide := piv.Convert[uint16, T](src)
	g := image.NewGray16(r)
	for i, v := range wide.Pix() {
		binary.BigEndian.PutUint16(g.Pix[2*i:], v)
	}
	return g, nil
}
