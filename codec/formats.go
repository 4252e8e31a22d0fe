package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	tiffLE   = []byte("II*\x00")
	tiffBE   = []byte("MM\x00*")
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
	jpegSOI  = []byte{0xff, 0xd8, 0xff}
	bmpMagic = []byte("BM")
)

type tiffCodec struct{}

// TIFF returns the TIFF codec. Output is uncompressed.
func TIFF() Codec { return tiffCodec{} }

func (tiffCodec) Name() string  { return "tiff" }
func (tiffCodec) Priority() int { return 40 }

func (tiffCodec) Probe(h []byte) bool {
	return bytes.HasPrefix(h, tiffLE) || bytes.HasPrefix(h, tiffBE)
}

func (tiffCodec) Decode(r io.Reader) (image.Image, error) { return tiff.Decode(r) }

func (tiffCodec) Encode(w io.Writer, m image.Image) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Uncompressed})
}

type pngCodec struct{}

// PNG returns the PNG codec.
func PNG() Codec { return pngCodec{} }

func (pngCodec) Name() string                            { return "png" }
func (pngCodec) Priority() int                           { return 30 }
func (pngCodec) Probe(h []byte) bool                     { return bytes.HasPrefix(h, pngMagic) }
func (pngCodec) Decode(r io.Reader) (image.Image, error) { return png.Decode(r) }
func (pngCodec) Encode(w io.Writer, m image.Image) error { return png.Encode(w, m) }

type jpegCodec struct {
	quality int
}

// JPEG returns a JPEG codec encoding at the given quality, clamped to 1-100.
// JPEG is lossy and only suited to previews, not to frames that will be
// correlated again.
func JPEG(quality int) Codec {
	return jpegCodec{quality: min(max(quality, 1), 100)}
}

func (jpegCodec) Name() string                            { return "jpeg" }
func (jpegCodec) Priority() int                           { return 20 }
func (jpegCodec) Probe(h []byte) bool                     { return bytes.HasPrefix(h, jpegSOI) }
func (jpegCodec) Decode(r io.Reader) (image.Image, error) { return jpeg.Decode(r) }

func (c jpegCodec) Encode(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: c.quality})
}

type bmpCodec struct{}

// BMP returns the BMP codec.
func BMP() Codec { return bmpCodec{} }

func (bmpCodec) Name() string  { return "bmp" }
func (bmpCodec) Priority() int { return 10 }

// "BM" is short enough to collide with text, so the header must also be
// long enough to hold the file header.
func (bmpCodec) Probe(h []byte) bool {
	return len(h) >= 14 && bytes.HasPrefix(h, bmpMagic)
}

func (bmpCodec) Decode(r io.Reader) (image.Image, error) { return bmp.Decode(r) }
func (bmpCodec) Encode(w io.Writer, m image.Image) error { return bmp.Encode(w, m) }
