package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

type pnmCodec struct{}

const (
	// maxRasterBytes bounds the raster a PNM header may declare.
	maxRasterBytes = 1 << 28

	// rasterChunk is the read size for binary rasters. It is even so 16-bit
	// samples never straddle two reads.
	rasterChunk = 32 << 10
)

// PNM returns the Netpbm codec. It decodes the greymap and pixmap variants
// in ASCII (P2, P3) and binary (P5, P6) form with any maxval up to 65535.
// Grey images are written as P5 and everything else as 8-bit P6.
func PNM() Codec { return pnmCodec{} }

func (pnmCodec) Name() string  { return "pnm" }
func (pnmCodec) Priority() int { return 0 }

func (pnmCodec) Probe(h []byte) bool {
	if len(h) < 3 || h[0] != 'P' || !isSpace(h[2]) {
		return false
	}
	switch h[1] {
	case '2', '3', '5', '6':
		return true
	}
	return false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// short maps premature end of input to ErrShortStream.
func short(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrShortStream, err)
	}
	return err
}

type pnmReader struct {
	br *bufio.Reader
}

// readInt skips whitespace and comments, then reads a decimal value. The
// single byte terminating the value is consumed and must be whitespace.
func (p pnmReader) readInt() (int, error) {
	var b byte
	var err error
	for {
		if b, err = p.br.ReadByte(); err != nil {
			return 0, short(err)
		}
		if b == '#' {
			if _, err = p.br.ReadString('\n'); err != nil {
				return 0, short(err)
			}
			continue
		}
		if !isSpace(b) {
			break
		}
	}

	v, digits := 0, 0
	for b >= '0' && b <= '9' {
		v = v*10 + int(b-'0')
		digits++
		if v > 1<<24 {
			return 0, fmt.Errorf("%w: pnm value out of range", ErrMalformed)
		}
		if b, err = p.br.ReadByte(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: pnm expected digit, got %q", ErrMalformed, b)
	}
	if err == nil && !isSpace(b) {
		return 0, fmt.Errorf("%w: pnm unexpected %q after value", ErrMalformed, b)
	}
	return v, nil
}

func (pnmCodec) Decode(r io.Reader) (image.Image, error) {
	p := pnmReader{br: bufio.NewReader(r)}

	var magic [2]byte
	if _, err := io.ReadFull(p.br, magic[:]); err != nil {
		return nil, short(err)
	}
	if magic[0] != 'P' {
		return nil, fmt.Errorf("%w: pnm magic %q", ErrMalformed, magic[:])
	}
	var channels int
	var ascii bool
	switch magic[1] {
	case '2':
		channels, ascii = 1, true
	case '3':
		channels, ascii = 3, true
	case '5':
		channels = 1
	case '6':
		channels = 3
	default:
		return nil, fmt.Errorf("%w: pnm variant P%c", ErrUnsupportedPixel, magic[1])
	}

	var hdr [3]int
	for i := range hdr {
		v, err := p.readInt()
		if err != nil {
			return nil, err
		}
		hdr[i] = v
	}
	w, h, maxval := hdr[0], hdr[1], hdr[2]
	if maxval < 1 || maxval > 0xffff {
		return nil, fmt.Errorf("%w: pnm maxval %d", ErrMalformed, maxval)
	}
	deep := maxval > 0xff
	depth := 1
	if deep {
		depth = 2
	}
	if w > 0 && h > maxRasterBytes/(w*channels*depth) {
		return nil, fmt.Errorf("%w: pnm size %dx%d exceeds %d bytes", ErrMalformed, w, h, maxRasterBytes)
	}
	n := w * h * channels

	// Samples grow as input arrives so a short stream never allocates the
	// size its header claims.
	samples := make([]uint16, 0, min(n, rasterChunk))
	if ascii {
		for range n {
			v, err := p.readInt()
			if err != nil {
				return nil, err
			}
			samples = append(samples, uint16(min(v, 0xffff)))
		}
	} else {
		buf := make([]byte, min(n*depth, rasterChunk))
		for left := n * depth; left > 0; {
			chunk := buf[:min(left, len(buf))]
			if _, err := io.ReadFull(p.br, chunk); err != nil {
				return nil, short(err)
			}
			if deep {
				for i := 0; i < len(chunk); i += 2 {
					samples = append(samples, binary.BigEndian.Uint16(chunk[i:]))
				}
			} else {
				for _, b := range chunk {
					samples = append(samples, uint16(b))
				}
			}
			left -= len(chunk)
		}
	}

	full := 0xff
	if deep {
		full = 0xffff
	}
	for i, v := range samples {
		if int(v) > maxval {
			return nil, fmt.Errorf("%w: pnm sample %d above maxval %d", ErrMalformed, v, maxval)
		}
		if maxval != full {
			samples[i] = uint16((int(v)*full + maxval/2) / maxval)
		}
	}

	rect := image.Rect(0, 0, w, h)
	switch {
	case channels == 1 && deep:
		m := image.NewGray16(rect)
		for i, v := range samples {
			binary.BigEndian.PutUint16(m.Pix[2*i:], v)
		}
		return m, nil
	case channels == 1:
		m := image.NewGray(rect)
		for i, v := range samples {
			m.Pix[i] = uint8(v)
		}
		return m, nil
	case deep:
		m := image.NewNRGBA64(rect)
		for i := range w * h {
			s := samples[3*i:]
			m.SetNRGBA64(i%w, i/w, color.NRGBA64{R: s[0], G: s[1], B: s[2], A: 0xffff})
		}
		return m, nil
	default:
		m := image.NewNRGBA(rect)
		for i := range w * h {
			s, px := samples[3*i:], m.Pix[4*i:]
			px[0], px[1], px[2], px[3] = uint8(s[0]), uint8(s[1]), uint8(s[2]), 0xff
		}
		return m, nil
	}
}

func (pnmCodec) Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	bw := bufio.NewWriter(w)

	switch m := m.(type) {
	case *image.Gray:
		fmt.Fprintf(bw, "P5\n%d %d\n255\n", b.Dx(), b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := m.PixOffset(b.Min.X, y)
			if _, err := bw.Write(m.Pix[off : off+b.Dx()]); err != nil {
				return err
			}
		}
	case *image.Gray16:
		fmt.Fprintf(bw, "P5\n%d %d\n65535\n", b.Dx(), b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := m.PixOffset(b.Min.X, y)
			if _, err := bw.Write(m.Pix[off : off+2*b.Dx()]); err != nil {
				return err
			}
		}
	default:
		rgba, ok := m.(*image.NRGBA)
		if !ok {
			rgba = image.NewNRGBA(b)
			draw.Draw(rgba, b, m, b.Min, draw.Src)
		}
		fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy())
		row := make([]byte, 3*b.Dx())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := rgba.PixOffset(b.Min.X, y)
			for x := range b.Dx() {
				copy(row[3*x:3*x+3], rgba.Pix[off+4*x:])
			}
			if _, err := bw.Write(row); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
