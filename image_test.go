package piv

import (
	"errors"
	"math"
	"testing"
	"unsafe"
)

func ramp(size Size) *Image[float64] {
	im := NewImage[float64](size)
	for i := range im.Pix() {
		im.Set(i, float64(i))
	}
	return im
}

func TestNewImage(t *testing.T) {
	im := NewImage[uint16](Sz(7, 3))
	if im.Width() != 7 || im.Height() != 3 || im.PixelCount() != 21 {
		t.Errorf("dimensions = %dx%d (%d px)", im.Width(), im.Height(), im.PixelCount())
	}
	if im.Rect() != R(0, 0, 7, 3) {
		t.Errorf("Rect() = %v", im.Rect())
	}

	var zero Image[float64]
	if !zero.IsEmpty() || zero.PixelCount() != 0 {
		t.Error("zero value should be an empty image")
	}
	empty := NewImage[uint8](Sz(0, 10))
	if !empty.IsEmpty() || empty.PixelCount() != 0 {
		t.Error("0x10 image should be empty")
	}
	if empty.Size() != Sz(0, 10) {
		t.Errorf("0x10 image Size() = %v", empty.Size())
	}
	if from, _ := NewImageFrom[uint8](Sz(0, 10), nil); from.Size() != empty.Size() {
		t.Errorf("NewImageFrom size %v, NewImage size %v", from.Size(), empty.Size())
	}
}

func TestNewImageFrom(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	im, err := NewImageFrom(Sz(3, 2), pix)
	if err != nil {
		t.Fatal(err)
	}
	if im.AtPoint(Pt(2, 1)) != 6 {
		t.Errorf("AtPoint(2,1) = %d, want 6", im.AtPoint(Pt(2, 1)))
	}
	if _, err := NewImageFrom(Sz(4, 2), pix); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("mismatched length error = %v, want ErrDataTooSmall", err)
	}
	if _, err := NewImageFrom(Sz(-3, -2), pix); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("negative size error = %v, want ErrInvalidSize", err)
	}
}

func TestImage_Indexing(t *testing.T) {
	im := ramp(Sz(5, 4))
	for y := range 4 {
		for x := range 5 {
			if got := im.AtPoint(Pt(x, y)); got != float64(y*5+x) {
				t.Fatalf("AtPoint(%d,%d) = %v, want %v", x, y, got, y*5+x)
			}
		}
	}
	im.SetPoint(Pt(1, 2), -1)
	if im.At(11) != -1 {
		t.Errorf("At(11) = %v after SetPoint(1,2)", im.At(11))
	}
}

func TestImage_Line(t *testing.T) {
	im := ramp(Sz(4, 3))
	row, err := im.Line(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(row) != 4 || row[0] != 8 || row[3] != 11 {
		t.Errorf("Line(2) = %v", row)
	}
	row[1] = 100
	if im.AtPoint(Pt(1, 2)) != 100 {
		t.Error("Line should alias the image buffer")
	}
	for _, h := range []int{3, 10, -1} {
		if _, err := im.Line(h); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Line(%d) error = %v, want ErrOutOfRange", h, err)
		}
	}
}

func TestImage_CloneAndEqual(t *testing.T) {
	im := ramp(Sz(3, 3))
	cp := im.Clone()
	if !cp.Equal(im) {
		t.Fatal("Clone should equal the original")
	}
	cp.Set(0, 42)
	if im.At(0) == 42 {
		t.Error("Clone should be deep")
	}
	if cp.Equal(im) {
		t.Error("Equal should compare pixel values")
	}
	if ramp(Sz(9, 1)).Equal(ramp(Sz(3, 3))) {
		t.Error("Equal should compare dimensions")
	}
}

func TestRGBA_PackedLayout(t *testing.T) {
	if got := unsafe.Sizeof(RGBA{}); got != 4 {
		t.Errorf("sizeof(RGBA) = %d, want 4", got)
	}
	px := []RGBA{{R: 1, G: 2, B: 3, A: 4}}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&px[0])), 4)
	for i, want := range []byte{1, 2, 3, 4} {
		if raw[i] != want {
			t.Errorf("byte %d = %d, want %d", i, raw[i], want)
		}
	}
}

func TestConvert(t *testing.T) {
	src, _ := NewImageFrom(Sz(4, 1), []float64{-3, 12.4, 300, 255})

	u8 := Convert[uint8, float64](src)
	for i, want := range []uint8{0, 12, 255, 255} {
		if u8.At(i) != want {
			t.Errorf("uint8 pixel %d = %d, want %d", i, u8.At(i), want)
		}
	}

	c := Convert[complex128, float64](src)
	if c.At(1) != complex(12.4, 0) {
		t.Errorf("complex pixel = %v", c.At(1))
	}
	back := Convert[float64, complex128](c)
	if !back.Equal(src) {
		t.Error("float -> complex -> float should be lossless")
	}

	rgba := Convert[RGBA, uint8](u8)
	if rgba.At(1) != Grey(12) {
		t.Errorf("RGBA pixel = %+v", rgba.At(1))
	}
	grey := Convert[uint8, RGBA](rgba)
	if !grey.Equal(u8) {
		t.Error("grey -> RGBA -> grey should be lossless")
	}

	same := Convert[float64, float64](src)
	if !same.Equal(src) || &same.Pix()[0] == &src.Pix()[0] {
		t.Error("same-type Convert should copy")
	}
}

func TestRGBA_Luminance(t *testing.T) {
	if got := (RGBA{R: 255, A: 255}).Luminance(); math.Abs(got-76.245) > 1e-9 {
		t.Errorf("red luminance = %v", got)
	}
	if got := Grey(80).Luminance(); math.Abs(got-80) > 1e-9 {
		t.Errorf("grey luminance = %v", got)
	}
}

func TestTranspose_RoundTrip(t *testing.T) {
	for _, size := range []Size{Sz(1, 1), Sz(5, 3), Sz(16, 16), Sz(1, 9)} {
		im := ramp(size)
		tr := Transpose[float64](im)
		if tr.Size() != size.Transpose() {
			t.Errorf("%v: transposed size %v", size, tr.Size())
		}
		if size.Area() > 1 && tr.Equal(im) && size.Width != size.Height {
			t.Errorf("%v: transpose should change the image", size)
		}
		if !Transpose[float64](tr).Equal(im) {
			t.Errorf("%v: transpose(transpose(im)) != im", size)
		}
	}

	im := ramp(Sz(3, 2))
	if got := Transpose[float64](im).AtPoint(Pt(1, 2)); got != im.AtPoint(Pt(2, 1)) {
		t.Errorf("transposed (1,2) = %v, want %v", got, im.AtPoint(Pt(2, 1)))
	}
}

func TestSwapQuadrants(t *testing.T) {
	im, _ := NewImageFrom(Sz(4, 2), []int32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	SwapQuadrants(im)
	want := []int32{
		7, 8, 5, 6,
		3, 4, 1, 2,
	}
	for i, w := range want {
		if im.At(i) != w {
			t.Fatalf("pixel %d = %d, want %d (got %v)", i, im.At(i), w, im.Pix())
		}
	}

	even := ramp(Sz(8, 4))
	cp := even.Clone()
	SwapQuadrants(cp)
	SwapQuadrants(cp)
	if !cp.Equal(even) {
		t.Error("swapping twice should restore even-sized images")
	}
}
