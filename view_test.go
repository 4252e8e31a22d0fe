package piv

import (
	"errors"
	"testing"
)

func TestNewView(t *testing.T) {
	im := ramp(Sz(10, 8))
	tests := []struct {
		name    string
		rect    Rect
		wantErr error
	}{
		{"full image", R(0, 0, 10, 8), nil},
		{"interior", R(2, 3, 4, 4), nil},
		{"touching far corner", R(6, 4, 4, 4), nil},
		{"past right edge", R(7, 0, 4, 4), ErrOutOfRange},
		{"past top edge", R(0, 5, 4, 4), ErrOutOfRange},
		{"negative origin", R(-1, 0, 4, 4), ErrOutOfRange},
		{"larger than image", R(0, 0, 11, 9), ErrOutOfRange},
		{"negative size", R(2, 2, -1, 3), ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewView(im, tt.rect)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewView(%v) error = %v, want %v", tt.rect, err, tt.wantErr)
			}
			if err != nil {
				if v != nil {
					t.Error("NewView() returned a view alongside an error")
				}
				return
			}
			if v.Size() != tt.rect.Size || v.Rect() != tt.rect {
				t.Errorf("view rect = %v, want %v", v.Rect(), tt.rect)
			}
		})
	}
}

func TestView_IndexingMatchesSource(t *testing.T) {
	im := ramp(Sz(12, 9))
	for _, rect := range []Rect{R(0, 0, 12, 9), R(3, 2, 5, 4), R(11, 8, 1, 1), R(4, 0, 8, 3)} {
		v, err := NewView(im, rect)
		if err != nil {
			t.Fatal(err)
		}
		if v.PixelCount() != rect.Size.Area() || v.Width() != rect.Size.Width || v.Height() != rect.Size.Height {
			t.Errorf("%v: dimensions %dx%d", rect, v.Width(), v.Height())
		}
		for y := range rect.Size.Height {
			for x := range rect.Size.Width {
				p := Pt(x, y)
				want := im.AtPoint(rect.Origin.Add(p))
				if got := v.AtPoint(p); got != want {
					t.Fatalf("%v: AtPoint(%v) = %v, want %v", rect, p, got, want)
				}
				if got := v.At(y*rect.Size.Width + x); got != want {
					t.Fatalf("%v: At(%d) = %v, want %v", rect, y*rect.Size.Width+x, got, want)
				}
			}
			row, err := v.Line(y)
			if err != nil {
				t.Fatal(err)
			}
			if len(row) != rect.Size.Width || row[0] != im.AtPoint(rect.Origin.Add(Pt(0, y))) {
				t.Fatalf("%v: Line(%d) = %v", rect, y, row)
			}
		}
		if _, err := v.Line(rect.Size.Height); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%v: Line(height) error = %v", rect, err)
		}
	}
}

func TestView_LineCannotReachNeighbours(t *testing.T) {
	im := ramp(Sz(6, 2))
	v, _ := NewView(im, R(1, 0, 2, 2))
	row, _ := v.Line(0)
	if cap(row) != 2 {
		t.Errorf("cap(Line) = %d, want 2", cap(row))
	}
}

func TestView_Resize(t *testing.T) {
	im := ramp(Sz(10, 10))
	v, _ := NewView(im, R(4, 4, 3, 3))

	if err := v.Resize(Sz(6, 6)); err != nil {
		t.Fatalf("Resize(6x6) error = %v", err)
	}
	if v.Rect() != R(4, 4, 6, 6) {
		t.Errorf("Rect after resize = %v", v.Rect())
	}

	if err := v.Resize(Sz(7, 2)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Resize(7x2) error = %v, want ErrOutOfRange", err)
	}
	if v.Rect() != R(4, 4, 6, 6) {
		t.Errorf("failed Resize changed the view to %v", v.Rect())
	}

	if err := v.Move(Pt(0, 0)); err != nil {
		t.Errorf("Move(0,0) error = %v", err)
	}
	if err := v.Move(Pt(5, 0)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Move(5,0) error = %v, want ErrOutOfRange", err)
	}
	if v.Origin() != Pt(0, 0) {
		t.Errorf("failed Move changed the origin to %v", v.Origin())
	}
}

func TestView_Equal(t *testing.T) {
	a, b := ramp(Sz(8, 8)), ramp(Sz(8, 8))
	va, _ := NewView(a, R(1, 1, 4, 4))
	va2, _ := NewView(a, R(1, 1, 4, 4))
	vb, _ := NewView(b, R(1, 1, 4, 4))
	vOther, _ := NewView(a, R(1, 1, 4, 3))

	if !va.Equal(va2) {
		t.Error("same source and rect should be equal")
	}
	if va.Equal(vb) {
		t.Error("views of distinct images with equal pixels must differ")
	}
	if va.Equal(vOther) {
		t.Error("views with different rects must differ")
	}
	if va.Source() != a {
		t.Error("Source() should return the referenced image")
	}
}

func TestView_SeesSourceWrites(t *testing.T) {
	im := ramp(Sz(4, 4))
	v, _ := NewView(im, R(2, 2, 2, 2))
	im.SetPoint(Pt(3, 3), -7)
	if v.AtPoint(Pt(1, 1)) != -7 {
		t.Errorf("view did not observe source write: %v", v.AtPoint(Pt(1, 1)))
	}

	cp := v.Clone()
	if cp.Size() != Sz(2, 2) || cp.AtPoint(Pt(1, 1)) != -7 || cp.At(0) != im.AtPoint(Pt(2, 2)) {
		t.Errorf("Clone() = %v", cp.Pix())
	}
}
