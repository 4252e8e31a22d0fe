package piv

import (
	"errors"
	"testing"
)

func TestNewSize(t *testing.T) {
	if _, err := NewSize(-1, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewSize(-1, 4) error = %v, want ErrInvalidSize", err)
	}
	s, err := NewSize(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	if s.Area() != 24 {
		t.Errorf("Area() = %d, want 24", s.Area())
	}
	if s.Transpose() != Sz(4, 6) {
		t.Errorf("Transpose() = %v", s.Transpose())
	}
	if !Sz(0, 5).IsEmpty() || Sz(1, 1).IsEmpty() {
		t.Error("IsEmpty() wrong")
	}
	if s.String() != "6x4" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestPoint(t *testing.T) {
	p, q := Pt(3, 4), Pt(1, -2)
	if p.Add(q) != Pt(4, 2) {
		t.Errorf("Add = %v", p.Add(q))
	}
	if p.Sub(q) != Pt(2, 6) {
		t.Errorf("Sub = %v", p.Sub(q))
	}
	if p.Scale(2) != Pt(6, 8) {
		t.Errorf("Scale = %v", p.Scale(2))
	}
	if p.Float() != Pt(3.0, 4.0) {
		t.Errorf("Float = %v", p.Float())
	}
	a := Point3[float64]{X: 1, Y: 2, Z: 3}
	if a.Add(a).Sub(a) != a {
		t.Errorf("Point3 round trip = %v", a.Add(a).Sub(a))
	}
}

func TestRect_Corners(t *testing.T) {
	r := R(-2, 3, 5, 4)
	tests := []struct {
		name string
		got  Point[int]
		want Point[int]
	}{
		{"BottomLeft", r.BottomLeft(), Pt(-2, 3)},
		{"BottomRight", r.BottomRight(), Pt(3, 3)},
		{"TopLeft", r.TopLeft(), Pt(-2, 7)},
		{"TopRight", r.TopRight(), Pt(3, 7)},
		{"Midpoint", r.Midpoint(), Pt(0, 5)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if c := r.Center(); c != Pt(0.5, 5.0) {
		t.Errorf("Center = %v", c)
	}
}

func TestRect_Contains(t *testing.T) {
	outer := R(0, 0, 10, 10)
	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"identical", R(0, 0, 10, 10), true},
		{"inside", R(2, 3, 4, 4), true},
		{"touching far edge", R(5, 5, 5, 5), true},
		{"past right edge", R(6, 0, 5, 5), false},
		{"past top edge", R(0, 6, 5, 5), false},
		{"negative origin", R(-1, 0, 5, 5), false},
		{"empty at corner", R(10, 10, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestRect_Intersect(t *testing.T) {
	a, b := R(0, 0, 10, 10), R(5, -5, 10, 10)
	if got := a.Intersect(b); got != R(5, 0, 5, 5) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(R(20, 20, 1, 1)); got != (Rect{}) {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
	if got := a.Translate(Pt(1, 2)); got != R(1, 2, 10, 10) {
		t.Errorf("Translate = %v", got)
	}
	if a.String() != "(0,0)+10x10" {
		t.Errorf("String() = %q", a.String())
	}
}
