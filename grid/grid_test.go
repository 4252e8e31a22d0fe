package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/piv"
)

func TestGenerate_CountsAndBounds(t *testing.T) {
	image, window := piv.Sz(100, 100), piv.Sz(10, 10)
	g, err := Generate(image, window, Offset(piv.Sz(5, 5)))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := piv.Sz(19, 19); g.Counts != want {
		t.Errorf("Counts = %v, want %v", g.Counts, want)
	}
	if g.Len() != 19*19 {
		t.Errorf("Len() = %d, want %d", g.Len(), 19*19)
	}
	bounds := piv.Rect{Size: image}
	for i, r := range g.Rects {
		if r.Size != window {
			t.Fatalf("Rects[%d].Size = %v, want %v", i, r.Size, window)
		}
		if !bounds.Contains(r) {
			t.Fatalf("Rects[%d] = %v leaves the image", i, r)
		}
	}
	// Neighbours are exactly one offset apart.
	for row := range g.Counts.Height {
		for col := 1; col < g.Counts.Width; col++ {
			a, b := g.Rects[g.Index(col-1, row)], g.Rects[g.Index(col, row)]
			if d := b.Origin.Sub(a.Origin); d != piv.Pt(5, 0) {
				t.Fatalf("horizontal neighbours %v and %v are %v apart", a, b, d)
			}
		}
	}
}

func TestGenerate_CentersTheLattice(t *testing.T) {
	tests := []struct {
		name   string
		image  piv.Size
		window piv.Size
		offset piv.Size
		counts piv.Size
		start  piv.Point[int]
	}{
		{"exact fit", piv.Sz(100, 100), piv.Sz(10, 10), piv.Sz(5, 5), piv.Sz(19, 19), piv.Pt(0, 0)},
		{"margin split", piv.Sz(64, 40), piv.Sz(16, 16), piv.Sz(16, 16), piv.Sz(4, 2), piv.Pt(0, 4)},
		{"odd margin", piv.Sz(37, 37), piv.Sz(8, 8), piv.Sz(8, 8), piv.Sz(4, 4), piv.Pt(2, 2)},
		{"single window", piv.Sz(20, 30), piv.Sz(20, 30), piv.Sz(1, 1), piv.Sz(1, 1), piv.Pt(0, 0)},
		{"anisotropic", piv.Sz(128, 64), piv.Sz(32, 16), piv.Sz(16, 8), piv.Sz(7, 7), piv.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.image, tt.window, Offset(tt.offset))
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if g.Counts != tt.counts {
				t.Errorf("Counts = %v, want %v", g.Counts, tt.counts)
			}
			if g.Start != tt.start {
				t.Errorf("Start = %v, want %v", g.Start, tt.start)
			}
			if g.Rects[0].Origin != tt.start {
				t.Errorf("first rect origin = %v, want %v", g.Rects[0].Origin, tt.start)
			}
		})
	}
}

func TestGenerate_RowMajorOrder(t *testing.T) {
	g, err := Generate(piv.Sz(30, 20), piv.Sz(10, 10), Offset(piv.Sz(10, 10)))
	if err != nil {
		t.Fatal(err)
	}
	want := []piv.Rect{
		piv.R(0, 0, 10, 10), piv.R(10, 0, 10, 10), piv.R(20, 0, 10, 10),
		piv.R(0, 10, 10, 10), piv.R(10, 10, 10, 10), piv.R(20, 10, 10, 10),
	}
	if diff := cmp.Diff(want, g.Rects); diff != "" {
		t.Errorf("Rects mismatch (-want +got):\n%s", diff)
	}
	for i := range g.Rects {
		col, row := g.Cell(i)
		if g.Index(col, row) != i {
			t.Errorf("Index(Cell(%d)) = %d", i, g.Index(col, row))
		}
	}
	if got := g.Center(4); got != (piv.Point[float64]{X: 15, Y: 15}) {
		t.Errorf("Center(4) = %v, want (15,15)", got)
	}
}

func TestGenerate_Overlap(t *testing.T) {
	tests := []struct {
		fraction float64
		window   piv.Size
		offset   piv.Size
	}{
		{0.5, piv.Sz(10, 10), piv.Sz(5, 5)},
		{0.5, piv.Sz(32, 16), piv.Sz(16, 8)},
		{1, piv.Sz(16, 16), piv.Sz(16, 16)},
		{0.25, piv.Sz(10, 10), piv.Sz(2, 2)},
	}

	for _, tt := range tests {
		g, err := Generate(piv.Sz(100, 100), tt.window, Overlap(tt.fraction))
		if err != nil {
			t.Fatalf("Overlap(%v) error = %v", tt.fraction, err)
		}
		if g.Offset != tt.offset {
			t.Errorf("Overlap(%v) on %v: Offset = %v, want %v", tt.fraction, tt.window, g.Offset, tt.offset)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		image   piv.Size
		window  piv.Size
		spacing Spacing
		wantErr error
	}{
		{"empty image", piv.Sz(0, 100), piv.Sz(10, 10), Overlap(0.5), ErrEmptyImage},
		{"empty window", piv.Sz(100, 100), piv.Sz(10, 0), Overlap(0.5), ErrEmptyWindow},
		{"overlap above one", piv.Sz(100, 100), piv.Sz(10, 10), Overlap(1.5), ErrOverlapRange},
		{"overlap negative", piv.Sz(100, 100), piv.Sz(10, 10), Overlap(-0.1), ErrOverlapRange},
		{"overlap NaN", piv.Sz(100, 100), piv.Sz(10, 10), Overlap(math.NaN()), ErrOverlapRange},
		{"overlap zero", piv.Sz(100, 100), piv.Sz(10, 10), Overlap(0), ErrZeroOffset},
		{"overlap rounds to zero", piv.Sz(100, 100), piv.Sz(10, 3), Overlap(0.3), ErrZeroOffset},
		{"explicit zero offset", piv.Sz(100, 100), piv.Sz(10, 10), Offset(piv.Sz(5, 0)), ErrZeroOffset},
		{"negative offset", piv.Sz(100, 100), piv.Sz(10, 10), Offset(piv.Sz(-5, 5)), ErrZeroOffset},
		{"window too wide", piv.Sz(100, 100), piv.Sz(101, 10), Overlap(0.5), ErrWindowTooLarge},
		{"window too tall", piv.Sz(100, 100), piv.Sz(10, 200), Overlap(0.5), ErrWindowTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.image, tt.window, tt.spacing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if g != nil {
				t.Error("Generate() returned a grid alongside an error")
			}
		})
	}
}
