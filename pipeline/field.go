package pipeline

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/grid"
)

// Vector is the displacement estimate for one interrogation window.
type Vector struct {
	// Position is the window center in image coordinates.
	Position piv.Point[float64]

	// Displacement is how far the pattern moved from the first frame to
	// the second, in pixels.
	Displacement piv.Point[float64]

	// Value is the correlation peak height.
	Value float64

	// Ratio is the primary-to-secondary peak ratio.
	Ratio float64

	// Valid is false when no positive peak was found or Ratio is below
	// the analyzer's threshold.
	Valid bool
}

// Field is the result of one pass: a vector per grid window, in grid order.
type Field struct {
	Grid    *grid.Grid
	Vectors []Vector
}

// At returns the vector of the window at (col, row).
func (f *Field) At(col, row int) Vector {
	return f.Vectors[f.Grid.Index(col, row)]
}

// ValidCount returns the number of valid vectors.
func (f *Field) ValidCount() int {
	n := 0
	for _, v := range f.Vectors {
		if v.Valid {
			n++
		}
	}
	return n
}

// Mean returns the mean displacement over valid vectors, or the zero point
// when there are none.
func (f *Field) Mean() piv.Point[float64] {
	var sum piv.Point[float64]
	n := 0
	for _, v := range f.Vectors {
		if v.Valid {
			sum = sum.Add(v.Displacement)
			n++
		}
	}
	if n == 0 {
		return sum
	}
	return sum.Scale(1 / float64(n))
}

var csvHeader = []string{"x", "y", "dx", "dy", "peak", "ratio", "valid"}

// WriteCSV writes one row per vector, preceded by a header row.
func (f *Field) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
	for _, v := range f.Vectors {
		rec := []string{
			ff(v.Position.X), ff(v.Position.Y),
			ff(v.Displacement.X), ff(v.Displacement.Y),
			ff(v.Value), ff(v.Ratio),
			strconv.FormatBool(v.Valid),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
