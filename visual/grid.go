package visual

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/peterhil/serpent/codon"
)

// CountGrid is a 2D count grid for heat-map rendering. It implements
// plotter.GridXYZ.
type CountGrid struct {
	cols, rows int
	data       []float64
}

// NewCountGrid creates an empty cols by rows grid.
func NewCountGrid(cols, rows int) *CountGrid {
	return &CountGrid{
		cols: cols,
		rows: rows,
		data: make([]float64, cols*rows),
	}
}

// CodonGrid lays the 64 codon counts of an encoded sequence out on an
// 8 by 8 grid: the high three index bits select the row, the low
// three the column. Sentinel codons are left out.
func CodonGrid(codons []byte) *CountGrid {
	g := NewCountGrid(8, 8)
	for _, c := range codons {
		if c >= codon.NCodon {
			continue
		}
		g.Add(int(c%8), int(c/8), 1)
	}
	return g
}

// SymbolGrid counts the symbols of a string on a grid with the given
// number of columns, in byte order from 'A'. Out-of-range symbols are
// left out.
func SymbolGrid(s string, cols, rows int) *CountGrid {
	g := NewCountGrid(cols, rows)
	for i := 0; i < len(s); i++ {
		n := int(s[i]) - 'A'
		if n < 0 || n >= cols*rows {
			continue
		}
		g.Add(n%cols, n/cols, 1)
	}
	return g
}

// Add adds a value to one cell.
func (g *CountGrid) Add(c, r int, v float64) {
	g.data[r*g.cols+c] += v
}

// Sum returns the sum over all cells.
func (g *CountGrid) Sum() (sum float64) {
	for _, v := range g.data {
		sum += v
	}
	return
}

// Dims implements plotter.GridXYZ.
func (g *CountGrid) Dims() (c, r int) { return g.cols, g.rows }

// Z implements plotter.GridXYZ.
func (g *CountGrid) Z(c, r int) float64 { return g.data[r*g.cols+c] }

// X implements plotter.GridXYZ.
func (g *CountGrid) X(c int) float64 { return float64(c) }

// Y implements plotter.GridXYZ.
func (g *CountGrid) Y(r int) float64 { return float64(r) }

// HeatMap saves a heat map of the grid to a file.
func HeatMap(title string, g *CountGrid, path string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	h := plotter.NewHeatMap(g, palette.Heat(12, 1))
	p.Add(h)
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
