package isoline

import "github.com/ironsheep/isoline/internal/raster"

// Grid is the binary occupancy grid: 1 marks a dark ("inside") sample and 0 a
// bright ("outside") one. It has Rows+1 rows and Cols+1 columns stored in a
// single row-major slice.
type Grid struct {
	Rows  int // P: interior rows
	Cols  int // Q: interior columns
	cells []uint8
}

// NewGrid allocates a zeroed (rows+1) x (cols+1) grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]uint8, (rows+1)*(cols+1)),
	}
}

// At returns cell (i, j) for 0 <= i <= Rows, 0 <= j <= Cols.
func (g *Grid) At(i, j int) uint8 {
	return g.cells[i*(g.Cols+1)+j]
}

// Set stores v, which must be 0 or 1, in cell (i, j).
func (g *Grid) Set(i, j int, v uint8) {
	g.cells[i*(g.Cols+1)+j] = v
}

// Code returns the marching-squares configuration of the cell whose top-left
// corner is (i, j): 8*TL + 4*TR + 2*BR + 1*BL.
func (g *Grid) Code(i, j int) int {
	return int(8*g.At(i, j) + 4*g.At(i, j+1) + 2*g.At(i+1, j+1) + g.At(i+1, j))
}

// Histogram counts how many interior cells have each configuration code.
func (g *Grid) Histogram() [16]int {
	var h [16]int
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			h[g.Code(i, j)]++
		}
	}
	return h
}

// Inside counts the grid points classified as inside, closing row and column
// included.
func (g *Grid) Inside() int {
	n := 0
	for _, v := range g.cells {
		n += int(v)
	}
	return n
}

// classify maps a pixel to 0 when its luminance is above sigma, else 1.
func classify(c raster.RGB, sigma int) uint8 {
	if int(c.Luminance()) > sigma {
		return 0
	}
	return 1
}

// sampleGrid fills worker t's share of g from img.
//
// Interior cells and the closing column are split by grid row, the closing row
// by grid column. The corner cell (Rows, Cols) belongs to the last worker,
// the only one whose row range ends at Rows.
func sampleGrid(img *raster.Image, g *Grid, p Params, t, workers int) {
	lastX, lastY := img.Width-1, img.Height-1

	lo, hi := Span(t, workers, g.Rows)
	for i := lo; i < hi; i++ {
		y := i * p.StepY
		row := img.Row(y)
		for j := 0; j < g.Cols; j++ {
			g.Set(i, j, classify(row[j*p.StepX], p.Sigma))
		}
		g.Set(i, g.Cols, classify(row[lastX], p.Sigma))
	}

	lo, hi = Span(t, workers, g.Cols)
	bottom := img.Row(lastY)
	for j := lo; j < hi; j++ {
		g.Set(g.Rows, j, classify(bottom[j*p.StepX], p.Sigma))
	}

	if t == workers-1 {
		g.Set(g.Rows, g.Cols, classify(bottom[lastX], p.Sigma))
	}
}
