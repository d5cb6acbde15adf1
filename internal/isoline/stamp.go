package isoline

import (
	"github.com/ironsheep/isoline/internal/atlas"
	"github.com/ironsheep/isoline/internal/raster"
)

// stamp overwrites worker t's band of cells in img with the atlas pattern
// selected by each cell's configuration code.
func stamp(img *raster.Image, g *Grid, at *atlas.Atlas, p Params, t, workers int) {
	lo, hi := Span(t, workers, g.Rows)
	for i := lo; i < hi; i++ {
		for j := 0; j < g.Cols; j++ {
			blit(img, at.Entry(g.Code(i, j)), j*p.StepX, i*p.StepY)
		}
	}
}

// blit copies block into dst with its top-left corner at (x0, y0).
func blit(dst, block *raster.Image, x0, y0 int) {
	for dy := 0; dy < block.Height; dy++ {
		copy(dst.Row(y0 + dy)[x0:x0+block.Width], block.Row(dy))
	}
}
