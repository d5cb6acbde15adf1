package isoline

import "github.com/ironsheep/isoline/internal/raster"

// fits reports whether src can be copied into dst without shrinking.
func fits(src, dst *raster.Image) bool {
	return src.Width <= dst.Width && src.Height <= dst.Height
}

// rescale fills worker t's rows of dst from src.
//
// A source that fits inside dst in both dimensions is copied into dst's
// top-left corner by the leader alone; the other workers have nothing to do.
// Otherwise each target pixel (x, y) is the bicubic sample of src at
// (x/(W-1), y/(H-1)).
func rescale(src, dst *raster.Image, t, workers int) {
	if fits(src, dst) {
		if t == leader {
			for y := 0; y < src.Height; y++ {
				copy(dst.Row(y), src.Row(y))
			}
		}
		return
	}

	du := float64(dst.Width - 1)
	dv := float64(dst.Height - 1)

	lo, hi := Span(t, workers, dst.Height)
	for y := lo; y < hi; y++ {
		v := float64(y) / dv
		row := dst.Row(y)
		for x := range row {
			row[x] = raster.SampleBicubic(src, float64(x)/du, v)
		}
	}
}
