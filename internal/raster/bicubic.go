package raster

import (
	"fmt"
	"math"
)

// SampleBicubic returns the colour of img at the normalized coordinate (u, v),
// where (0,0) is the top-left pixel and (1,1) the bottom-right one.
//
// The sample point is x = u*Width - 0.5, y = v*Height - 0.5. Each channel is
// interpolated with a cubic Hermite spline, first along X over four rows of the
// 4x4 neighbourhood and then along Y over the four row results. Neighbours
// outside the image are clamped to the nearest edge pixel, and the result is
// clamped to [0, 255] and truncated.
//
// u and v must lie in [0, 1]. Anything else is a caller bug and panics.
func SampleBicubic(img *Image, u, v float64) RGB {
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		panic(fmt.Sprintf("raster: bicubic sample at (%g, %g) outside [0,1]", u, v))
	}

	x := u*float64(img.Width) - 0.5
	xi := int(x)
	xf := x - math.Floor(x)

	y := v*float64(img.Height) - 0.5
	yi := int(y)
	yf := y - math.Floor(y)

	var cols [4][3]float64
	for b := -1; b <= 2; b++ {
		var row [4]RGB
		for a := -1; a <= 2; a++ {
			row[a+1] = img.clampedPixel(xi+a, yi+b)
		}
		cols[b+1][0] = cubicHermite(float64(row[0].R), float64(row[1].R), float64(row[2].R), float64(row[3].R), xf)
		cols[b+1][1] = cubicHermite(float64(row[0].G), float64(row[1].G), float64(row[2].G), float64(row[3].G), xf)
		cols[b+1][2] = cubicHermite(float64(row[0].B), float64(row[1].B), float64(row[2].B), float64(row[3].B), xf)
	}

	var out [3]uint8
	for c := 0; c < 3; c++ {
		out[c] = clampChannel(cubicHermite(cols[0][c], cols[1][c], cols[2][c], cols[3][c], yf))
	}
	return RGB{R: out[0], G: out[1], B: out[2]}
}

func (m *Image) clampedPixel(x, y int) RGB {
	x = clampInt(x, 0, m.Width-1)
	y = clampInt(y, 0, m.Height-1)
	return m.Pix[y*m.Width+x]
}

// cubicHermite interpolates between b and c at t in [0,1), using a and d as
// the outer control points.
func cubicHermite(a, b, c, d, t float64) float64 {
	ca := -a/2 + 3*b/2 - 3*c/2 + d/2
	cb := a - 5*b/2 + 2*c - d/2
	cc := -a/2 + c/2
	cd := b
	return ca*t*t*t + cb*t*t + cc*t + cd
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampInt constrains val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
