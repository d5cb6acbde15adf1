package raster

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL is a colour in hue/saturation/lightness form.
type HSL struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorInfo describes one pixel in the forms reported to clients.
type ColorInfo struct {
	Hex       string `json:"hex"`       // "#rrggbb"
	RGB       RGB    `json:"rgb"`       // 8-bit components
	HSL       HSL    `json:"hsl"`       // rounded HSL
	Luminance uint8  `json:"luminance"` // unweighted channel mean, as used for thresholding
}

// Describe converts c into its reported forms.
func Describe(c RGB) ColorInfo {
	cc := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cc.Hsl()
	return ColorInfo{
		Hex: cc.Hex(),
		RGB: c,
		HSL: HSL{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Luminance: c.Luminance(),
	}
}
