package raster

import (
	"errors"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// MaxPixels caps the size of any image this package allocates from untrusted
// dimensions. Larger images are refused with ErrAllocation.
const MaxPixels = 1 << 28

// ErrAllocation is wrapped when a buffer would exceed MaxPixels.
var ErrAllocation = errors.New("allocation too large")

// RGB is a single pixel with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Luminance returns the unweighted mean of the three channels, truncated.
func (c RGB) Luminance() uint8 {
	return uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
}

// Image is a row-major buffer of RGB pixels.
//
// The invariant len(Pix) == Width*Height holds for every Image built with New
// or FromImage. Callers that assemble an Image by hand must keep it.
type Image struct {
	Width  int
	Height int
	Pix    []RGB
}

// New allocates a zeroed (black) image of the given size.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// Filled returns a new image with every pixel set to c.
func Filled(width, height int, c RGB) *Image {
	m := New(width, height)
	for i := range m.Pix {
		m.Pix[i] = c
	}
	return m
}

// Pixel returns the pixel at (x, y). It panics if the point is outside the image.
func (m *Image) Pixel(x, y int) RGB {
	return m.Pix[m.offset(x, y)]
}

// SetPixel sets the pixel at (x, y). It panics if the point is outside the image.
func (m *Image) SetPixel(x, y int, c RGB) {
	m.Pix[m.offset(x, y)] = c
}

func (m *Image) offset(x, y int) int {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic("raster: pixel out of range")
	}
	return y*m.Width + x
}

// Row returns the pixels of row y as a sub-slice of Pix.
func (m *Image) Row(y int) []RGB {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	out := &Image{Width: m.Width, Height: m.Height, Pix: make([]RGB, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(o *Image) bool {
	if m.Width != o.Width || m.Height != o.Height || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i := range m.Pix {
		if m.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts any image.Image into an Image, dropping alpha.
func FromImage(img image.Image) *Image {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		src := nrgba.Pix[y*nrgba.Stride:]
		row := m.Row(y)
		for x := range row {
			i := x * 4
			row[x] = RGB{R: src[i], G: src[i+1], B: src[i+2]}
		}
	}
	return m
}

// ToNRGBA returns an opaque *image.NRGBA copy of m.
func (m *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x, c := range m.Row(y) {
			out.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out
}
