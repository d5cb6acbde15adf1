// Package atlas holds the sixteen marching-squares patterns stamped onto the
// contour image.
//
// Entry k is the block drawn for a cell whose corner configuration code is k,
// with bit weights 8, 4, 2, 1 for the top-left, top-right, bottom-right and
// bottom-left corners. Every entry has the same StepX x StepY size as a grid
// cell.
//
// Patterns come either from a directory holding 0.ppm through 15.ppm (Load)
// or from the set compiled into the binary (Default).
package atlas

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/isoline/internal/raster"
)

// Size is the number of configuration codes.
const Size = 16

//go:embed contours/*.ppm
var embedded embed.FS

var (
	// ErrMissing is wrapped when an entry file cannot be found.
	ErrMissing = errors.New("missing contour pattern")

	// ErrDimensions is wrapped when an entry is not StepX x StepY.
	ErrDimensions = errors.New("contour pattern has wrong dimensions")
)

// AssetError reports a contour pattern that could not be used.
type AssetError struct {
	Index int    // configuration code of the offending entry
	Path  string // file that was read, if any
	Err   error
}

func (e *AssetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("contour pattern %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("contour pattern %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Atlas maps each configuration code to its pattern block.
type Atlas struct {
	StepX   int
	StepY   int
	entries [Size]*raster.Image
}

// New builds an atlas from explicit entries, checking that all are present
// and sized stepX x stepY.
func New(stepX, stepY int, entries [Size]*raster.Image) (*Atlas, error) {
	if stepX < 1 || stepY < 1 {
		return nil, fmt.Errorf("invalid pattern size %dx%d", stepX, stepY)
	}
	for k, e := range entries {
		if e == nil {
			return nil, &AssetError{Index: k, Err: ErrMissing}
		}
		if e.Width != stepX || e.Height != stepY {
			return nil, &AssetError{
				Index: k,
				Err:   fmt.Errorf("%w: got %dx%d, want %dx%d", ErrDimensions, e.Width, e.Height, stepX, stepY),
			}
		}
	}
	return &Atlas{StepX: stepX, StepY: stepY, entries: entries}, nil
}

// Entry returns the pattern for configuration code k. It panics if k is not
// in [0, Size).
func (a *Atlas) Entry(k int) *raster.Image {
	return a.entries[k]
}

// Load reads <dir>/0.ppm through <dir>/15.ppm. Every file must exist, decode,
// and measure exactly stepX x stepY.
func Load(dir string, stepX, stepY int) (*Atlas, error) {
	var entries [Size]*raster.Image
	for k := 0; k < Size; k++ {
		path := filepath.Join(dir, entryName(k))
		m, err := raster.Decode(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%w: %w", ErrMissing, err)
			}
			return nil, &AssetError{Index: k, Path: path, Err: err}
		}
		if m.Width != stepX || m.Height != stepY {
			return nil, &AssetError{
				Index: k,
				Path:  path,
				Err:   fmt.Errorf("%w: got %dx%d, want %dx%d", ErrDimensions, m.Width, m.Height, stepX, stepY),
			}
		}
		entries[k] = m
	}
	return New(stepX, stepY, entries)
}

// Default returns the built-in pattern set: white cells with black line
// segments joining the edge midpoints. The patterns are drawn at 8x8 and
// resized with nearest-neighbour sampling for other step sizes.
func Default(stepX, stepY int) (*Atlas, error) {
	if stepX < 1 || stepY < 1 {
		return nil, fmt.Errorf("invalid pattern size %dx%d", stepX, stepY)
	}

	var entries [Size]*raster.Image
	for k := 0; k < Size; k++ {
		name := "contours/" + entryName(k)
		f, err := embedded.Open(name)
		if err != nil {
			return nil, &AssetError{Index: k, Path: name, Err: fmt.Errorf("%w: %w", ErrMissing, err)}
		}
		m, err := raster.DecodePPM(f)
		f.Close()
		if err != nil {
			return nil, &AssetError{Index: k, Path: name, Err: err}
		}
		if m.Width != stepX || m.Height != stepY {
			m = resize(m, stepX, stepY)
		}
		entries[k] = m
	}
	return New(stepX, stepY, entries)
}

// Save writes the atlas entries into dir as 0.ppm through 15.ppm, in the
// layout Load expects.
func (a *Atlas) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create atlas directory: %w", err)
	}
	for k, e := range a.entries {
		if err := raster.Encode(e, filepath.Join(dir, entryName(k))); err != nil {
			return err
		}
	}
	return nil
}

func entryName(k int) string {
	return fmt.Sprintf("%d.ppm", k)
}

func resize(m *raster.Image, width, height int) *raster.Image {
	return raster.FromImage(imaging.Resize(m.ToNRGBA(), width, height, imaging.NearestNeighbor))
}
