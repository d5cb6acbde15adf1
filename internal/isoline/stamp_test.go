package isoline

import (
	"testing"

	"github.com/ironsheep/isoline/internal/atlas"
	"github.com/ironsheep/isoline/internal/raster"
)

// markerAtlas builds an atlas whose entry k has pixel (x, y) = {k, x, y}, so a
// stamped block reveals both which entry was used and how it was placed.
func markerAtlas(t *testing.T, stepX, stepY int) *atlas.Atlas {
	t.Helper()
	var entries [atlas.Size]*raster.Image
	for k := range entries {
		e := raster.New(stepX, stepY)
		for y := 0; y < stepY; y++ {
			for x := 0; x < stepX; x++ {
				e.SetPixel(x, y, raster.RGB{R: uint8(k), G: uint8(x), B: uint8(y)})
			}
		}
		entries[k] = e
	}
	a, err := atlas.New(stepX, stepY, entries)
	if err != nil {
		t.Fatalf("atlas.New failed: %v", err)
	}
	return a
}

func TestStamp_SelectsEntryByCode(t *testing.T) {
	p := Params{TargetWidth: 6, TargetHeight: 4, StepX: 3, StepY: 2, Sigma: 200}
	at := markerAtlas(t, 3, 2)

	// 2x2 interior cells, 3x3 grid points.
	g := NewGrid(p.GridSize())
	g.Set(0, 0, 1)
	g.Set(2, 2, 1)
	g.Set(1, 1, 1)

	img := raster.Filled(6, 4, white)
	stamp(img, g, at, p, 0, 1)

	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			code := g.Code(i, j)
			for dy := 0; dy < p.StepY; dy++ {
				for dx := 0; dx < p.StepX; dx++ {
					got := img.Pixel(j*p.StepX+dx, i*p.StepY+dy)
					want := raster.RGB{R: uint8(code), G: uint8(dx), B: uint8(dy)}
					if got != want {
						t.Fatalf("cell (%d,%d) pixel (%d,%d): got %v, want %v", i, j, dx, dy, got, want)
					}
				}
			}
		}
	}

	// Hand-computed codes for this grid.
	want := [2][2]int{{8 + 2, 1}, {4, 8 + 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := g.Code(i, j); got != want[i][j] {
				t.Errorf("Code(%d,%d): got %d, want %d", i, j, got, want[i][j])
			}
		}
	}
}

func TestStamp_ZeroAndFifteenAreDistinct(t *testing.T) {
	p := Params{TargetWidth: 2, TargetHeight: 2, StepX: 2, StepY: 2, Sigma: 200}
	at := markerAtlas(t, 2, 2)

	outside := NewGrid(p.GridSize())
	img := raster.New(2, 2)
	stamp(img, outside, at, p, 0, 1)
	if got := img.Pixel(0, 0).R; got != 0 {
		t.Errorf("all-outside cell: got entry %d, want 0", got)
	}

	inside := NewGrid(p.GridSize())
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			inside.Set(i, j, 1)
		}
	}
	stamp(img, inside, at, p, 0, 1)
	if got := img.Pixel(0, 0).R; got != 15 {
		t.Errorf("all-inside cell: got entry %d, want 15", got)
	}
}

func TestStamp_LeavesRemainderUntouched(t *testing.T) {
	// 7x5 target with step 3x2 leaves a 1-pixel column and row uncovered.
	p := Params{TargetWidth: 7, TargetHeight: 5, StepX: 3, StepY: 2, Sigma: 200}
	at := markerAtlas(t, 3, 2)
	g := NewGrid(p.GridSize())

	img := raster.Filled(7, 5, white)
	for w := 0; w < 3; w++ {
		stamp(img, g, at, p, w, 3)
	}

	for y := 0; y < 5; y++ {
		if img.Pixel(6, y) != white {
			t.Errorf("pixel (6,%d) outside the cell area was overwritten", y)
		}
	}
	for x := 0; x < 7; x++ {
		if img.Pixel(x, 4) != white {
			t.Errorf("pixel (%d,4) outside the cell area was overwritten", x)
		}
	}
	if img.Pixel(5, 3) == white {
		t.Error("last cell was not stamped")
	}
}
