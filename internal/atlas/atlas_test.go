package atlas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/isoline/internal/raster"
)

// solidEntries returns 16 entries where entry k is filled with grey level k.
func solidEntries(w, h int) [Size]*raster.Image {
	var entries [Size]*raster.Image
	for k := range entries {
		entries[k] = raster.Filled(w, h, raster.RGB{R: uint8(k), G: uint8(k), B: uint8(k)})
	}
	return entries
}

// writeAtlasDir saves solidEntries into a fresh directory and returns it.
func writeAtlasDir(t *testing.T, w, h int) string {
	t.Helper()
	dir := t.TempDir()
	for k, e := range solidEntries(w, h) {
		if err := raster.Encode(e, filepath.Join(dir, entryName(k))); err != nil {
			t.Fatalf("failed to write entry %d: %v", k, err)
		}
	}
	return dir
}

func TestNew(t *testing.T) {
	a, err := New(2, 3, solidEntries(2, 3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for k := 0; k < Size; k++ {
		if got := a.Entry(k).Pixel(0, 0).R; got != uint8(k) {
			t.Errorf("Entry(%d): got grey %d", k, got)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	missing := solidEntries(2, 2)
	missing[7] = nil
	wrongSize := solidEntries(2, 2)
	wrongSize[15] = raster.New(3, 2)

	tests := []struct {
		name    string
		entries [Size]*raster.Image
		index   int
		target  error
	}{
		{"missing entry", missing, 7, ErrMissing},
		{"wrong size", wrongSize, 15, ErrDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(2, 2, tt.entries)
			var assetErr *AssetError
			if !errors.As(err, &assetErr) {
				t.Fatalf("expected *AssetError, got %v", err)
			}
			if assetErr.Index != tt.index {
				t.Errorf("Index: got %d, want %d", assetErr.Index, tt.index)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("error should wrap %v", tt.target)
			}
		})
	}

	if _, err := New(0, 2, solidEntries(0, 2)); err == nil {
		t.Error("New should reject a zero step")
	}
}

func TestLoad(t *testing.T) {
	dir := writeAtlasDir(t, 4, 4)

	a, err := Load(dir, 4, 4)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.StepX != 4 || a.StepY != 4 {
		t.Errorf("step: got %dx%d, want 4x4", a.StepX, a.StepY)
	}
	if got := a.Entry(12).Pixel(3, 3).G; got != 12 {
		t.Errorf("Entry(12): got grey %d, want 12", got)
	}
}

func TestLoad_MissingEntry(t *testing.T) {
	dir := writeAtlasDir(t, 4, 4)
	if err := os.Remove(filepath.Join(dir, "9.ppm")); err != nil {
		t.Fatalf("failed to remove entry: %v", err)
	}

	_, err := Load(dir, 4, 4)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("expected *AssetError, got %v", err)
	}
	if assetErr.Index != 9 {
		t.Errorf("Index: got %d, want 9", assetErr.Index)
	}
	if !errors.Is(err, ErrMissing) {
		t.Error("error should wrap ErrMissing")
	}
}

func TestLoad_InconsistentDimensions(t *testing.T) {
	dir := writeAtlasDir(t, 4, 4)

	_, err := Load(dir, 8, 8)
	if !errors.Is(err, ErrDimensions) {
		t.Fatalf("expected ErrDimensions, got %v", err)
	}

	if err := raster.Encode(raster.New(4, 5), filepath.Join(dir, "3.ppm")); err != nil {
		t.Fatalf("failed to overwrite entry: %v", err)
	}
	_, err = Load(dir, 4, 4)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) || assetErr.Index != 3 {
		t.Fatalf("expected *AssetError for entry 3, got %v", err)
	}
}

func TestLoad_CorruptEntry(t *testing.T) {
	dir := writeAtlasDir(t, 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "0.ppm"), []byte("P6 garbage"), 0644); err != nil {
		t.Fatalf("failed to corrupt entry: %v", err)
	}

	_, err := Load(dir, 4, 4)
	var assetErr *AssetError
	if !errors.As(err, &assetErr) || assetErr.Index != 0 {
		t.Fatalf("expected *AssetError for entry 0, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	a, err := Default(8, 8)
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	white := raster.RGB{R: 255, G: 255, B: 255}
	for _, k := range []int{0, 15} {
		for _, c := range a.Entry(k).Pix {
			if c != white {
				t.Fatalf("Entry(%d) should be blank, found %v", k, c)
			}
		}
	}

	for k := 1; k < 15; k++ {
		dark := 0
		for _, c := range a.Entry(k).Pix {
			if c.Luminance() < 128 {
				dark++
			}
		}
		if dark == 0 {
			t.Errorf("Entry(%d) should contain a contour segment", k)
		}
	}

	// Complementary codes describe the same boundary.
	for k := 1; k < 15; k++ {
		if k == 5 || k == 10 {
			continue
		}
		if !a.Entry(k).Equal(a.Entry(15 - k)) {
			t.Errorf("Entry(%d) and Entry(%d) should match", k, 15-k)
		}
	}
}

func TestDefault_Resized(t *testing.T) {
	a, err := Default(4, 2)
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	for k := 0; k < Size; k++ {
		e := a.Entry(k)
		if e.Width != 4 || e.Height != 2 {
			t.Fatalf("Entry(%d): got %dx%d, want 4x2", k, e.Width, e.Height)
		}
	}

	if _, err := Default(0, 8); err == nil {
		t.Error("Default should reject a zero step")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	a, err := Default(8, 8)
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "patterns")
	if err := a.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	b, err := Load(dir, 8, 8)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for k := 0; k < Size; k++ {
		if !a.Entry(k).Equal(b.Entry(k)) {
			t.Errorf("Entry(%d) changed after Save/Load", k)
		}
	}
}

func TestAssetError_Message(t *testing.T) {
	err := &AssetError{Index: 4, Path: "/x/4.ppm", Err: ErrMissing}
	if got, want := err.Error(), "contour pattern 4 (/x/4.ppm): missing contour pattern"; got != want {
		t.Errorf("Error(): got %q, want %q", got, want)
	}
}
