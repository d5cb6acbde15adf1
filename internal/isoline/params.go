package isoline

import (
	"errors"
	"fmt"

	"github.com/ironsheep/isoline/internal/raster"
)

// MaxPixels caps the target resolution. Larger targets are refused with
// ErrAllocation instead of attempting the allocation.
const MaxPixels = raster.MaxPixels

// MaxWorkers caps the worker count of a single run.
const MaxWorkers = 1024

var (
	// ErrUsage is wrapped by errors caused by invalid caller input.
	ErrUsage = errors.New("invalid usage")

	// ErrAllocation is wrapped when a buffer would exceed MaxPixels. It is the
	// same value as raster.ErrAllocation, so oversized decodes match it too.
	ErrAllocation = raster.ErrAllocation
)

// Params are the run-time constants of a pipeline.
type Params struct {
	TargetWidth  int // RX: width of the rescaled image
	TargetHeight int // RY: height of the rescaled image
	StepX        int // horizontal grid stride in pixels
	StepY        int // vertical grid stride in pixels
	Sigma        int // luminance threshold; pixels brighter than Sigma are outside
}

// DefaultParams returns a 2048x2048 target, an 8 pixel stride and a threshold
// of 200.
func DefaultParams() Params {
	return Params{
		TargetWidth:  2048,
		TargetHeight: 2048,
		StepX:        8,
		StepY:        8,
		Sigma:        200,
	}
}

// Validate checks that the parameters describe a runnable pipeline.
func (p Params) Validate() error {
	if p.TargetWidth < 2 || p.TargetHeight < 2 {
		return fmt.Errorf("%w: target %dx%d must be at least 2x2", ErrUsage, p.TargetWidth, p.TargetHeight)
	}
	if p.StepX < 1 || p.StepY < 1 {
		return fmt.Errorf("%w: step %dx%d must be positive", ErrUsage, p.StepX, p.StepY)
	}
	if p.StepX > p.TargetWidth || p.StepY > p.TargetHeight {
		return fmt.Errorf("%w: step %dx%d exceeds target %dx%d", ErrUsage, p.StepX, p.StepY, p.TargetWidth, p.TargetHeight)
	}
	if p.Sigma < 0 || p.Sigma > 255 {
		return fmt.Errorf("%w: sigma %d outside [0,255]", ErrUsage, p.Sigma)
	}
	if p.TargetWidth > MaxPixels/p.TargetHeight {
		return fmt.Errorf("%w: target %dx%d exceeds %d pixels", ErrAllocation, p.TargetWidth, p.TargetHeight, MaxPixels)
	}
	return nil
}

// GridSize returns P and Q, the number of interior grid rows and columns.
// The grid itself is one larger in each direction.
func (p Params) GridSize() (rows, cols int) {
	return p.TargetHeight / p.StepY, p.TargetWidth / p.StepX
}
