package isoline

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ironsheep/isoline/internal/atlas"
	"github.com/ironsheep/isoline/internal/raster"
)

// leader is the ordinal of the worker that runs leader-only work.
const leader = 0

var debug atomic.Bool

// SetDebug turns per-phase timing logs on or off.
func SetDebug(on bool) { debug.Store(on) }

func debugf(format string, args ...interface{}) {
	if debug.Load() {
		log.Printf(format, args...)
	}
}

// Emitter receives the finished contour image. It runs on the leader worker
// after every other worker has finished stamping.
type Emitter func(*raster.Image) error

// Pipeline renders contour images with fixed parameters and patterns. It holds
// no per-run state and may be used for several runs, concurrently or not.
type Pipeline struct {
	params Params
	atlas  *atlas.Atlas
}

// Result is what a run leaves behind once every worker has joined.
type Result struct {
	Image   *raster.Image // the rescaled image with contours stamped in
	Grid    *Grid         // the binary grid the contours were derived from
	Elapsed time.Duration
}

// New checks params against each other and against the atlas pattern size.
func New(params Params, at *atlas.Atlas) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if at == nil {
		return nil, fmt.Errorf("%w: nil atlas", ErrUsage)
	}
	if at.StepX != params.StepX || at.StepY != params.StepY {
		return nil, fmt.Errorf("%w: atlas patterns are %dx%d, grid step is %dx%d",
			ErrUsage, at.StepX, at.StepY, params.StepX, params.StepY)
	}
	return &Pipeline{params: params, atlas: at}, nil
}

// Params returns the pipeline's parameters.
func (p *Pipeline) Params() Params { return p.params }

// run is the state shared by the workers of a single Run call.
type run struct {
	params  Params
	atlas   *atlas.Atlas
	workers int
	src     *raster.Image
	dst     *raster.Image
	grid    *Grid
	emit    Emitter
	emitErr error // written by the leader, read after join
}

// phase is one step of the pipeline. Every worker runs it with its ordinal
// unless leaderOnly is set.
type phase struct {
	name       string
	leaderOnly bool
	do         func(r *run, t int)
}

// phases run in order with a barrier between consecutive entries. Each phase
// reads only what the phases before it wrote.
var phases = []phase{
	{
		name: "rescale", // src -> dst
		do: func(r *run, t int) {
			rescale(r.src, r.dst, t, r.workers)
		},
	},
	{
		name: "sample-grid", // dst -> grid
		do: func(r *run, t int) {
			sampleGrid(r.dst, r.grid, r.params, t, r.workers)
		},
	},
	{
		name: "stamp-contours", // grid, atlas -> dst
		do: func(r *run, t int) {
			stamp(r.dst, r.grid, r.atlas, r.params, t, r.workers)
		},
	},
	{
		name:       "emit", // dst -> emitter
		leaderOnly: true,
		do: func(r *run, t int) {
			if r.emit != nil {
				r.emitErr = r.emit(r.dst)
			}
		},
	},
}

// Run renders src with exactly workers goroutines and returns once all of them
// have exited. workers must be in [1, MaxWorkers]. emit may be nil.
//
// The source is never modified. An error from emit is returned alongside the
// completed result.
func (p *Pipeline) Run(src *raster.Image, workers int, emit Emitter) (*Result, error) {
	if workers < 1 || workers > MaxWorkers {
		return nil, fmt.Errorf("%w: worker count %d outside [1,%d]", ErrUsage, workers, MaxWorkers)
	}
	if src == nil || src.Width < 1 || src.Height < 1 || len(src.Pix) != src.Width*src.Height {
		return nil, fmt.Errorf("%w: empty or inconsistent source image", ErrUsage)
	}

	rows, cols := p.params.GridSize()
	r := &run{
		params:  p.params,
		atlas:   p.atlas,
		workers: workers,
		src:     src,
		dst:     raster.New(p.params.TargetWidth, p.params.TargetHeight),
		grid:    NewGrid(rows, cols),
		emit:    emit,
	}

	debugf("isoline: %dx%d -> %dx%d, grid %dx%d, %d workers",
		src.Width, src.Height, r.dst.Width, r.dst.Height, rows+1, cols+1, workers)

	start := time.Now()
	barrier := NewBarrier(workers)
	var wg sync.WaitGroup
	for t := 0; t < workers; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			r.work(t, barrier)
		}(t)
	}
	wg.Wait()

	res := &Result{Image: r.dst, Grid: r.grid, Elapsed: time.Since(start)}
	if r.emitErr != nil {
		return res, fmt.Errorf("failed to emit contour image: %w", r.emitErr)
	}
	return res, nil
}

// work drives worker t through every phase.
func (r *run) work(t int, b *Barrier) {
	for k, ph := range phases {
		if !ph.leaderOnly || t == leader {
			start := time.Now()
			ph.do(r, t)
			debugf("isoline: worker %d finished %s in %v", t, ph.name, time.Since(start))
		}
		if k < len(phases)-1 {
			b.Wait()
		}
	}
}
