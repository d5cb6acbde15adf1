// Package isoline extracts contour lines from an image with a fixed pool of
// parallel workers and draws them onto a rescaled copy of the image.
//
// # Pipeline
//
// Every worker runs the same ordered list of phases, meeting at a barrier
// after each one:
//
//  1. rescale: the source is resampled to the target resolution with bicubic
//     sampling, or copied verbatim when it already fits inside the target
//  2. sample-grid: every StepX/StepY-th pixel is thresholded into a binary
//     grid, plus a closing row and column taken from the image's last pixels
//  3. stamp-contours: each grid cell's 4-bit corner code selects an atlas
//     pattern that overwrites the cell's pixel block
//  4. emit: worker 0 alone hands the finished image to the caller's Emitter
//
// # Partitioning
//
// Work is split statically. Worker t of T owns the half-open range
// [t*N/T, (t+1)*N/T) of whatever is being iterated (target rows, grid rows or
// grid columns), see Span. The ranges never overlap, so no locks are taken in
// any phase; the barrier alone orders one phase's writes before the next
// phase's reads.
//
// # Grid Orientation
//
// Grid row i corresponds to image row i*StepY and grid column j to image
// column j*StepX. With P = TargetHeight/StepY and Q = TargetWidth/StepX the
// grid holds (P+1) x (Q+1) cells; row P and column Q close the grid using the
// image's bottom row and rightmost column.
//
// # Failure
//
// Parameter and worker-count problems are reported before any worker starts.
// Once the workers are running nothing is recoverable: an internal fault
// panics and takes the process down rather than leaving the others blocked
// at a barrier.
package isoline
