package isoline

// Span returns the half-open range [lo, hi) of n items owned by worker t out
// of workers. Over t = 0..workers-1 the ranges cover [0, n) exactly once and
// none is longer than ceil(n/workers). When workers > n some ranges are empty.
func Span(t, workers, n int) (lo, hi int) {
	return t * n / workers, (t + 1) * n / workers
}
