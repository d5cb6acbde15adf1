package isoline

import "testing"

func TestSpan_Partition(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for workers := 1; workers <= 45; workers++ {
			owner := make([]int, n)
			for i := range owner {
				owner[i] = -1
			}
			limit := (n + workers - 1) / workers

			prevHi := 0
			for w := 0; w < workers; w++ {
				lo, hi := Span(w, workers, n)
				if lo != prevHi {
					t.Fatalf("n=%d workers=%d: worker %d starts at %d, previous ended at %d", n, workers, w, lo, prevHi)
				}
				if hi < lo {
					t.Fatalf("n=%d workers=%d: worker %d has negative range [%d,%d)", n, workers, w, lo, hi)
				}
				if hi-lo > limit {
					t.Fatalf("n=%d workers=%d: worker %d range size %d exceeds ceil %d", n, workers, w, hi-lo, limit)
				}
				for i := lo; i < hi; i++ {
					if owner[i] != -1 {
						t.Fatalf("n=%d workers=%d: index %d owned by %d and %d", n, workers, i, owner[i], w)
					}
					owner[i] = w
				}
				prevHi = hi
			}

			if prevHi != n {
				t.Fatalf("n=%d workers=%d: ranges end at %d", n, workers, prevHi)
			}
			for i, w := range owner {
				if w == -1 {
					t.Fatalf("n=%d workers=%d: index %d unowned", n, workers, i)
				}
			}
		}
	}
}

func TestSpan_Examples(t *testing.T) {
	tests := []struct {
		t, workers, n int
		lo, hi        int
	}{
		{0, 1, 10, 0, 10},
		{0, 3, 10, 0, 3},
		{1, 3, 10, 3, 6},
		{2, 3, 10, 6, 10},
		{0, 4, 2, 0, 0},
		{1, 4, 2, 0, 1},
		{3, 4, 2, 1, 2},
	}
	for _, tt := range tests {
		lo, hi := Span(tt.t, tt.workers, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("Span(%d,%d,%d): got [%d,%d), want [%d,%d)", tt.t, tt.workers, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestSpan_LastWorkerEndsAtN(t *testing.T) {
	// sampleGrid relies on the last worker being the only one whose range
	// ends at n.
	for n := 1; n <= 20; n++ {
		for workers := 1; workers <= 25; workers++ {
			for w := 0; w < workers; w++ {
				_, hi := Span(w, workers, n)
				if (hi == n) != (w == workers-1) {
					t.Fatalf("n=%d workers=%d: worker %d ends at %d", n, workers, w, hi)
				}
			}
		}
	}
}
