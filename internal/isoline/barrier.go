package isoline

import "sync"

// Barrier is a reusable rendezvous for a fixed number of goroutines.
//
// Wait blocks until all parties have called it, then releases them together.
// A generation counter lets the same Barrier separate any number of
// consecutive phases without a fast goroutine slipping into the next round.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
}

// NewBarrier returns a barrier for parties goroutines. It panics if parties
// is less than one.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("isoline: barrier needs at least one party")
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until every party has arrived.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
