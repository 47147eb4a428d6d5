package gallery

import (
	"sort"
	"sync"
)

// DefaultRevealThreshold is the visible fraction of an item's box that
// triggers its entrance animation.
const DefaultRevealThreshold = 0.35

// RevealSet records which items have entered the viewport at least once.
// Ids are only ever added.
type RevealSet struct {
	threshold float64

	mu       sync.RWMutex
	revealed map[int]struct{}
}

// NewRevealSet creates an empty set. A threshold outside (0, 1] falls back
// to DefaultRevealThreshold.
func NewRevealSet(threshold float64) *RevealSet {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultRevealThreshold
	}
	return &RevealSet{
		threshold: threshold,
		revealed:  make(map[int]struct{}),
	}
}

// Threshold returns the visible fraction required to reveal.
func (r *RevealSet) Threshold() float64 {
	return r.threshold
}

// Reveal adds id. It reports whether id was newly added.
func (r *RevealSet) Reveal(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.revealed[id]; ok {
		return false
	}
	r.revealed[id] = struct{}{}
	return true
}

// Observe handles an intersection report for id. The item is revealed when
// ratio reaches the threshold; the returned bool tells the caller it can
// stop observing the element.
func (r *RevealSet) Observe(id int, ratio float64) (revealed bool, done bool) {
	if r.IsRevealed(id) {
		return false, true
	}
	if ratio < r.threshold {
		return false, false
	}
	return r.Reveal(id), true
}

func (r *RevealSet) IsRevealed(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revealed[id]
	return ok
}

// IDs returns the revealed ids in ascending order.
func (r *RevealSet) IDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int, 0, len(r.revealed))
	for id := range r.revealed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
