package storage

import (
	"sync"
	"time"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/google/uuid"
)

// Visitor is the per-browser state the pages are rendered from.
type Visitor struct {
	ID   string
	Form *contact.Form

	threshold float64
	mu        sync.Mutex
	reveals   map[string]*gallery.RevealSet
	lastSeen  time.Time
}

// Reveals returns the reveal set for a catalog, creating it on first use.
func (v *Visitor) Reveals(catalog string) *gallery.RevealSet {
	v.mu.Lock()
	defer v.mu.Unlock()
	set, ok := v.reveals[catalog]
	if !ok {
		set = gallery.NewRevealSet(v.threshold)
		v.reveals[catalog] = set
	}
	return set
}

// LastSeen returns when the visitor last made a request.
func (v *Visitor) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

// VisitorStore keeps visitors in memory keyed by their cookie id.
type VisitorStore struct {
	visitors  map[string]*Visitor
	mu        sync.RWMutex
	newForm   func() *contact.Form
	threshold float64
	now       func() time.Time
}

// New creates a store. newForm builds the contact form for each new visitor.
func New(threshold float64, newForm func() *contact.Form) *VisitorStore {
	return &VisitorStore{
		visitors:  make(map[string]*Visitor),
		newForm:   newForm,
		threshold: threshold,
		now:       time.Now,
	}
}

func (s *VisitorStore) Get(id string) (*Visitor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visitor, exists := s.visitors[id]
	if exists {
		visitor.touch(s.now())
	}
	return visitor, exists
}

// GetOrCreate returns the visitor for id, or a new visitor with a fresh id
// when id is empty or unknown. created reports whether a cookie must be set.
func (s *VisitorStore) GetOrCreate(id string) (visitor *Visitor, created bool) {
	if id != "" {
		if visitor, ok := s.Get(id); ok {
			return visitor, false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || uuid.Validate(id) != nil {
		id = uuid.NewString()
	}
	if visitor, ok := s.visitors[id]; ok {
		return visitor, false
	}
	visitor = &Visitor{
		ID:        id,
		Form:      s.newForm(),
		threshold: s.threshold,
		reveals:   make(map[string]*gallery.RevealSet),
		lastSeen:  s.now(),
	}
	s.visitors[id] = visitor
	return visitor, true
}

func (s *VisitorStore) GetAll() map[string]*Visitor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Visitor, len(s.visitors))
	for k, v := range s.visitors {
		result[k] = v
	}
	return result
}

// Delete removes a visitor and cancels its pending form reset.
func (s *VisitorStore) Delete(id string) {
	s.mu.Lock()
	visitor, exists := s.visitors[id]
	delete(s.visitors, id)
	s.mu.Unlock()

	if exists {
		visitor.Form.Close()
	}
}

// Sweep deletes visitors idle for longer than maxIdle and returns how many
// were removed.
func (s *VisitorStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, visitor := range s.GetAll() {
		if visitor.LastSeen().Before(cutoff) {
			s.Delete(id)
			removed++
		}
	}
	return removed
}
