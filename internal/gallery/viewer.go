package gallery

import (
	"errors"
	"fmt"

	"github.com/balqony-sitraalu/studio/internal/models"
)

var (
	// ErrNotVisible is returned when opening an item outside the visible set.
	ErrNotVisible = errors.New("item is not in the visible set")
	// ErrClosed is returned when navigating while no item is open.
	ErrClosed = errors.New("viewer is closed")
)

// CloseTrigger names what dismissed the detail viewer.
type CloseTrigger string

const (
	CloseButton CloseTrigger = "button"
	Escape      CloseTrigger = "escape"
	Backdrop    CloseTrigger = "backdrop"
)

// ParseCloseTrigger maps a query value to a trigger, defaulting to the button.
func ParseCloseTrigger(value string) CloseTrigger {
	switch CloseTrigger(value) {
	case Escape, Backdrop:
		return CloseTrigger(value)
	default:
		return CloseButton
	}
}

// Listener is bound to the Open state: Attach runs when the viewer opens
// from Closed and Detach when it closes. Moving between open items does not
// re-attach.
type Listener interface {
	Attach(id int)
	Detach(trigger CloseTrigger)
}

// ListenerFuncs adapts plain functions to Listener.
type ListenerFuncs struct {
	OnAttach func(id int)
	OnDetach func(trigger CloseTrigger)
}

func (l ListenerFuncs) Attach(id int) {
	if l.OnAttach != nil {
		l.OnAttach(id)
	}
}

func (l ListenerFuncs) Detach(trigger CloseTrigger) {
	if l.OnDetach != nil {
		l.OnDetach(trigger)
	}
}

// Viewer is the detail viewer state machine: Closed or Open(id).
//
// Next and Previous walk the full catalog rather than the filtered view.
// The site has always behaved this way and the pages rely on it.
type Viewer struct {
	items     []models.CatalogItem
	open      bool
	index     int
	listeners []Listener
}

// NewViewer creates a closed viewer over the full catalog.
func NewViewer(items []models.CatalogItem, listeners ...Listener) *Viewer {
	return &Viewer{
		items:     items,
		listeners: listeners,
	}
}

// IsOpen reports whether an item is open.
func (v *Viewer) IsOpen() bool {
	return v.open
}

// Selected returns the open item.
func (v *Viewer) Selected() (models.CatalogItem, bool) {
	if !v.open {
		return models.CatalogItem{}, false
	}
	return v.items[v.index], true
}

// Position returns the 1-based position of the open item and the catalog size.
func (v *Viewer) Position() (int, int) {
	if !v.open {
		return 0, len(v.items)
	}
	return v.index + 1, len(v.items)
}

// Open selects id, which must be among the visible items.
func (v *Viewer) Open(id int, visible []models.CatalogItem) error {
	found := false
	for _, item := range visible {
		if item.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("open %d: %w", id, ErrNotVisible)
	}

	index := -1
	for i, item := range v.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("open %d: %w", id, ErrNotVisible)
	}

	v.moveTo(index)
	return nil
}

// Next moves to the following catalog item, wrapping at the end.
func (v *Viewer) Next() error {
	if !v.open {
		return ErrClosed
	}
	v.moveTo((v.index + 1) % len(v.items))
	return nil
}

// Previous moves to the preceding catalog item, wrapping at the start.
func (v *Viewer) Previous() error {
	if !v.open {
		return ErrClosed
	}
	n := len(v.items)
	v.moveTo((v.index - 1 + n) % n)
	return nil
}

// Neighbors returns the ids Previous and Next would select.
func (v *Viewer) Neighbors() (prev, next int, ok bool) {
	if !v.open {
		return 0, 0, false
	}
	n := len(v.items)
	return v.items[(v.index-1+n)%n].ID, v.items[(v.index+1)%n].ID, true
}

// Close returns the viewer to Closed. Closing a closed viewer does nothing.
func (v *Viewer) Close(trigger CloseTrigger) {
	if !v.open {
		return
	}
	v.open = false
	v.index = 0
	for _, l := range v.listeners {
		l.Detach(trigger)
	}
}

func (v *Viewer) moveTo(index int) {
	wasOpen := v.open
	v.open = true
	v.index = index
	if wasOpen {
		return
	}
	id := v.items[index].ID
	for _, l := range v.listeners {
		l.Attach(id)
	}
}
