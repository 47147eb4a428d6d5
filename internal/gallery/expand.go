package gallery

// Expansion tracks the single expanded card of a feature section. Clicking
// the expanded card collapses it; clicking another card moves the
// expansion there.
type Expansion struct {
	id   int
	open bool
}

// Toggle handles a click on the card with the given id.
func (e *Expansion) Toggle(id int) {
	if e.open && e.id == id {
		e.open = false
		e.id = 0
		return
	}
	e.open = true
	e.id = id
}

// Expanded returns the expanded card id, if any.
func (e *Expansion) Expanded() (int, bool) {
	return e.id, e.open
}

func (e *Expansion) IsExpanded(id int) bool {
	return e.open && e.id == id
}
