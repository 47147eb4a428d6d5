package gallery

// HoverState holds the per-item pointer hover flags. It only feeds
// presentation and never touches any other state.
type HoverState struct {
	hovered map[int]bool
}

func NewHoverState() *HoverState {
	return &HoverState{hovered: make(map[int]bool)}
}

// Enter marks id as hovered.
func (h *HoverState) Enter(id int) {
	h.hovered[id] = true
}

// Leave clears the flag for id.
func (h *HoverState) Leave(id int) {
	delete(h.hovered, id)
}

func (h *HoverState) IsHovered(id int) bool {
	return h.hovered[id]
}
