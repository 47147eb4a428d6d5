package nav

// Menu is the flyout navigation panel state.
type Menu struct {
	open bool
}

func (m *Menu) IsOpen() bool {
	return m.open
}

// Toggle flips the panel from the hamburger button.
func (m *Menu) Toggle() {
	m.open = !m.open
}

// Escape closes the panel.
func (m *Menu) Escape() {
	m.open = false
}

// ClickOutside closes the panel when the click landed on neither the panel
// nor the toggle button.
func (m *Menu) ClickOutside(inPanel, onButton bool) {
	if m.open && !inPanel && !onButton {
		m.open = false
	}
}

// Follow closes the panel after a link was chosen and returns the target.
func (m *Menu) Follow(r Route) string {
	m.open = false
	return r.Path
}
