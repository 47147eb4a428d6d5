package nav

// FooterRevealOffset is the scroll depth below which scrolling up shows the
// footer.
const FooterRevealOffset = 100

// Footer shows the sticky footer while the visitor scrolls up and hides it
// while they scroll down.
type Footer struct {
	visible bool
	lastY   float64
}

func (f *Footer) Visible() bool {
	return f.visible
}

// Scroll records a new scroll position.
func (f *Footer) Scroll(y float64) {
	switch {
	case y < f.lastY && y > FooterRevealOffset:
		f.visible = true
	case y > f.lastY:
		f.visible = false
	}
	f.lastY = y
}
