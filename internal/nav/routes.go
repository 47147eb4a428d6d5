package nav

// Route is a named page of the site.
type Route struct {
	Name  string
	Path  string
	Label string
}

var (
	Home    = Route{Name: "home", Path: "/", Label: "Home"}
	About   = Route{Name: "about", Path: "/about", Label: "About Us"}
	Film    = Route{Name: "film", Path: "/hyderabad-nights", Label: "Hyderabad Nights - The Film"}
	Work    = Route{Name: "work", Path: "/work", Label: "Our Work"}
	Contact = Route{Name: "contact", Path: "/contact", Label: "Contact Us"}
)

// Routes lists the pages in menu order.
var Routes = []Route{Home, About, Film, Work, Contact}

// ExternalLink opens in a new browsing context and carries nothing but
// its URL.
type ExternalLink struct {
	Label string
	URL   string
}

// Attrs returns the anchor attributes for an external link.
func (l ExternalLink) Attrs() map[string]string {
	return map[string]string{
		"href":   l.URL,
		"target": "_blank",
		"rel":    "noopener noreferrer",
	}
}
