package views

import (
	"strconv"

	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Layout wraps a page body with the document head, navigation and footer.
func Layout(p Page, body ...g.Node) g.Node {
	title := p.Site.Name
	if p.Title != "" {
		title = p.Title + " | " + p.Site.Name
	}

	bodyClass := "page page-" + p.Route.Name
	if p.ScrollLocked {
		bodyClass += " scroll-locked"
	}

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("description"), Content(p.Site.Description)),
				Meta(Name("theme-color"), Content(p.Site.ThemeColor)),
				TitleEl(g.Text(title)),
				Link(Rel("icon"), Href(p.Site.Hero.Logo)),
				Link(Rel("stylesheet"), Href("/static/site.css")),
			),
			Body(
				Class(bodyClass),
				g.Attr("data-reveal-threshold", strconv.FormatFloat(p.RevealThreshold, 'f', -1, 64)),
				g.Attr("data-footer-offset", strconv.Itoa(nav.FooterRevealOffset)),
				Navbar(p),
				Main(ID("main"), g.Group(body)),
				SiteFooter(p),
				Script(Src("/static/site.js"), g.Attr("defer")),
			),
		),
	)
}

// Navbar renders the logo and the flyout menu. Without scripts the menu
// opens through ?menu=open.
func Navbar(p Page) g.Node {
	panelClass := "menu-panel"
	toggleHref := p.Route.Path + "?menu=open"
	if p.Menu != nil && p.Menu.IsOpen() {
		panelClass += " is-open"
		toggleHref = p.Route.Path
	}

	links := make([]g.Node, 0, len(nav.Routes))
	for _, r := range nav.Routes {
		menu := nav.Menu{}
		href := menu.Follow(r)
		links = append(links, Li(
			A(
				Href(href),
				g.If(r.Name == p.Route.Name, g.Attr("aria-current", "page")),
				g.Text(r.Label),
			),
		))
	}

	return Header(
		Class("site-header"),
		A(
			Class("site-logo"),
			Href(nav.Home.Path),
			Img(Src(p.Site.Hero.Logo), Alt(p.Site.Hero.LogoAlt)),
		),
		A(
			Class("menu-toggle"),
			Href(toggleHref),
			g.Attr("data-menu-toggle"),
			g.Attr("aria-controls", "site-menu"),
			g.Attr("aria-expanded", strconv.FormatBool(p.Menu != nil && p.Menu.IsOpen())),
			Span(Class("sr-only"), g.Text("Menu")),
			Span(Class("menu-icon")),
		),
		Nav(
			ID("site-menu"),
			Class(panelClass),
			g.Attr("data-menu-panel"),
			Ul(links...),
		),
	)
}

// SiteFooter renders the footer that slides in while scrolling up.
func SiteFooter(p Page) g.Node {
	f := p.Site.Footer

	socials := make([]g.Node, 0, len(f.Socials))
	for _, s := range f.Socials {
		socials = append(socials, Li(ExternalAnchor(nav.ExternalLink{Label: s.Label, URL: s.URL})))
	}

	return Footer(
		Class("site-footer"),
		g.Attr("data-scroll-footer"),
		Div(
			Class("footer-contact"),
			A(Href("tel:"+f.Phone), g.Text(f.Phone)),
			A(Href("mailto:"+f.Email), g.Text(f.Email)),
			Span(g.Text(f.City)),
		),
		Ul(Class("footer-socials"), g.Group(socials)),
		P(Class("footer-copyright"), g.Text(f.Copyright)),
	)
}

// ExternalAnchor renders a link that opens in a new browsing context.
func ExternalAnchor(l nav.ExternalLink, children ...g.Node) g.Node {
	attrs := l.Attrs()
	nodes := []g.Node{
		Href(attrs["href"]),
		Target(attrs["target"]),
		Rel(attrs["rel"]),
	}
	if len(children) == 0 {
		children = []g.Node{g.Text(l.Label)}
	}
	return A(append(nodes, children...)...)
}
