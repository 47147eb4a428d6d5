package views

import (
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Work renders the filterable project portfolio.
func Work(p Page, projects *Gallery) g.Node {
	pills := make([]g.Node, 0, len(projects.Catalog.Categories)+1)
	for _, category := range gallery.FilterOptions(projects.Catalog) {
		class := "pill"
		if category == projects.Category {
			class += " is-active"
		}
		pills = append(pills, Li(A(
			Class(class),
			Href(projects.FilterHref(category)),
			g.If(category == projects.Category, g.Attr("aria-current", "true")),
			g.Text(string(category)),
		)))
	}

	cards := make([]g.Node, 0, len(projects.Visible))
	for i, project := range projects.Visible {
		cards = append(cards, Card(projects, project, i,
			Span(Class("card-category"), g.Text(string(project.Category))),
			H3(g.Text(project.Title)),
			g.If(project.Client != "", P(Class("card-client"), g.Text(project.Client))),
		))
	}

	var grid g.Node
	if len(cards) == 0 {
		grid = P(Class("empty"), g.Text("No projects in this category yet."))
	} else {
		grid = Div(Class("grid grid-work"), g.Group(cards))
	}

	return Layout(p,
		Section(
			Class("work-intro"),
			H1(g.Text("Our Work")),
			P(Class("lead"), g.Text("Stories we have told for brands, artists and ourselves.")),
		),
		Nav(Class("filters"), g.Attr("aria-label", "Filter projects"), Ul(pills...)),
		Section(Class("projects"), grid),
		projectCTA(p),
		projectModal(projects),
	)
}

func projectModal(projects *Gallery) g.Node {
	project, ok := projects.Viewer.Selected()
	if !ok {
		return nil
	}

	meta := []g.Node{Class("modal-meta")}
	if project.Client != "" {
		meta = append(meta, Span(g.Text(project.Client)))
	}
	meta = append(meta, Span(g.Text(string(project.Category))))
	if project.Year != "" {
		meta = append(meta, Span(g.Text(project.Year)))
	}

	var video g.Node
	if project.VideoURL != "" {
		video = ExternalAnchor(nav.ExternalLink{Label: "Watch", URL: project.VideoURL},
			Class("btn btn-primary"), g.Text("Watch the film"))
	}

	var awards g.Node
	if len(project.Awards) > 0 {
		awards = Div(Class("modal-awards"), H3(g.Text("Awards")), Tags("awards", project.Awards))
	}

	return Modal(projects, true,
		Div(meta...),
		Div(Class("modal-description"), Markdown(project.Description)),
		Tags("tags", project.Tags),
		awards,
		video,
	)
}

func projectCTA(p Page) g.Node {
	return Section(
		Class("cta"),
		H2(g.Text("Have a story to tell?")),
		Div(
			Class("cta-actions"),
			ExternalAnchor(nav.ExternalLink{Label: "Get a Quote", URL: p.Site.Links.Quote}, Class("btn btn-primary"), g.Text("Get a Quote")),
			A(Class("btn btn-ghost"), Href(nav.Contact.Path), g.Text("Contact Us")),
		),
	)
}
