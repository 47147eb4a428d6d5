package views

import (
	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Film renders the Hyderabad Nights showcase.
func Film(p Page, scenes *Gallery) g.Node {
	f := p.Site.Film

	cards := make([]g.Node, 0, len(scenes.Visible))
	for i, scene := range scenes.Visible {
		cards = append(cards, Card(scenes, scene, i,
			Span(Class("card-index"), g.Textf("%02d", i+1)),
			H3(g.Text(scene.Title)),
		))
	}

	var modal g.Node
	if scene, ok := scenes.Viewer.Selected(); ok {
		position, total := scenes.Viewer.Position()
		modal = Modal(scenes, true,
			P(Class("modal-kicker"), g.Textf("Scene %d of %d", position, total)),
			Div(Class("modal-description"), Markdown(scene.Description)),
		)
	}

	return Layout(p,
		Section(
			Class("film-hero"),
			g.Attr("style", "background-image:url('"+f.HeroImage+"')"),
			H1(g.Text(f.Title)),
		),
		Section(
			Class("scenes"),
			H2(g.Text("Scenes")),
			Div(Class("grid grid-scenes"), g.Group(cards)),
		),
		callToAction(p, f.CTA, nav.Work.Path, "See our work"),
		modal,
	)
}
