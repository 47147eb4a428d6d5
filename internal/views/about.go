package views

import (
	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// About renders the studio story and the team grid.
func About(p Page, team *Gallery) g.Node {
	a := p.Site.About

	story := make([]g.Node, 0, len(a.Story))
	for _, paragraph := range a.Story {
		story = append(story, Div(Class("story-paragraph"), Markdown(paragraph)))
	}

	cards := make([]g.Node, 0, len(team.Visible))
	for i, member := range team.Visible {
		cards = append(cards, Card(team, member, i,
			H3(g.Text(member.Title)),
			P(Class("card-role"), g.Text(string(member.Category))),
		))
	}

	var modal g.Node
	if member, ok := team.Viewer.Selected(); ok {
		modal = Modal(team, false,
			P(Class("modal-role"), g.Text(string(member.Category))),
			Div(Class("modal-bio"), Markdown(member.Description)),
		)
	}

	return Layout(p,
		Section(
			Class("about-intro"),
			H1(g.Text(a.Heading)),
			P(Class("lead"), g.Text(a.Intro)),
		),
		Section(
			Class("about-story"),
			Img(Src(a.StoryImage), Alt(p.Site.Hero.LogoAlt)),
			Div(Class("story-copy"), g.Group(story)),
		),
		Section(
			Class("team"),
			H2(g.Text("Meet the Team")),
			P(Class("team-intro"), g.Text(a.TeamIntro)),
			Div(Class("grid grid-team"), g.Group(cards)),
			Div(
				Class("team-extras"),
				P(Strong(g.Text("Favorite gear: ")), g.Text(a.FavoriteGear)),
				P(Strong(g.Text("Off set: ")), g.Text(a.OffSet)),
			),
		),
		callToAction(p, "Let's make something together", nav.Contact.Path, "Start a project"),
		modal,
	)
}

// callToAction is the closing banner of a page.
func callToAction(p Page, heading, href, label string) g.Node {
	return Section(
		Class("cta"),
		H2(g.Text(heading)),
		Div(
			Class("cta-actions"),
			A(Class("btn btn-primary"), Href(href), g.Text(label)),
			ExternalAnchor(nav.ExternalLink{Label: "Schedule a Call", URL: p.Site.Links.ScheduleCall},
				Class("btn btn-ghost"), g.Text("Schedule a Call")),
		),
	)
}
