package views

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/hero"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// HomeData is the state of the landing page.
type HomeData struct {
	Letters   [][]hero.Letter
	Schedule  []hero.Step
	Replay    []hero.Step
	Features  *models.Catalog
	Expansion *gallery.Expansion
}

// Home renders the landing page.
func Home(p Page, d HomeData) g.Node {
	return Layout(p,
		heroSection(p, d),
		videoSection(p),
		featureSection(p, d),
	)
}

func heroSection(p Page, d HomeData) g.Node {
	rows := make([]g.Node, 0, len(d.Letters))
	for row, letters := range d.Letters {
		spans := make([]g.Node, 0, len(letters))
		for _, l := range letters {
			spans = append(spans, Span(
				Class("hero-letter"),
				g.Attr("data-key", l.Key()),
				g.Attr("style", letterStyle(l)),
				g.Text(l.Char),
			))
		}
		rows = append(rows, Span(Class("hero-row hero-row-"+strconv.Itoa(row+1)), g.Group(spans)))
	}

	taglines := make([]g.Node, 0, len(p.Site.Hero.Taglines))
	for _, t := range p.Site.Hero.Taglines {
		taglines = append(taglines, P(Class("hero-tagline"), g.Text(t)))
	}

	return Section(
		Class("hero"),
		ID("hero"),
		g.Attr("data-phase", string(hero.Idle)),
		g.Attr("data-schedule", stepsJSON(d.Schedule)),
		g.Attr("data-replay-schedule", stepsJSON(d.Replay)),
		g.Attr("style", "background-image:url('"+p.Site.Hero.Background+"')"),
		H1(
			Class("hero-title"),
			g.Attr("aria-label", p.Site.Hero.Line1+" "+p.Site.Hero.Line2),
			g.Group(rows),
		),
		g.Group(taglines),
		Button(
			Class("hero-replay"),
			Type("button"),
			g.Attr("data-hero-replay"),
			g.Text("Replay"),
		),
	)
}

func letterStyle(l hero.Letter) string {
	return fmt.Sprintf("--x:%.2fpx;--y:%.2fpx;--r:%.2fdeg;--s:%.3f;--d:%dms",
		l.X, l.Y, l.Rotation, l.Scale, l.Delay.Milliseconds())
}

type stepJSON struct {
	Phase hero.Phase `json:"phase"`
	At    int64      `json:"at"`
}

func stepsJSON(steps []hero.Step) string {
	out := make([]stepJSON, len(steps))
	for i, s := range steps {
		out[i] = stepJSON{Phase: s.Phase, At: s.At.Milliseconds()}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func videoSection(p Page) g.Node {
	v := p.Site.Video
	return Section(
		Class("reel"),
		Video(
			Class("reel-video"),
			g.Attr("autoplay"),
			g.Attr("muted"),
			g.Attr("loop"),
			g.Attr("playsinline"),
			g.Attr("poster", v.Poster),
			Source(Src(v.Source), Type("video/mp4")),
		),
		Div(
			Class("reel-overlay"),
			Img(Class("reel-logo"), Src(v.Logo), Alt(p.Site.Hero.LogoAlt)),
			P(Class("reel-vision"), g.Text(v.Vision)),
		),
	)
}

// toggleHref links to the state a click on card id leads to.
func toggleHref(current *gallery.Expansion, id int) string {
	var next gallery.Expansion
	if current != nil {
		next = *current
	}
	next.Toggle(id)
	anchor := "#feature-" + strconv.Itoa(id)
	if expanded, ok := next.Expanded(); ok {
		return nav.Home.Path + "?expand=" + strconv.Itoa(expanded) + anchor
	}
	return nav.Home.Path + anchor
}

// featureSection alternates image and copy. ?expand=id expands a card.
func featureSection(p Page, d HomeData) g.Node {
	if d.Features == nil {
		return nil
	}

	cards := make([]g.Node, 0, len(d.Features.Items))
	for i, item := range d.Features.Items {
		expanded := d.Expansion != nil && d.Expansion.IsExpanded(item.ID)

		class := "feature"
		if i%2 == 1 {
			class += " feature-reverse"
		}
		if expanded {
			class += " is-expanded"
		}

		body := []g.Node{
			Class(class),
			ID("feature-" + strconv.Itoa(item.ID)),
			A(
				Class("feature-toggle"),
				Href(toggleHref(d.Expansion, item.ID)),
				g.Attr("aria-expanded", strconv.FormatBool(expanded)),
				Img(Src(ImageURL(item.Image, medium)), Alt(item.Title)),
				H3(g.Text(item.Title)),
			),
		}
		if expanded {
			body = append(body, Div(
				Class("feature-panel"),
				Img(Src(ImageURL(item.ExpandedImage, medium)), Alt(item.Title)),
				Div(Class("feature-text"), Markdown(item.ExpandedText)),
				g.If(item.Link != "", A(Class("feature-link"), Href(item.Link), g.Text("Explore"))),
			))
		}
		cards = append(cards, Article(body...))
	}

	return Section(
		Class("features"),
		H2(Class("features-heading"), g.Text(p.Site.FeaturesHeading)),
		g.Group(cards),
	)
}
