package views

import (
	"strconv"

	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/balqony-sitraalu/studio/internal/render"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Reveal wraps an item so the browser reports when it scrolls into view.
// Items the visitor has already seen render in their final state.
func Reveal(gl *Gallery, id int, class string, children ...g.Node) g.Node {
	classes := class + " reveal"
	if gl.Reveals != nil && gl.Reveals.IsRevealed(id) {
		classes += " is-revealed"
	}
	nodes := []g.Node{
		Class(classes),
		g.Attr("data-reveal-catalog", gl.Catalog.Name),
		g.Attr("data-reveal-id", strconv.Itoa(id)),
		g.Attr("data-hover-id", strconv.Itoa(id)),
	}
	return Div(append(nodes, children...)...)
}

// Card is a grid entry that opens the detail viewer.
func Card(gl *Gallery, item models.CatalogItem, index int, caption ...g.Node) g.Node {
	return Reveal(gl, item.ID, "card",
		g.Attr("style", "--stagger:"+strconv.Itoa(index)),
		A(
			Class("card-link"),
			Href(gl.OpenHref(item.ID)),
			Img(
				Src(ImageURL(item.Image, thumb)),
				Alt(item.Title),
				g.Attr("loading", "lazy"),
			),
			Div(Class("card-caption"), g.Group(caption)),
		),
	)
}

// Modal renders the open detail viewer. Escape and backdrop clicks follow
// the close links the script reads from the dialog.
func Modal(gl *Gallery, withSteps bool, body ...g.Node) g.Node {
	item, ok := gl.Viewer.Selected()
	if !ok {
		return nil
	}

	nodes := []g.Node{
		Class("modal"),
		Role("dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("aria-labelledby", "modal-title"),
		g.Attr("data-escape-href", gl.CloseHref(gallery.Escape)),
		A(Class("modal-backdrop"), Href(gl.CloseHref(gallery.Backdrop)), g.Attr("aria-label", "Close")),
	}

	panel := []g.Node{
		Class("modal-panel"),
		A(Class("modal-close"), Href(gl.CloseHref(gallery.CloseButton)), g.Attr("aria-label", "Close"), g.Text("×")),
		Img(Class("modal-image"), Src(ImageURL(item.Image, medium)), Alt(item.Title)),
		H2(ID("modal-title"), g.Text(item.Title)),
	}
	panel = append(panel, body...)

	if withSteps {
		position, total := gl.Viewer.Position()
		panel = append(panel, Div(
			Class("modal-steps"),
			A(Class("modal-prev"), Href(gl.StepHref("prev")), g.Attr("data-step", "prev"), g.Text("‹ Previous")),
			Span(Class("modal-position"), g.Textf("%d of %d", position, total)),
			A(Class("modal-next"), Href(gl.StepHref("next")), g.Attr("data-step", "next"), g.Text("Next ›")),
		))
	}

	nodes = append(nodes, Div(panel...))
	return Div(nodes...)
}

// Markdown renders inline markdown copy.
func Markdown(source string) g.Node {
	return g.Raw(string(render.InlineOrText(source)))
}

// Tags renders a list of chips.
func Tags(class string, values []string) g.Node {
	if len(values) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(values))
	for _, v := range values {
		items = append(items, Li(g.Text(v)))
	}
	return Ul(Class(class), g.Group(items))
}
