package views

import (
	"strconv"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/balqony-sitraalu/studio/internal/nav"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ContactData is the state of the contact page.
type ContactData struct {
	Form       contact.Snapshot
	ResetAfter int64 // milliseconds
}

// Contact renders the inquiry form, or the thank-you state after a
// successful submission, next to the studio details.
func Contact(p Page, d ContactData) g.Node {
	c := p.Site.Contact

	var panel g.Node
	if d.Form.Submitted {
		panel = Div(
			Class("contact-thanks"),
			Role("status"),
			g.Attr("data-reset-after", strconv.FormatInt(d.ResetAfter, 10)),
			H2(g.Text("Thank you!")),
			P(g.Text("We've received your message and will get back to you within 24 hours.")),
		)
	} else {
		panel = contactForm(p, d.Form)
	}

	cards := make([]g.Node, 0, len(c.Cards))
	for _, card := range c.Cards {
		cards = append(cards, infoCard(card))
	}

	return Layout(p,
		Section(
			Class("contact-intro"),
			H1(g.Text(c.Heading)),
			P(Class("lead"), g.Text(c.Intro)),
		),
		Section(
			Class("contact-body"),
			panel,
			Aside(
				Class("contact-info"),
				g.Group(cards),
				Div(
					Class("contact-map"),
					P(g.Text(c.MapLabel)),
					ExternalAnchor(nav.ExternalLink{Label: "Open in Maps", URL: p.Site.Links.Map}),
				),
			),
		),
		callToAction(p, "Prefer to talk it through?", "mailto:"+p.Site.Footer.Email, "Email us"),
	)
}

func infoCard(card models.ContactCard) g.Node {
	details := make([]g.Node, 0, len(card.Details))
	for _, d := range card.Details {
		details = append(details, P(g.Text(d)))
	}
	return Div(
		Class("info-card"),
		Span(Class("icon icon-"+card.Icon), g.Attr("aria-hidden", "true")),
		H3(g.Text(card.Title)),
		g.Group(details),
	)
}

func contactForm(p Page, s contact.Snapshot) g.Node {
	c := p.Site.Contact

	submitLabel := "Send Message"
	if s.Submitting {
		submitLabel = "Sending..."
	}

	var alert g.Node
	if s.Error != "" {
		alert = Div(Class("form-error"), Role("alert"), g.Text(s.Error))
	}

	return Form(
		Class("contact-form"),
		Method("post"),
		Action(nav.Contact.Path),
		g.Attr("novalidate"),
		alert,
		Div(
			Class("form-row"),
			textInput(s, contact.FieldName, "Name", "text", "Your full name"),
			textInput(s, contact.FieldEmail, "Email", "email", "you@example.com"),
		),
		textInput(s, contact.FieldCompany, "Company", "text", "Company or organisation"),
		Div(
			Class("form-row"),
			selectInput(s, contact.FieldProjectType, "Project Type", "Select project type", c.ProjectTypes),
			selectInput(s, contact.FieldBudget, "Budget Range", "Select budget range", c.Budgets),
		),
		selectInput(s, contact.FieldTimeline, "Timeline", "Select timeline", c.Timelines),
		Div(
			Class("field"),
			fieldLabel(contact.FieldMessage, "Project Details"),
			Textarea(
				ID("field-"+string(contact.FieldMessage)),
				Name(string(contact.FieldMessage)),
				Rows("6"),
				Placeholder("Tell us about your project, goals, and vision..."),
				g.If(contact.IsRequired(contact.FieldMessage), Required()),
				g.Text(s.Value(contact.FieldMessage)),
			),
		),
		Button(
			Class("btn btn-primary"),
			Type("submit"),
			g.If(s.Submitting, Disabled()),
			g.Text(submitLabel),
		),
	)
}

func fieldLabel(f contact.Field, text string) g.Node {
	if contact.IsRequired(f) {
		text += " *"
	}
	return Label(For("field-"+string(f)), g.Text(text))
}

func textInput(s contact.Snapshot, f contact.Field, label, kind, placeholder string) g.Node {
	return Div(
		Class("field"),
		fieldLabel(f, label),
		Input(
			ID("field-"+string(f)),
			Name(string(f)),
			Type(kind),
			Value(s.Value(f)),
			Placeholder(placeholder),
			g.If(contact.IsRequired(f), Required()),
		),
	)
}

func selectInput(s contact.Snapshot, f contact.Field, label, prompt string, options []models.Option) g.Node {
	current := s.Value(f)
	nodes := []g.Node{
		ID("field-" + string(f)),
		Name(string(f)),
		g.If(contact.IsRequired(f), Required()),
		Option(Value(""), g.Text(prompt)),
	}
	for _, o := range options {
		nodes = append(nodes, Option(Value(o.Value), g.If(o.Value == current, Selected()), g.Text(o.Label)))
	}
	return Div(
		Class("field"),
		fieldLabel(f, label),
		Select(nodes...),
	)
}
