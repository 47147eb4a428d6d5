package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/hero"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/balqony-sitraalu/studio/internal/nav"
	"github.com/balqony-sitraalu/studio/internal/views"
)

// menuFor restores the flyout state a no-script visitor asked for.
func menuFor(r *http.Request) *nav.Menu {
	menu := &nav.Menu{}
	if r.URL.Query().Get("menu") == "open" {
		menu.Toggle()
	}
	return menu
}

// galleryFor maps the request onto a catalog grid and its viewer:
// ?category= filters, ?open= selects, ?step=next|prev moves from the
// selection and ?close= dismisses it.
func (h *Handler) galleryFor(w http.ResponseWriter, r *http.Request, p *views.Page, name string, filterable bool) (*views.Gallery, error) {
	catalog, err := p.Site.Catalog(name)
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	category := models.CategoryAll
	if filterable {
		category = gallery.ParseCategory(catalog, query.Get("category"))
	}

	gl := &views.Gallery{
		Catalog:  catalog,
		Category: category,
		Visible:  gallery.VisibleItems(catalog.Items, category),
		Viewer:   gallery.NewViewer(catalog.Items, p.ScrollLock()),
		Reveals:  h.visitor(w, r).Reveals(name),
		Path:     p.Route.Path,
	}

	// Step and close links carry the item the viewer already shows, which
	// may be one the filter hides after stepping over the full catalog.
	openable := gl.Visible
	if query.Get("step") != "" || query.Get("close") != "" {
		openable = catalog.Items
	}

	if raw := query.Get("open"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err == nil {
			err = gl.Viewer.Open(id, openable)
		}
		if err != nil {
			slog.Debug("Ignoring viewer selection", "catalog", name, "open", raw, "err", err)
		}
	}

	switch query.Get("step") {
	case "next":
		_ = gl.Viewer.Next()
	case "prev":
		_ = gl.Viewer.Previous()
	}

	if trigger := query.Get("close"); trigger != "" {
		gl.Viewer.Close(gallery.ParseCloseTrigger(trigger))
	}
	return gl, nil
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	site := h.content.Site()
	p := h.page(site, "")
	p.Route = nav.Home
	p.Menu = menuFor(r)

	features, err := site.Catalog(content.CatalogFeatures)
	if err != nil {
		slog.Warn("Rendering home without features", "err", err)
	}

	expansion := &gallery.Expansion{}
	if id, err := strconv.Atoi(r.URL.Query().Get("expand")); err == nil && features != nil {
		if _, ok := features.Item(id); ok {
			expansion.Toggle(id)
		}
	}

	opts := h.heroOptions(site)
	h.writeHTML(w, http.StatusOK, views.Home(*p, views.HomeData{
		Letters:   hero.Scatter(h.heroSeed, site.Hero.Line1, site.Hero.Line2),
		Schedule:  hero.Schedule(opts),
		Replay:    hero.ReplaySchedule(opts),
		Features:  features,
		Expansion: expansion,
	}))
}

func (h *Handler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	site := h.content.Site()
	p := h.page(site, "About")
	p.Route = nav.About
	p.Menu = menuFor(r)

	team, err := h.galleryFor(w, r, p, content.CatalogTeam, false)
	if err != nil {
		h.writeError(w, "Team catalog unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, http.StatusOK, views.About(*p, team))
}

func (h *Handler) HandleFilm(w http.ResponseWriter, r *http.Request) {
	site := h.content.Site()
	p := h.page(site, site.Film.Title)
	p.Route = nav.Film
	p.Menu = menuFor(r)

	scenes, err := h.galleryFor(w, r, p, content.CatalogScenes, false)
	if err != nil {
		h.writeError(w, "Scene catalog unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, http.StatusOK, views.Film(*p, scenes))
}

func (h *Handler) HandleWork(w http.ResponseWriter, r *http.Request) {
	site := h.content.Site()
	p := h.page(site, "Our Work")
	p.Route = nav.Work
	p.Menu = menuFor(r)

	projects, err := h.galleryFor(w, r, p, content.CatalogWork, true)
	if err != nil {
		h.writeError(w, "Work catalog unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeHTML(w, http.StatusOK, views.Work(*p, projects))
}

func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	visitor := h.visitor(w, r)

	switch r.Method {
	case http.MethodGet:
		h.renderContact(w, r, http.StatusOK, visitor.Form.Snapshot())
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
			return
		}
		for _, field := range contact.Fields {
			if err := visitor.Form.UpdateField(string(field), r.PostForm.Get(string(field))); err != nil {
				h.writeError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		err := visitor.Form.Submit(r.Context())
		if err == nil {
			slog.Info("Contact inquiry sent", "visitor", visitor.ID)
			http.Redirect(w, r, nav.Contact.Path, http.StatusSeeOther)
			return
		}

		code := submitStatus(err)
		slog.Warn("Contact inquiry failed", "visitor", visitor.ID, "status", code, "err", err)
		snapshot := visitor.Form.Snapshot()
		if snapshot.Error == "" {
			snapshot.Error = contact.UserMessage(err)
		}
		h.renderContact(w, r, code, snapshot)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) renderContact(w http.ResponseWriter, r *http.Request, code int, snapshot contact.Snapshot) {
	site := h.content.Site()
	p := h.page(site, "Contact")
	p.Route = nav.Contact
	p.Menu = menuFor(r)
	h.writeHTML(w, code, views.Contact(*p, views.ContactData{
		Form:       snapshot,
		ResetAfter: h.resetAfter.Milliseconds(),
	}))
}

// submitStatus maps a submission error to the response status.
func submitStatus(err error) int {
	var missing *contact.MissingFieldsError
	var rejected *contact.SubmitError
	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrEndpointNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, contact.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.As(err, &rejected) && rejected.Status >= 400 && rejected.Status < 500:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
