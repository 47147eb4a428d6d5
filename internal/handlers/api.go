package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/hero"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/go-chi/chi/v5"
)

type catalogResponse struct {
	Name     string               `json:"name"`
	Category models.Category      `json:"category"`
	Items    []models.CatalogItem `json:"items"`
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	catalog, err := h.content.Site().Catalog(name)
	if errors.Is(err, content.ErrCatalogNotFound) {
		h.writeError(w, "Catalog not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// an unrecognised category filters to nothing here rather than All
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	category := gallery.ParseCategory(catalog, raw)
	if raw != "" && category == models.CategoryAll && !strings.EqualFold(raw, string(models.CategoryAll)) {
		category = models.Category(raw)
	}

	items := gallery.VisibleItems(catalog.Items, category)
	if items == nil {
		items = []models.CatalogItem{}
	}
	h.writeJSON(w, catalogResponse{
		Name:     catalog.Name,
		Category: category,
		Items:    items,
	})
}

type revealRequest struct {
	Catalog string  `json:"catalog"`
	ID      int     `json:"id"`
	Ratio   float64 `json:"ratio"`
}

type revealResponse struct {
	Revealed bool  `json:"revealed"`
	Done     bool  `json:"done"`
	IDs      []int `json:"ids"`
}

// HandleReveal records an intersection report from the browser.
func (h *Handler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Ratio < 0 || req.Ratio > 1 {
		h.writeError(w, "ratio must be between 0 and 1", http.StatusBadRequest)
		return
	}

	catalog, err := h.content.Site().Catalog(req.Catalog)
	if err != nil {
		h.writeError(w, "Catalog not found", http.StatusNotFound)
		return
	}
	if _, ok := catalog.Item(req.ID); !ok {
		h.writeError(w, "Item not found", http.StatusNotFound)
		return
	}

	reveals := h.visitor(w, r).Reveals(req.Catalog)
	revealed, done := reveals.Observe(req.ID, req.Ratio)
	if revealed {
		slog.Debug("Item revealed", "catalog", req.Catalog, "id", req.ID, "ratio", req.Ratio)
	}
	h.writeJSON(w, revealResponse{Revealed: revealed, Done: done, IDs: reveals.IDs()})
}

type letterResponse struct {
	Char     string  `json:"char"`
	Key      string  `json:"key"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
	DelayMS  int64   `json:"delay_ms"`
}

type stepResponse struct {
	Phase hero.Phase `json:"phase"`
	AtMS  int64      `json:"at_ms"`
}

type heroResponse struct {
	Seed            uint32             `json:"seed"`
	MergeIntoHeader bool               `json:"merge_into_header"`
	Rows            [][]letterResponse `json:"rows"`
	Schedule        []stepResponse     `json:"schedule"`
	Replay          []stepResponse     `json:"replay"`
}

// HandleHero returns the title scatter and the phase schedules.
func (h *Handler) HandleHero(w http.ResponseWriter, r *http.Request) {
	site := h.content.Site()
	opts := h.heroOptions(site)

	scatter := hero.Scatter(h.heroSeed, site.Hero.Line1, site.Hero.Line2)
	rows := make([][]letterResponse, len(scatter))
	for i, letters := range scatter {
		rows[i] = make([]letterResponse, len(letters))
		for j, l := range letters {
			rows[i][j] = letterResponse{
				Char:     l.Char,
				Key:      l.Key(),
				X:        l.X,
				Y:        l.Y,
				Rotation: l.Rotation,
				Scale:    l.Scale,
				DelayMS:  l.Delay.Milliseconds(),
			}
		}
	}

	h.writeJSON(w, heroResponse{
		Seed:            h.heroSeed,
		MergeIntoHeader: opts.MergeIntoHeader,
		Rows:            rows,
		Schedule:        steps(hero.Schedule(opts)),
		Replay:          steps(hero.ReplaySchedule(opts)),
	})
}

func steps(in []hero.Step) []stepResponse {
	out := make([]stepResponse, len(in))
	for i, s := range in {
		out[i] = stepResponse{Phase: s.Phase, AtMS: s.At.Milliseconds()}
	}
	return out
}

type contactResponse struct {
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// HandleContactAPI accepts the form as a flat JSON object.
func (h *Handler) HandleContactAPI(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&values); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	for name := range values {
		if _, err := contact.ParseField(name); err != nil {
			h.writeJSONStatus(w, http.StatusBadRequest, contactResponse{Error: err.Error()})
			return
		}
	}

	// Every field is written so omitted keys clear earlier attempts.
	visitor := h.visitor(w, r)
	for _, field := range contact.Fields {
		if err := visitor.Form.UpdateField(string(field), values[string(field)]); err != nil {
			h.writeJSONStatus(w, http.StatusBadRequest, contactResponse{Error: err.Error()})
			return
		}
	}

	if err := visitor.Form.Submit(r.Context()); err != nil {
		code := submitStatus(err)
		slog.Warn("Contact inquiry failed", "visitor", visitor.ID, "status", code, "err", err)
		h.writeJSONStatus(w, code, contactResponse{Error: contact.UserMessage(err)})
		return
	}
	slog.Info("Contact inquiry sent", "visitor", visitor.ID)
	h.writeJSON(w, contactResponse{OK: true})
}
