package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/hero"
	"github.com/balqony-sitraalu/studio/internal/media"
	"github.com/balqony-sitraalu/studio/internal/storage"
	"github.com/balqony-sitraalu/studio/internal/views"
	g "maragu.dev/gomponents"
)

const visitorCookie = "studio_visitor"

// Options configures a Handler.
type Options struct {
	Content         *content.Store
	Visitors        *storage.VisitorStore
	Thumbnails      *media.Thumbnailer
	PublicDir       string
	VisitorTTL      time.Duration
	HeroSeed        uint32
	HeroHold        time.Duration
	ResetAfter      time.Duration
	RevealThreshold float64
}

type Handler struct {
	content    *content.Store
	visitors   *storage.VisitorStore
	thumbnails *media.Thumbnailer
	publicDir  string
	visitorTTL time.Duration
	heroSeed   uint32
	heroHold   time.Duration
	resetAfter time.Duration
	threshold  float64
}

func New(opts Options) *Handler {
	return &Handler{
		content:    opts.Content,
		visitors:   opts.Visitors,
		thumbnails: opts.Thumbnails,
		publicDir:  opts.PublicDir,
		visitorTTL: opts.VisitorTTL,
		heroSeed:   opts.HeroSeed,
		heroHold:   opts.HeroHold,
		resetAfter: opts.ResetAfter,
		threshold:  opts.RevealThreshold,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}

func (h *Handler) writeHTML(w http.ResponseWriter, code int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := node.Render(w); err != nil {
		slog.Error("Unable to render page", "err", err)
	}
}

// Visitor helpers
func (h *Handler) visitor(w http.ResponseWriter, r *http.Request) *storage.Visitor {
	var id string
	if cookie, err := r.Cookie(visitorCookie); err == nil {
		id = cookie.Value
	}

	visitor, created := h.visitors.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     visitorCookie,
			Value:    visitor.ID,
			Path:     "/",
			MaxAge:   int(h.visitorTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		slog.Debug("New visitor", "visitor", visitor.ID)
	}
	return visitor
}

func (h *Handler) heroOptions(site *content.Site) hero.Options {
	return hero.Options{
		MergeIntoHeader: site.Hero.MergeIntoHeader,
		Hold:            h.heroHold,
	}
}

func (h *Handler) page(site *content.Site, title string) *views.Page {
	return &views.Page{
		Site:            site,
		Title:           title,
		RevealThreshold: h.threshold,
	}
}
