package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/media"
	"github.com/balqony-sitraalu/studio/internal/views"
	"github.com/go-chi/chi/v5"
)

// HandleThumbnail serves a resized copy of a public image.
func (h *Handler) HandleThumbnail(w http.ResponseWriter, r *http.Request) {
	size := chi.URLParam(r, "size")
	name := chi.URLParam(r, "*")

	data, err := h.thumbnails.Thumbnail(name, size)
	switch {
	case errors.Is(err, media.ErrUnknownSize), errors.Is(err, media.ErrInvalidPath):
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, os.ErrNotExist):
		http.NotFound(w, r)
		return
	case err != nil:
		h.writeError(w, "Unable to create thumbnail: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		h.writeError(w, "Unable to write thumbnail", http.StatusInternalServerError)
	}
}

// HandleAssets serves the embedded stylesheet and script.
func (h *Handler) HandleAssets() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(views.Assets())))
}

// HandlePublic serves images and video from the public directory.
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	// Prevent directory traversal attacks
	if strings.Contains(r.URL.Path, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}
	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	http.FileServer(http.Dir(h.publicDir)).ServeHTTP(w, r)
}
