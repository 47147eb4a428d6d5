package views

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/media"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/balqony-sitraalu/studio/internal/nav"
)

// Page carries what every page needs besides its own body.
type Page struct {
	Site  *content.Site
	Route nav.Route
	Title string
	Menu  *nav.Menu
	// ScrollLocked is set while a detail viewer is open.
	ScrollLocked    bool
	RevealThreshold float64
}

// ScrollLock is the viewer listener that locks page scrolling while a
// detail viewer is open.
func (p *Page) ScrollLock() gallery.Listener {
	return gallery.ListenerFuncs{
		OnAttach: func(int) { p.ScrollLocked = true },
		OnDetach: func(gallery.CloseTrigger) { p.ScrollLocked = false },
	}
}

// Gallery is a catalog grid with its detail viewer.
type Gallery struct {
	Catalog  *models.Catalog
	Category models.Category
	Visible  []models.CatalogItem
	Viewer   *gallery.Viewer
	Reveals  *gallery.RevealSet
	Path     string
}

// href builds a link to the gallery page keeping the active filter.
func (gl *Gallery) href(extra ...string) string {
	q := url.Values{}
	if gl.Category != "" && gl.Category != models.CategoryAll {
		q.Set("category", string(gl.Category))
	}
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	if len(q) == 0 {
		return gl.Path
	}
	return gl.Path + "?" + q.Encode()
}

// OpenHref links to the viewer opened on id.
func (gl *Gallery) OpenHref(id int) string {
	return gl.href("open", strconv.Itoa(id))
}

// StepHref links to the next or previous item from the open one.
func (gl *Gallery) StepHref(direction string) string {
	item, ok := gl.Viewer.Selected()
	if !ok {
		return gl.href()
	}
	return gl.href("open", strconv.Itoa(item.ID), "step", direction)
}

// CloseHref links to the closed viewer, naming the trigger.
func (gl *Gallery) CloseHref(trigger gallery.CloseTrigger) string {
	item, ok := gl.Viewer.Selected()
	if !ok {
		return gl.href()
	}
	return gl.href("open", strconv.Itoa(item.ID), "close", string(trigger))
}

// FilterHref links to the grid filtered by category.
func (gl *Gallery) FilterHref(category models.Category) string {
	if category == models.CategoryAll {
		return gl.Path
	}
	return gl.Path + "?" + url.Values{"category": {string(category)}}.Encode()
}

// ImageURL returns the thumbnail URL for raster images and the original
// path for anything else.
func ImageURL(path, size string) string {
	if !strings.HasPrefix(path, "/") {
		return path
	}
	switch strings.ToLower(extension(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return "/media/thumb/" + size + path
	default:
		return path
	}
}

func extension(path string) string {
	slash := strings.LastIndex(path, "/")
	dot := strings.LastIndex(path, ".")
	if dot <= slash {
		return ""
	}
	return path[dot:]
}

// thumb and medium are the two sizes pages ask for.
const (
	thumb  = media.SizeThumb
	medium = media.SizeMedium
)
