package gallery

import (
	"strings"

	"github.com/balqony-sitraalu/studio/internal/models"
)

// VisibleItems returns the items shown for the active category. For
// CategoryAll the input slice is returned as is; otherwise the matching
// items keep their relative order. An unknown category yields no items.
func VisibleItems(items []models.CatalogItem, active models.Category) []models.CatalogItem {
	if active == models.CategoryAll {
		return items
	}

	visible := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Category == active {
			visible = append(visible, item)
		}
	}
	return visible
}

// ParseCategory resolves a user supplied value against the catalog's
// categories, case-insensitively. Anything unrecognised selects All.
func ParseCategory(catalog *models.Catalog, value string) models.Category {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.CategoryAll
	}
	for _, category := range catalog.Categories {
		if strings.EqualFold(string(category), value) {
			return category
		}
	}
	return models.CategoryAll
}

// FilterOptions lists the selectable filter values, All first.
func FilterOptions(catalog *models.Catalog) []models.Category {
	options := make([]models.Category, 0, len(catalog.Categories)+1)
	options = append(options, models.CategoryAll)
	return append(options, catalog.Categories...)
}
