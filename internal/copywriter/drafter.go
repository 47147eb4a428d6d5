package copywriter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/models"
)

const systemPrompt = `You write short copy for the website of Balqony Sitraalu, a film production studio in Hyderabad.
Write two sentences, present tense, concrete and visual. No hashtags, no emoji, no quotation marks.
Inline markdown emphasis is allowed sparingly.`

// Drafter fills in missing item descriptions for an editor to review.
type Drafter struct {
	provider    Provider
	model       string
	temperature float64
}

func NewDrafter(provider Provider, model string, temperature float64) *Drafter {
	return &Drafter{
		provider:    provider,
		model:       model,
		temperature: temperature,
	}
}

// Prompt builds the generation prompt for one item.
func Prompt(catalog string, item models.CatalogItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Catalog: %s\nTitle: %s\n", catalog, item.Title)
	if item.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", item.Category)
	}
	if item.Client != "" {
		fmt.Fprintf(&sb, "Client: %s\n", item.Client)
	}
	if item.Year != "" {
		fmt.Fprintf(&sb, "Year: %s\n", item.Year)
	}
	if len(item.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(item.Tags, ", "))
	}
	if len(item.Awards) > 0 {
		fmt.Fprintf(&sb, "Awards: %s\n", strings.Join(item.Awards, ", "))
	}
	sb.WriteString("Write the description.")
	return sb.String()
}

// Describe returns a copy of the catalog's items with empty descriptions
// drafted. With overwrite set every description is redrafted. The count
// of drafted items is returned alongside.
func (d *Drafter) Describe(ctx context.Context, catalog *models.Catalog, overwrite bool) ([]models.CatalogItem, int, error) {
	items := make([]models.CatalogItem, len(catalog.Items))
	copy(items, catalog.Items)

	drafted := 0
	for i, item := range items {
		if item.Description != "" && !overwrite {
			continue
		}

		text, err := d.provider.Generate(ctx, Request{
			Model:       d.model,
			Temperature: d.temperature,
			System:      systemPrompt,
			Prompt:      Prompt(catalog.Name, item),
		})
		if err != nil {
			return nil, drafted, fmt.Errorf("failed to draft description for %s item %d: %w", catalog.Name, item.ID, err)
		}

		items[i].Description = strings.TrimSpace(text)
		drafted++
		slog.Info("Drafted description", "catalog", catalog.Name, "id", item.ID, "title", item.Title, "length", len(items[i].Description))
	}
	return items, drafted, nil
}
