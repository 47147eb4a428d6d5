package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/copywriter"
	"github.com/balqony-sitraalu/studio/internal/gallery"
	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export the site catalogs",
		Long: `Tools for the work, team, scene and feature catalogs.

Catalogs are read from content.path, or from the bundled content when none
is set. Exports write YAML, JSONL or Parquet items files that a content
file can reference through items_file.`,
	}

	cmd.AddCommand(newCatalogListCmd(opts))
	cmd.AddCommand(newCatalogExportCmd(opts))
	cmd.AddCommand(newCatalogDescribeCmd(opts))

	return cmd
}

func loadSite(opts *rootOptions) (*content.Site, error) {
	store, err := content.NewStore(opts.cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return store.Site(), nil
}

func newCatalogListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list [catalog]",
		Short: "List catalogs, or the items of one catalog",
		Example: `  # Summarise every catalog
  studio catalog list

  # List documentaries
  studio catalog list work --category documentary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := loadSite(opts)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listCatalogs(cmd.OutOrStdout(), site)
			}
			catalog, err := site.Catalog(args[0])
			if err != nil {
				return err
			}
			return listItems(cmd.OutOrStdout(), catalog, gallery.ParseCategory(catalog, category))
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list items in this category")

	return cmd
}

func listCatalogs(w io.Writer, site *content.Site) error {
	for _, catalog := range site.Catalogs {
		categories := make([]string, len(catalog.Categories))
		for i, c := range catalog.Categories {
			categories[i] = string(c)
		}
		if _, err := fmt.Fprintf(w, "%-10s %3d items  %s\n", catalog.Name, len(catalog.Items), strings.Join(categories, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func listItems(w io.Writer, catalog *models.Catalog, category models.Category) error {
	items := gallery.VisibleItems(catalog.Items, category)
	fmt.Fprintf(w, "%s (%s): %d of %d items\n", catalog.Name, category, len(items), len(catalog.Items))
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, item := range items {
		line := fmt.Sprintf("%3d  %s", item.ID, item.Title)
		if item.Category != "" {
			line += "  [" + string(item.Category) + "]"
		}
		if item.Year != "" {
			line += "  " + item.Year
		}
		if item.Description == "" {
			line += "  (no description)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newCatalogExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <catalog>",
		Short: "Export a catalog's items to YAML, JSONL or Parquet",
		Example: `  studio catalog export work --out ./work.parquet
  studio catalog export team --out - --format jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := loadSite(opts)
			if err != nil {
				return err
			}
			catalog, err := site.Catalog(args[0])
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			return writeCatalog(cmd.OutOrStdout(), out, content.Format(format), catalog.Items)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; the extension picks the format. Use - for stdout")
	cmd.Flags().String("format", string(content.FormatYAML), "Format when writing to stdout: yaml or jsonl")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func writeCatalog(stdout io.Writer, out string, format content.Format, items []models.CatalogItem) error {
	if out == "-" {
		if format == content.FormatParquet {
			return fmt.Errorf("parquet output needs a file")
		}
		return content.WriteItems(stdout, format, items)
	}
	if err := content.ExportItems(out, items); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d items to %s\n", len(items), out)
	return nil
}

func newCatalogDescribeCmd(opts *rootOptions) *cobra.Command {
	var out string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "describe <catalog>",
		Short: "Draft missing item descriptions with an LLM",
		Long: `Drafts descriptions for items that have none and writes the whole catalog
to an items file for an editor to review. The content file is never changed.

The provider comes from copywriter.provider: gemini (GEMINI_API_KEY),
openai (OPENAI_API_KEY) or a local ollama (OLLAMA_URL).`,
		Example: `  studio catalog describe work --out ./work.drafts.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := loadSite(opts)
			if err != nil {
				return err
			}
			catalog, err := site.Catalog(args[0])
			if err != nil {
				return err
			}
			provider, err := copywriter.NewProvider(opts.cfg.Copywriter.Provider, copywriter.Keys{
				GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
				OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
				OpenAIURL:    os.Getenv("OPENAI_BASE_URL"),
				OllamaURL:    os.Getenv("OLLAMA_URL"),
			})
			if err != nil {
				return err
			}
			return executeDescribe(cmd.Context(), cmd.OutOrStdout(), provider, opts, catalog, out, overwrite)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output items file, or - for YAML on stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Redraft descriptions that already exist")

	return cmd
}

func executeDescribe(ctx context.Context, w io.Writer, provider copywriter.Provider, opts *rootOptions, catalog *models.Catalog, out string, overwrite bool) error {
	drafter := copywriter.NewDrafter(provider, opts.cfg.Copywriter.Model, opts.cfg.Copywriter.Temperature)
	items, drafted, err := drafter.Describe(ctx, catalog, overwrite)
	if err != nil {
		return err
	}
	if drafted == 0 {
		fmt.Fprintf(w, "Every item in %s already has a description\n", catalog.Name)
		return nil
	}
	return writeCatalog(w, out, content.FormatYAML, items)
}
