package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Format is an items file encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSONL   Format = "jsonl"
	FormatParquet Format = "parquet"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".jsonl":
		return FormatJSONL, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported export format for %s", path)
	}
}

// WriteItems encodes items to w.
func WriteItems(w io.Writer, format Format, items []models.CatalogItem) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("failed to encode item %d: %w", item.ID, err)
			}
		}
		return nil
	case FormatParquet:
		writer := parquet.NewGenericWriter[models.CatalogItem](w)
		if _, err := writer.Write(items); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("failed to close parquet writer: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportItems writes items to path, choosing the format from its extension.
func ExportItems(path string, items []models.CatalogItem) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteItems(file, format, items); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
