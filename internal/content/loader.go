package content

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Loader reads site content from disk
type Loader struct {
	path string
}

// NewLoader creates a loader for a site file (.yaml, .yml or .json)
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load reads the site file, pulls in external item files and validates
// the result.
func (l *Loader) Load() (*Site, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var site Site
	ext := strings.ToLower(filepath.Ext(l.path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &site)
	case ".json":
		err = json.Unmarshal(data, &site)
	default:
		return nil, fmt.Errorf("unsupported content format: %s (supported: .yaml, .yml, .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", l.path, err)
	}

	base := filepath.Dir(l.path)
	for i := range site.Catalogs {
		catalog := &site.Catalogs[i]
		if catalog.ItemsFile == "" {
			continue
		}
		itemsPath := resolveItemsPath(base, catalog.ItemsFile)
		items, err := LoadItems(itemsPath)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", catalog.Name, err)
		}
		slog.Debug("Loaded catalog items from file", "catalog", catalog.Name, "path", itemsPath, "items", len(items))
		catalog.Items = items
	}

	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", l.path, err)
	}
	return &site, nil
}

func resolveItemsPath(base, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(base, file)
}

// ItemsPaths lists the resolved item files a site loaded from sitePath
// depends on.
func ItemsPaths(sitePath string, site *Site) []string {
	if site == nil {
		return nil
	}
	base := filepath.Dir(sitePath)
	var paths []string
	for _, catalog := range site.Catalogs {
		if catalog.ItemsFile != "" {
			paths = append(paths, resolveItemsPath(base, catalog.ItemsFile))
		}
	}
	return paths
}

// LoadItems reads catalog items from a JSONL, JSON, YAML or Parquet file
func LoadItems(path string) ([]models.CatalogItem, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return loadParquet(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".json":
		return loadDocument(path, json.Unmarshal)
	case ".yaml", ".yml":
		return loadDocument(path, yaml.Unmarshal)
	default:
		return nil, fmt.Errorf("unsupported items format: %s (supported: .parquet, .jsonl, .json, .yaml)", ext)
	}
}

func loadDocument(path string, unmarshal func([]byte, any) error) ([]models.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	var items []models.CatalogItem
	if err := unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items file %s: %w", path, err)
	}
	return items, nil
}

// loadJSONL reads one item per line
func loadJSONL(path string) ([]models.CatalogItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer file.Close()

	var items []models.CatalogItem
	scanner := bufio.NewScanner(file)

	// descriptions can run long
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var item models.CatalogItem
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading items: %w", err)
	}

	return items, nil
}

// loadParquet reads items from a Parquet file
func loadParquet(path string) ([]models.CatalogItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "path", path, "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[models.CatalogItem](pf)
	defer reader.Close()

	items := make([]models.CatalogItem, 0, pf.NumRows())
	for {
		// a fresh batch each time so tag slices are not shared between reads
		rows := make([]models.CatalogItem, 64)
		n, err := reader.Read(rows)
		items = append(items, rows[:n]...)
		if err != nil {
			break
		}
	}

	return items, nil
}
