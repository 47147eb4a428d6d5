package models

// Category is a catalog's filter value. Each catalog declares a closed set.
type Category string

// CategoryAll is the sentinel that matches every item.
const CategoryAll Category = "All"

// CatalogItem represents one displayable unit of content: a project, a team
// member, a film scene or a feature card.
type CatalogItem struct {
	ID            int      `json:"id" yaml:"id" parquet:"id"`
	Title         string   `json:"title" yaml:"title" parquet:"title"`
	Category      Category `json:"category,omitempty" yaml:"category,omitempty" parquet:"category"`
	Client        string   `json:"client,omitempty" yaml:"client,omitempty" parquet:"client"`
	Year          string   `json:"year,omitempty" yaml:"year,omitempty" parquet:"year"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty" parquet:"description"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty" parquet:"image"`
	ExpandedImage string   `json:"expanded_image,omitempty" yaml:"expanded_image,omitempty" parquet:"expanded_image"`
	ExpandedText  string   `json:"expanded_text,omitempty" yaml:"expanded_text,omitempty" parquet:"expanded_text"`
	VideoURL      string   `json:"video_url,omitempty" yaml:"video_url,omitempty" parquet:"video_url"`
	Link          string   `json:"link,omitempty" yaml:"link,omitempty" parquet:"link"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty" parquet:"tags,list"`
	Awards        []string `json:"awards,omitempty" yaml:"awards,omitempty" parquet:"awards,list"`
}

// Catalog is a named, ordered list of items with its closed category set.
type Catalog struct {
	Name       string        `json:"name" yaml:"name"`
	Categories []Category    `json:"categories,omitempty" yaml:"categories,omitempty"`
	ItemsFile  string        `json:"items_file,omitempty" yaml:"items_file,omitempty"`
	Items      []CatalogItem `json:"items" yaml:"items"`
}

// Index returns the position of id in the catalog, or -1.
func (c *Catalog) Index(id int) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Item returns the item with the given id.
func (c *Catalog) Item(id int) (CatalogItem, bool) {
	if i := c.Index(id); i >= 0 {
		return c.Items[i], true
	}
	return CatalogItem{}, false
}

// HasCategory reports whether category belongs to the catalog's closed set.
func (c *Catalog) HasCategory(category Category) bool {
	for _, known := range c.Categories {
		if known == category {
			return true
		}
	}
	return false
}

// ContactCard is one block of the contact information list
type ContactCard struct {
	Icon    string   `json:"icon" yaml:"icon"`
	Title   string   `json:"title" yaml:"title"`
	Details []string `json:"details" yaml:"details"`
}

// Option is a select choice on the contact form
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}
