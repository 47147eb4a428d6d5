package content

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/balqony-sitraalu/studio/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog names shipped with the site.
const (
	CatalogWork     = "work"
	CatalogTeam     = "team"
	CatalogScenes   = "scenes"
	CatalogFeatures = "features"
)

//go:embed default_site.yaml
var defaultSiteYAML []byte

// Site is all static content of the studio site.
type Site struct {
	Name            string           `json:"name" yaml:"name"`
	Description     string           `json:"description" yaml:"description"`
	ThemeColor      string           `json:"theme_color" yaml:"theme_color"`
	Hero            Hero             `json:"hero" yaml:"hero"`
	Video           Video            `json:"video" yaml:"video"`
	FeaturesHeading string           `json:"features_heading" yaml:"features_heading"`
	About           About            `json:"about" yaml:"about"`
	Film            Film             `json:"film" yaml:"film"`
	Contact         ContactPage      `json:"contact" yaml:"contact"`
	Links           Links            `json:"links" yaml:"links"`
	Footer          Footer           `json:"footer" yaml:"footer"`
	Catalogs        []models.Catalog `json:"catalogs" yaml:"catalogs"`
}

type Hero struct {
	Line1           string   `json:"line1" yaml:"line1"`
	Line2           string   `json:"line2" yaml:"line2"`
	Logo            string   `json:"logo" yaml:"logo"`
	LogoAlt         string   `json:"logo_alt" yaml:"logo_alt"`
	Background      string   `json:"background" yaml:"background"`
	MergeIntoHeader bool     `json:"merge_into_header" yaml:"merge_into_header"`
	Taglines        []string `json:"taglines" yaml:"taglines"`
}

type Video struct {
	Source string `json:"source" yaml:"source"`
	Poster string `json:"poster" yaml:"poster"`
	Logo   string `json:"logo" yaml:"logo"`
	Vision string `json:"vision" yaml:"vision"`
}

type About struct {
	Heading      string   `json:"heading" yaml:"heading"`
	Intro        string   `json:"intro" yaml:"intro"`
	StoryImage   string   `json:"story_image" yaml:"story_image"`
	Story        []string `json:"story" yaml:"story"`
	TeamIntro    string   `json:"team_intro" yaml:"team_intro"`
	FavoriteGear string   `json:"favorite_gear" yaml:"favorite_gear"`
	OffSet       string   `json:"off_set" yaml:"off_set"`
}

type Film struct {
	Title     string `json:"title" yaml:"title"`
	HeroImage string `json:"hero_image" yaml:"hero_image"`
	CTA       string `json:"cta" yaml:"cta"`
}

type ContactPage struct {
	Heading      string               `json:"heading" yaml:"heading"`
	Intro        string               `json:"intro" yaml:"intro"`
	MapLabel     string               `json:"map_label" yaml:"map_label"`
	Cards        []models.ContactCard `json:"cards" yaml:"cards"`
	ProjectTypes []models.Option      `json:"project_types" yaml:"project_types"`
	Budgets      []models.Option      `json:"budgets" yaml:"budgets"`
	Timelines    []models.Option      `json:"timelines" yaml:"timelines"`
}

type Links struct {
	ScheduleCall string `json:"schedule_call" yaml:"schedule_call"`
	Quote        string `json:"quote" yaml:"quote"`
	Map          string `json:"map" yaml:"map"`
}

type Social struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

type Footer struct {
	Phone     string   `json:"phone" yaml:"phone"`
	Email     string   `json:"email" yaml:"email"`
	City      string   `json:"city" yaml:"city"`
	Copyright string   `json:"copyright" yaml:"copyright"`
	Socials   []Social `json:"socials" yaml:"socials"`
}

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrDuplicateID     = errors.New("duplicate item id")
	ErrUnknownCategory = errors.New("item category not declared by catalog")
)

// Default returns the content bundled with the binary.
func Default() (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(defaultSiteYAML, &site); err != nil {
		return nil, fmt.Errorf("failed to parse bundled content: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Catalog returns the named catalog.
func (s *Site) Catalog(name string) (*models.Catalog, error) {
	for i := range s.Catalogs {
		if s.Catalogs[i].Name == name {
			return &s.Catalogs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
}

// Validate checks that ids are unique per catalog and that categories
// belong to the declared set.
func (s *Site) Validate() error {
	seenCatalogs := make(map[string]bool, len(s.Catalogs))
	for _, catalog := range s.Catalogs {
		if catalog.Name == "" {
			return errors.New("catalog without a name")
		}
		if seenCatalogs[catalog.Name] {
			return fmt.Errorf("catalog %s defined twice", catalog.Name)
		}
		seenCatalogs[catalog.Name] = true

		if err := ValidateItems(&catalog); err != nil {
			return err
		}
	}
	return nil
}

// ValidateItems checks a single catalog.
func ValidateItems(catalog *models.Catalog) error {
	ids := make(map[int]bool, len(catalog.Items))
	for _, item := range catalog.Items {
		if ids[item.ID] {
			return fmt.Errorf("%w: %s/%d", ErrDuplicateID, catalog.Name, item.ID)
		}
		ids[item.ID] = true

		if len(catalog.Categories) > 0 && !catalog.HasCategory(item.Category) {
			return fmt.Errorf("%w: %s/%d has %q", ErrUnknownCategory, catalog.Name, item.ID, item.Category)
		}
	}
	return nil
}
