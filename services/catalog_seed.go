package services

import (
	_ "embed"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"techforge_app_go/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Listings []catalogEntry `yaml:"listings"`
}

type catalogEntry struct {
	Slug         string   `yaml:"slug"`
	Category     string   `yaml:"category"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Difficulty   string   `yaml:"difficulty"`
	Amount       string   `yaml:"amount"`
}

// ParseCatalog decodes a catalog YAML document into listings. Display order
// follows the order of entries within each category.
func ParseCatalog(data []byte) ([]models.ProjectListing, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	order := make(map[string]int)
	seen := make(map[string]bool)
	listings := make([]models.ProjectListing, 0, len(file.Listings))
	for i, e := range file.Listings {
		if e.Title == "" {
			return nil, fmt.Errorf("catalog entry %d: title is required", i)
		}
		if e.Slug == "" {
			e.Slug = uniqueSlug(Slugify(e.Title), seen)
		} else if seen[e.Slug] {
			return nil, fmt.Errorf("catalog entry %d: duplicate slug %q", i, e.Slug)
		}
		seen[e.Slug] = true
		if !models.IsValidCategory(e.Category) {
			return nil, fmt.Errorf("catalog entry %q: unknown category %q", e.Slug, e.Category)
		}
		if !models.IsValidDifficulty(e.Difficulty) {
			return nil, fmt.Errorf("catalog entry %q: unknown difficulty %q", e.Slug, e.Difficulty)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(e.Amount))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: invalid amount: %w", e.Slug, err)
		}

		listings = append(listings, models.ProjectListing{
			CategoryID:   e.Category,
			Slug:         e.Slug,
			Title:        e.Title,
			Description:  e.Description,
			Technologies: e.Technologies,
			Difficulty:   e.Difficulty,
			Amount:       amount,
			DisplayOrder: order[e.Category],
			IsActive:     true,
		})
		order[e.Category]++
	}
	return listings, nil
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify creates a URL-friendly slug from a title
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "-")
	}
	return slug
}

func uniqueSlug(slug string, taken map[string]bool) string {
	original := slug
	for counter := 1; taken[slug]; counter++ {
		slug = original + "-" + strconv.Itoa(counter)
	}
	return slug
}

// SeedCatalog inserts the embedded project listings. Listings that already
// exist (by slug) are left untouched.
func SeedCatalog(db *gorm.DB) error {
	return SeedCatalogFrom(db, defaultCatalog)
}

// SeedCatalogFrom inserts listings from a catalog YAML document
func SeedCatalogFrom(db *gorm.DB, data []byte) error {
	listings, err := ParseCatalog(data)
	if err != nil {
		return err
	}

	created := 0
	for _, listing := range listings {
		var existing models.ProjectListing
		if err := db.Where("slug = ?", listing.Slug).First(&existing).Error; err == nil {
			continue
		}

		if err := db.Create(&listing).Error; err != nil {
			return fmt.Errorf("failed to create listing %s: %w", listing.Slug, err)
		}
		created++
	}

	log.Printf("[SEED] Catalog seeded: %d new listings, %d already present", created, len(listings)-created)
	return nil
}
