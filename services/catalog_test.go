package services

import (
	"context"
	"sync"
	"testing"

	"techforge_app_go/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServicesTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProjectListing{}, &models.Lead{}))
	return db
}

func TestParseCatalog(t *testing.T) {
	t.Run("Embedded catalog is valid", func(t *testing.T) {
		listings, err := ParseCatalog(defaultCatalog)
		require.NoError(t, err)
		assert.NotEmpty(t, listings)

		covered := map[string]bool{}
		for _, l := range listings {
			covered[l.CategoryID] = true
			assert.NotEmpty(t, l.Slug)
			assert.True(t, l.Amount.IsPositive())
		}
		for _, c := range models.Categories() {
			assert.True(t, covered[c.ID], "category %s has no listings", c.ID)
		}
	})

	t.Run("Display order per category", func(t *testing.T) {
		data := []byte(`
listings:
  - {category: ai-ml, title: First, difficulty: Beginner, amount: "100"}
  - {category: database, title: Other, difficulty: Expert, amount: "200"}
  - {category: ai-ml, title: Second, difficulty: advanced, amount: "150.50"}
`)
		listings, err := ParseCatalog(data)
		require.NoError(t, err)
		require.Len(t, listings, 3)
		assert.Equal(t, 0, listings[0].DisplayOrder)
		assert.Equal(t, 0, listings[1].DisplayOrder)
		assert.Equal(t, 1, listings[2].DisplayOrder)
		assert.Equal(t, "first", listings[0].Slug)
		assert.True(t, decimal.RequireFromString("150.5").Equal(listings[2].Amount))
	})

	t.Run("Generated slugs stay unique", func(t *testing.T) {
		data := []byte(`
listings:
  - {category: ai-ml, title: "Chat Bot!", difficulty: Beginner, amount: "1"}
  - {category: ai-ml, title: "Chat  Bot", difficulty: Beginner, amount: "1"}
`)
		listings, err := ParseCatalog(data)
		require.NoError(t, err)
		assert.Equal(t, "chat-bot", listings[0].Slug)
		assert.Equal(t, "chat-bot-1", listings[1].Slug)
	})

	invalid := map[string]string{
		"Unknown category":   `listings: [{category: blockchain, title: X, difficulty: Beginner, amount: "1"}]`,
		"Unknown difficulty": `listings: [{category: ai-ml, title: X, difficulty: Legendary, amount: "1"}]`,
		"Bad amount":         `listings: [{category: ai-ml, title: X, difficulty: Beginner, amount: "cheap"}]`,
		"Missing title":      `listings: [{category: ai-ml, difficulty: Beginner, amount: "1"}]`,
		"Duplicate slug":     `listings: [{slug: a, category: ai-ml, title: X, difficulty: Beginner, amount: "1"}, {slug: a, category: ai-ml, title: Y, difficulty: Beginner, amount: "1"}]`,
		"Not YAML":           `listings: [`,
	}
	for name, doc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "aiml-chatbot-for-colleges", Slugify("AI/ML  Chatbot for Colleges"))
	assert.Equal(t, "hello", Slugify("--Hello--"))
	assert.LessOrEqual(t, len(Slugify("a very long project title that keeps going well past the fifty character limit")), 50)
}

func TestSeedCatalog(t *testing.T) {
	db := setupServicesTestDB(t)

	// 1. Initial seed
	require.NoError(t, SeedCatalog(db))
	expected, _ := ParseCatalog(defaultCatalog)

	var count int64
	db.Model(&models.ProjectListing{}).Count(&count)
	assert.Equal(t, int64(len(expected)), count)

	// 2. Idempotency
	require.NoError(t, SeedCatalog(db))
	db.Model(&models.ProjectListing{}).Count(&count)
	assert.Equal(t, int64(len(expected)), count)
}

// memoryCache is a ListingCache backed by a map
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]models.ProjectListing
	hits int
}

func (m *memoryCache) Get(ctx context.Context, id string) ([]models.ProjectListing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.data[id]
	if ok {
		m.hits++
	}
	return l, ok
}

func (m *memoryCache) Set(ctx context.Context, id string, l []models.ProjectListing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = l
}

func (m *memoryCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]models.ProjectListing{}
	return nil
}

func seedListings(t *testing.T, db *gorm.DB) {
	t.Helper()
	listings := []models.ProjectListing{
		{CategoryID: models.CategoryAIML, Slug: "b", Title: "Second", Difficulty: models.DifficultyAdvanced, Amount: decimal.NewFromInt(2000), DisplayOrder: 2, IsActive: true},
		{CategoryID: models.CategoryAIML, Slug: "a", Title: "First", Difficulty: models.DifficultyBeginner, Amount: decimal.NewFromInt(125000), DisplayOrder: 1, IsActive: true},
		{CategoryID: models.CategoryAIML, Slug: "c", Title: "Hidden", Difficulty: models.DifficultyBeginner, Amount: decimal.NewFromInt(10), DisplayOrder: 0, IsActive: true},
		{CategoryID: models.CategoryDatabase, Slug: "d", Title: "DB", Difficulty: models.DifficultyExpert, Amount: decimal.NewFromInt(3000), IsActive: true},
	}
	for i := range listings {
		require.NoError(t, db.Create(&listings[i]).Error)
	}
	// gorm skips false on create because of the column default
	require.NoError(t, db.Model(&models.ProjectListing{}).Where("slug = ?", "c").Update("is_active", false).Error)
}

func TestListingsByCategory(t *testing.T) {
	db := setupServicesTestDB(t)
	seedListings(t, db)
	ctx := context.Background()

	t.Run("Active listings in display order", func(t *testing.T) {
		svc := NewCatalogService(db, nil)
		listings, err := svc.ListingsByCategory(ctx, models.CategoryAIML)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, "First", listings[0].Title)
		assert.Equal(t, "₹1,25,000", listings[0].Price)
		assert.Equal(t, "Second", listings[1].Title)
	})

	t.Run("Unknown category is empty", func(t *testing.T) {
		svc := NewCatalogService(db, nil)
		listings, err := svc.ListingsByCategory(ctx, "quantum")
		require.NoError(t, err)
		assert.NotNil(t, listings)
		assert.Empty(t, listings)
	})

	t.Run("Uses the cache", func(t *testing.T) {
		cache := &memoryCache{data: map[string][]models.ProjectListing{}}
		svc := NewCatalogService(db, cache)

		first, err := svc.ListingsByCategory(ctx, models.CategoryDatabase)
		require.NoError(t, err)
		second, err := svc.ListingsByCategory(ctx, models.CategoryDatabase)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, first, second)
	})

	t.Run("Category counts", func(t *testing.T) {
		counts, err := NewCatalogService(db, nil).CategoryCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[models.CategoryAIML])
		assert.Equal(t, int64(1), counts[models.CategoryDatabase])
		assert.Zero(t, counts[models.CategoryMobileApps])
	})

	t.Run("Get listing", func(t *testing.T) {
		svc := NewCatalogService(db, nil)
		all, _ := svc.ListingsByCategory(ctx, models.CategoryDatabase)
		got, err := svc.GetListing(ctx, all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "DB", got.Title)

		_, err = svc.GetListing(ctx, 99999)
		assert.Error(t, err)
	})
}

func TestListingCacheEncoding(t *testing.T) {
	in := []models.ProjectListing{{
		ID:           7,
		CategoryID:   models.CategoryAIML,
		Slug:         "chatbot",
		Title:        "Chatbot",
		Technologies: []string{"Python"},
		Difficulty:   models.DifficultyIntermediate,
		DisplayOrder: 3,
		Price:        "₹1,500",
	}}

	data, err := encodeListings(in)
	require.NoError(t, err)
	out, err := decodeListings(data)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].ID)
	assert.Equal(t, models.CategoryAIML, out[0].CategoryID)
	assert.Equal(t, "chatbot", out[0].Slug)
	assert.Equal(t, 3, out[0].DisplayOrder)
	assert.Equal(t, "₹1,500", out[0].Price)
	assert.True(t, out[0].IsActive)

	_, err = decodeListings([]byte("not json"))
	assert.Error(t, err)

	assert.Equal(t, "catalog:listings:ai-ml", listingCacheKey(models.CategoryAIML))
}

func TestNewRedisListingCache_BadURL(t *testing.T) {
	_, err := NewRedisListingCache("not-a-redis-url", 0)
	assert.Error(t, err)
}
