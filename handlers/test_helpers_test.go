package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/models"
	"techforge_app_go/services/analytics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.ProjectListing{},
		&models.Lead{},
		&models.AnalyticsEvent{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB
	ListingCache = nil

	return testDB
}

// setupAnalytics swaps the server sink for an in-memory one
func setupAnalytics(t *testing.T) *analytics.Memory {
	mem := &analytics.Memory{}
	prev := Analytics
	Analytics = mem
	t.Cleanup(func() { Analytics = prev })
	return mem
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		EmailTestMode:     true,
		AnimationPreset:   "standard",
		HeaderOffsetPx:    80,
		AdminUser:         "admin",
		AdminPasswordHash: "",
	}
}

func createListing(t *testing.T, categoryID, title string, order int) models.ProjectListing {
	listing := models.ProjectListing{
		CategoryID:   categoryID,
		Slug:         categoryID + "-" + uuid.New().String()[:8],
		Title:        title,
		Description:  title + " description",
		Technologies: []string{"Go", "SQLite"},
		Difficulty:   models.DifficultyIntermediate,
		Amount:       decimal.NewFromInt(1500),
		DisplayOrder: order,
		IsActive:     true,
	}
	assert.NoError(t, db.DB.Create(&listing).Error)
	return listing
}
