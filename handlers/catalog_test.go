package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategoriesHandler(t *testing.T) {
	setupTestDB(t)
	createListing(t, models.CategoryAIML, "Chatbot", 1)
	createListing(t, models.CategoryAIML, "Image Classifier", 2)

	_, c, rec := setupEcho(http.MethodGet, "/api/categories", nil)
	require.NoError(t, GetCategoriesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success    bool `json:"success"`
		Categories []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Available int64  `json:"available"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Categories, len(models.Categories()))
	assert.Equal(t, models.CategoryAIML, body.Categories[0].ID)
	assert.Equal(t, int64(2), body.Categories[0].Available)
	assert.Equal(t, int64(0), body.Categories[1].Available)
}

func TestGetProjectsHandler(t *testing.T) {
	setupTestDB(t)
	createListing(t, models.CategoryDatabase, "Library System", 2)
	createListing(t, models.CategoryDatabase, "Inventory Tracker", 1)

	t.Run("Known category in display order", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/projects/database", nil)
		c.SetParamNames("category")
		c.SetParamValues(models.CategoryDatabase)

		require.NoError(t, GetProjectsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success  bool `json:"success"`
			Projects []struct {
				Title string `json:"title"`
				Price string `json:"price"`
			} `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Projects, 2)
		assert.Equal(t, "Inventory Tracker", body.Projects[0].Title)
		assert.Equal(t, "₹1,500", body.Projects[0].Price)
	})

	t.Run("Empty category", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/projects/cybersecurity", nil)
		c.SetParamNames("category")
		c.SetParamValues(models.CategoryCybersecurity)

		require.NoError(t, GetProjectsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"projects":[]`)
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/projects/quantum", nil)
		c.SetParamNames("category")
		c.SetParamValues("quantum")

		require.NoError(t, GetProjectsHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})
}

func TestProjectModalHandler(t *testing.T) {
	setupTestDB(t)
	mem := setupAnalytics(t)
	createListing(t, models.CategoryMobileApps, "Expense Tracker", 1)

	t.Run("Renders listings and records the view", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/projects/mobile-apps", nil)
		c.SetParamNames("category")
		c.SetParamValues(models.CategoryMobileApps)

		require.NoError(t, ProjectModalHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
		assert.Contains(t, rec.Body.String(), "Mobile Apps")
		assert.Contains(t, rec.Body.String(), "Expense Tracker")

		events := mem.Events()
		require.Len(t, events, 1)
		assert.Equal(t, analytics.KindProjectView, events[0].Kind)
		assert.Equal(t, models.CategoryMobileApps, events[0].Label)
	})

	t.Run("Empty category", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/projects/full-stack", nil)
		c.SetParamNames("category")
		c.SetParamValues(models.CategoryFullStack)

		require.NoError(t, ProjectModalHandler(c))
		assert.Contains(t, rec.Body.String(), "No projects available")
	})

	t.Run("Unknown category", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/projects/quantum", nil)
		c.SetParamNames("category")
		c.SetParamValues("quantum")

		err := ProjectModalHandler(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestCloseModalHandler(t *testing.T) {
	setupTestDB(t)
	listing := createListing(t, models.CategoryAIML, "Chatbot", 1)

	t.Run("Plain close", func(t *testing.T) {
		mem := setupAnalytics(t)
		_, c, rec := setupEcho(http.MethodGet, "/projects/close", nil)

		require.NoError(t, CloseModalHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get("HX-Trigger-After-Settle"))
		assert.Empty(t, mem.Events())
	})

	t.Run("Get Project hands off to the contact form", func(t *testing.T) {
		mem := setupAnalytics(t)
		_, c, rec := setupEcho(http.MethodGet, "/projects/close?listing="+strconv.Itoa(listing.ID), nil)

		require.NoError(t, CloseModalHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `hx-swap-oob="outerHTML"`)
		assert.Contains(t, rec.Body.String(), `<option value="AI/ML" selected>`)
		assert.JSONEq(t, `{"scroll-to-section":{"target":"contact"}}`, rec.Header().Get("HX-Trigger-After-Settle"))

		events := mem.Events()
		require.Len(t, events, 1)
		assert.Equal(t, analytics.KindButtonClick, events[0].Kind)
		assert.Equal(t, "Get Project - Projects Modal", events[0].Label)
	})

	t.Run("Missing listing still scrolls", func(t *testing.T) {
		setupAnalytics(t)
		_, c, rec := setupEcho(http.MethodGet, "/projects/close?listing=999", nil)

		require.NoError(t, CloseModalHandler(c))
		assert.Empty(t, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("HX-Trigger-After-Settle"))
	})

	t.Run("Invalid listing id", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/projects/close?listing=abc", nil)

		err := CloseModalHandler(c)
		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}
