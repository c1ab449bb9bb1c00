package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"
	"techforge_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ScrollEvent is the client event that scrolls to a page section after a swap
const ScrollEvent = "scroll-to-section"

type categoryResponse struct {
	models.Category
	Available int64 `json:"available"`
}

// GetCategoriesHandler lists the catalog categories with their active
// listing counts. Counts are zero when the database cannot be read.
func GetCategoriesHandler(c echo.Context) error {
	counts, err := catalogService().CategoryCounts(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("Category counts unavailable: %v", err)
	}

	out := make([]categoryResponse, 0)
	for _, category := range models.Categories() {
		out = append(out, categoryResponse{Category: category, Available: counts[category.ID]})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": out,
	})
}

// GetProjectsHandler returns the listings of one category as JSON
func GetProjectsHandler(c echo.Context) error {
	categoryID := c.Param("category")
	if !models.IsValidCategory(categoryID) {
		return jsonError(c, http.StatusNotFound, "Unknown category")
	}

	listings, err := catalogService().ListingsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		log.Printf("[CATALOG] %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to load projects")
	}
	if listings == nil {
		listings = []models.ProjectListing{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"projects": listings,
	})
}

// ProjectModalHandler renders the modal for a category. A failed read
// still opens the modal, with the empty state.
func ProjectModalHandler(c echo.Context) error {
	ctx := c.Request().Context()
	category, ok := models.GetCategory(c.Param("category"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}

	Analytics.Record(analytics.ProjectView(category.ID).WithClient(clientID(c)))

	listings, err := catalogService().ListingsByCategory(ctx, category.ID)
	if err != nil {
		log.Printf("[CATALOG] %v", err)
	}

	return render(c, http.StatusOK, partials.ProjectModal(ctx, category, listings, err != nil))
}

// CloseModalHandler empties the modal. With ?listing=<id> it is the Get
// Project hand-off: the click is recorded, the contact project type is
// preselected and the page scrolls to the contact section once the swap
// settles.
func CloseModalHandler(c echo.Context) error {
	ctx := c.Request().Context()
	raw := c.QueryParam("listing")
	if raw == "" {
		return render(c, http.StatusOK, partials.ModalClosed(ctx, ""))
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid listing")
	}

	prefill := ""
	listing, err := catalogService().GetListing(ctx, id)
	switch {
	case err == nil:
		if category, ok := models.GetCategory(listing.CategoryID); ok {
			prefill = category.ProjectType
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Printf("[CATALOG] Get Project for missing listing %d", id)
	default:
		log.Printf("[CATALOG] Failed to load listing %d: %v", id, err)
	}

	Analytics.Record(analytics.ButtonClick("Get Project", "Projects Modal").WithClient(clientID(c)))
	setScrollTrigger(c, "contact")

	return render(c, http.StatusOK, partials.ModalClosed(ctx, prefill))
}

func setScrollTrigger(c echo.Context, section string) {
	payload, err := json.Marshal(map[string]map[string]string{
		ScrollEvent: {"target": section},
	})
	if err != nil {
		return
	}
	c.Response().Header().Set("HX-Trigger-After-Settle", string(payload))
}
