package handlers

import (
	"log"
	"net/http"

	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/middleware"
	"techforge_app_go/templates/components"
	"techforge_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const (
	siteTitle       = "TechForge - Premium Student Projects"
	siteDescription = "Production-ready student projects for AI/ML, Web Development, Full-Stack, Mobile Apps, Database and Cybersecurity, with custom builds on request."
)

func siteSettings(cfg *config.Config, csrfToken string) pages.Settings {
	return pages.Settings{
		Title:            siteTitle,
		Description:      siteDescription,
		AnimationPreset:  cfg.AnimationPreset,
		HeaderOffset:     cfg.HeaderOffsetPx,
		SettleDelay:      cfg.ScrollSettleDelay,
		TurnstileSiteKey: cfg.TurnstileSiteKey,
		CSRFToken:        csrfToken,
	}
}

// LandingHandler renders the single page site. ?submitted=1 shows the
// thank-you state after a form post without JavaScript.
func LandingHandler(c echo.Context) error {
	cfg := getConfig(c)
	form := components.ContactFormData{Submitted: c.QueryParam("submitted") == "1"}
	return render(c, http.StatusOK, pages.Landing(c.Request().Context(), siteSettings(cfg, middleware.GetCSRFToken(c)), form))
}

// HealthHandler reports whether the database answers
func HealthHandler(c echo.Context) error {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		log.Printf("[WARNING] Health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
