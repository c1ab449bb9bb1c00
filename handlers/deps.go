package handlers

import (
	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/middleware"
	"techforge_app_go/services"
	"techforge_app_go/services/analytics"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ClientIDCookie holds the anonymous analytics id set by site.js
const ClientIDCookie = "tf_cid"

// Analytics receives the events the server records itself. Replaced at
// startup with the dispatcher.
var Analytics analytics.Sink = analytics.Nop{}

// ListingCache is the optional cache catalog reads go through
var ListingCache services.ListingCache

func catalogService() *services.CatalogService {
	return services.NewCatalogService(db.DB, ListingCache)
}

func leadService() *services.LeadService {
	return services.NewLeadService(db.DB)
}

func getConfig(c echo.Context) *config.Config {
	return c.Get("config").(*config.Config)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the caller talks JSON rather than HTML
func wantsJSON(c echo.Context) bool {
	return middleware.SkipJSONRequests(c) || c.Request().Header.Get(echo.HeaderAccept) == echo.MIMEApplicationJSON
}

func clientID(c echo.Context) string {
	cookie, err := c.Cookie(ClientIDCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// render writes a component as an HTML response with the given status
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
