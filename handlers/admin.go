package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"
	"time"

	"techforge_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultLeadPageSize = 50
	maxLeadPageSize     = 200
)

// leadFilter reads since/until (YYYY-MM-DD, until inclusive) and
// project_type from the query
func leadFilter(c echo.Context) (services.LeadFilter, error) {
	var f services.LeadFilter
	since, until, err := services.ParseDayRange(c.QueryParam("since"), c.QueryParam("until"))
	if err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "Invalid date range: "+err.Error())
	}
	f.Since, f.Until = since, until
	f.ProjectType = c.QueryParam("project_type")
	return f, nil
}

// AdminListLeadsHandler returns a page of leads, newest first
func AdminListLeadsHandler(c echo.Context) error {
	f, err := leadFilter(c)
	if err != nil {
		return err
	}

	f.Limit = defaultLeadPageSize
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		f.Limit = n
	}
	if f.Limit > maxLeadPageSize {
		f.Limit = maxLeadPageSize
	}
	if n, err := strconv.Atoi(c.QueryParam("offset")); err == nil && n > 0 {
		f.Offset = n
	}

	leads, total, err := leadService().List(c.Request().Context(), f)
	if err != nil {
		log.Printf("[LEAD] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load leads")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   total,
		"limit":   f.Limit,
		"offset":  f.Offset,
		"leads":   leads,
	})
}

// AdminExportLeadsHandler downloads the filtered leads as an XLSX workbook
func AdminExportLeadsHandler(c echo.Context) error {
	f, err := leadFilter(c)
	if err != nil {
		return err
	}

	leads, _, err := leadService().List(c.Request().Context(), f)
	if err != nil {
		log.Printf("[LEAD] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load leads")
	}

	buf, err := services.BuildLeadWorkbook(leads)
	if err != nil {
		log.Printf("[LEAD] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build export")
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leads_%s.xlsx", time.Now().Format("20060102_150405")))
	return c.Blob(http.StatusOK, services.XLSXContentType, buf.Bytes())
}

type exportEntry struct {
	services.ExportObject
	URL string `json:"url,omitempty"`
}

// AdminListExportsHandler lists the stored lead workbooks, newest first
func AdminListExportsHandler(c echo.Context) error {
	store := services.Storage
	if store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Export storage is not configured")
	}
	ctx := c.Request().Context()

	objects, err := store.List(ctx, services.LeadExportPrefix)
	if err != nil {
		log.Printf("[EXPORT] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list exports")
	}

	out := make([]exportEntry, 0, len(objects))
	for _, obj := range objects {
		out = append(out, exportEntry{ExportObject: obj, URL: store.Link(ctx, obj.Key)})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"storage": store.Name(),
		"exports": out,
	})
}

// AdminDownloadExportHandler streams one stored workbook
func AdminDownloadExportHandler(c echo.Context) error {
	store := services.Storage
	if store == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Export storage is not configured")
	}

	key := services.LeadExportPrefix + c.Param("*")
	r, err := store.Open(c.Request().Context(), key)
	if errors.Is(err, services.ErrExportNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Export not found")
	}
	if err != nil {
		log.Printf("[EXPORT] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read export")
	}
	defer r.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", path.Base(key)))
	return c.Stream(http.StatusOK, services.XLSXContentType, r)
}
