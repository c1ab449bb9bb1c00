package handlers

import (
	"errors"
	"net/http"

	"techforge_app_go/services/analytics"

	"github.com/labstack/echo/v4"
)

// RecordEventHandler accepts an engagement beacon from the browser or the
// terminal client and forwards it to the analytics sink
func RecordEventHandler(c echo.Context) error {
	var p analytics.Payload
	if err := c.Bind(&p); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid event")
	}

	event, err := analytics.ParseEvent(p)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownEvent) {
			return jsonError(c, http.StatusBadRequest, "Unknown event")
		}
		return jsonError(c, http.StatusBadRequest, "Invalid event")
	}
	if event.ClientID == "" {
		event = event.WithClient(clientID(c))
	}

	Analytics.Record(event)
	return c.NoContent(http.StatusAccepted)
}
