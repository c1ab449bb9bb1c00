package handlers

import (
	"net/http"
	"strings"
	"testing"

	"techforge_app_go/services/analytics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEventHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   analytics.Kind
	}{
		{"Scroll depth", `{"action":"scroll","category":"engagement","value":50}`, http.StatusAccepted, analytics.KindScrollDepth},
		{"Navigation", `{"action":"click","category":"navigation","label":"contact"}`, http.StatusAccepted, analytics.KindNavigation},
		{"Field update", `{"action":"field_update","category":"contact_form","label":"email"}`, http.StatusAccepted, analytics.KindContactInteraction},
		{"Unknown pair", `{"action":"hover","category":"button"}`, http.StatusBadRequest, ""},
		{"Unknown category", `{"action":"click","category":"ads"}`, http.StatusBadRequest, ""},
		{"Malformed body", `{"action":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := setupAnalytics(t)
			_, c, rec := setupEcho(http.MethodPost, "/api/events", strings.NewReader(tt.body))
			c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			require.NoError(t, RecordEventHandler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			events := mem.Events()
			if tt.wantKind == "" {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, tt.wantKind, events[0].Kind)
		})
	}
}

func TestRecordEventHandler_ClientCookie(t *testing.T) {
	mem := setupAnalytics(t)
	_, c, _ := setupEcho(http.MethodPost, "/api/events", strings.NewReader(`{"action":"timing","category":"engagement","value":42}`))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Request().AddCookie(&http.Cookie{Name: ClientIDCookie, Value: "cid-123"})

	require.NoError(t, RecordEventHandler(c))
	events := mem.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "cid-123", events[0].ClientID)
	assert.Equal(t, 42, *events[0].Value)
}
