package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"techforge_app_go/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminPasswordHash(t *testing.T) {
	hash, err := HashAdminPassword("correct horse battery")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, AdminBcryptCost, cost)

	assert.True(t, CheckAdminPassword("correct horse battery", hash))
	assert.False(t, CheckAdminPassword("wrong", hash))
	assert.False(t, CheckAdminPassword("anything", "not-a-hash"))
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "admin") }

	// Low cost keeps the test fast; CheckAdminPassword reads the cost from the hash
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{AdminUser: "admin", AdminPasswordHash: string(hash)}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"ValidCredentials", basicAuth("admin", "s3cret-password"), http.StatusOK},
		{"WrongPassword", basicAuth("admin", "nope"), http.StatusUnauthorized},
		{"WrongUser", basicAuth("root", "s3cret-password"), http.StatusUnauthorized},
		{"NoHeader", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			err := RequireAdmin(cfg)(ok)(e.NewContext(req, rec))

			if tt.code == http.StatusOK {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			he, isHTTP := err.(*echo.HTTPError)
			require.True(t, isHTTP)
			assert.Equal(t, tt.code, he.Code)
		})
	}

	t.Run("NotConfigured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set(echo.HeaderAuthorization, basicAuth("admin", "s3cret-password"))
		rec := httptest.NewRecorder()
		err := RequireAdmin(&config.Config{})(ok)(e.NewContext(req, rec))

		he, isHTTP := err.(*echo.HTTPError)
		require.True(t, isHTTP)
		assert.Equal(t, http.StatusServiceUnavailable, he.Code)
	})
}
