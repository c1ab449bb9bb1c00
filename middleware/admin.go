package middleware

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"

	"techforge_app_go/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminBcryptCost is the cost factor for the admin password hash
	AdminBcryptCost = 12
	// AdminRealm is shown by browsers in the basic auth prompt
	AdminRealm = "TechForge Admin"
)

// HashAdminPassword hashes a password for ADMIN_PASSWORD_HASH
func HashAdminPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), AdminBcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckAdminPassword verifies a password against a hash
func CheckAdminPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RequireAdmin protects the admin routes with basic auth. When no admin
// credentials are configured every request is refused.
func RequireAdmin(cfg *config.Config) echo.MiddlewareFunc {
	if cfg.AdminUser == "" || cfg.AdminPasswordHash == "" {
		log.Println("[WARNING] ADMIN_USER or ADMIN_PASSWORD_HASH not set, admin routes are disabled")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Admin access is not configured")
			}
		}
	}

	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: AdminRealm,
		Validator: func(user, password string, c echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) == 1
			// Always run bcrypt so a wrong user costs the same as a wrong password
			passOK := CheckAdminPassword(password, cfg.AdminPasswordHash)
			if !userOK || !passOK {
				log.Printf("[WARNING] Failed admin login from %s", c.RealIP())
				return false, nil
			}
			return true, nil
		},
	})
}
