package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"courierbridge/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// OperatorAuthConfig configures OperatorAuth.
type OperatorAuthConfig struct {
	// Skipper defaults to skipping every route outside /api/v1/.
	Skipper middleware.Skipper
	// Token is the shared operator bearer token. Empty rejects every request.
	Token  string
	Logger *slog.Logger
}

// OperatorPathPrefix is the route prefix OperatorAuth guards by default.
const OperatorPathPrefix = "/api/v1/"

// OperatorAuth requires "Authorization: Bearer <token>" on the operator API.
//
// Example:
//
//	e.Use(OperatorAuth(OperatorAuthConfig{Token: os.Getenv("OPERATOR_TOKEN")}))
func OperatorAuth(cfg OperatorAuthConfig) echo.MiddlewareFunc {
	skipper := cfg.Skipper
	if skipper == nil {
		skipper = func(c echo.Context) bool {
			return !strings.HasPrefix(c.Path(), OperatorPathPrefix)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "operator_auth")
	want := []byte(cfg.Token)

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper:    skipper,
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			if len(want) == 0 {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), want) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			logger.WarnContext(c.Request().Context(), "operator request rejected",
				"path", c.Path(), "error", err)
			return c.JSON(http.StatusUnauthorized, servers.Error{Error: msgUnauthorized})
		},
	})
}
