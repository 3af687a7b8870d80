package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"courierbridge/internal/generated/servers"
	"courierbridge/internal/pkg/webhook"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// WebhookAuthConfig configures WebhookAuth.
type WebhookAuthConfig struct {
	// Skipper defaults to skipping every route outside /webhooks/.
	Skipper middleware.Skipper
	Secret  string
	Logger  *slog.Logger
}

// WebhookPathPrefix is the route prefix WebhookAuth guards by default.
const WebhookPathPrefix = "/webhooks/"

// WebhookAuth verifies the platform's HMAC over the raw body before any
// handler decodes it. The body is put back for the handler afterwards.
func WebhookAuth(cfg WebhookAuthConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = func(c echo.Context) bool {
			return !strings.HasPrefix(c.Path(), WebhookPathPrefix)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "webhook_auth")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{Error: msgBadPayload})
			}
			shop := req.Header.Get(webhook.HeaderShopDomain)

			if !webhook.Verify(cfg.Secret, body, req.Header.Get(webhook.HeaderHMAC)) {
				logger.WarnContext(req.Context(), "webhook signature rejected",
					"path", c.Path(), "shop_domain", shop)
				return c.JSON(http.StatusUnauthorized, servers.Error{Error: msgUnauthorized})
			}

			logger.InfoContext(req.Context(), "webhook received",
				"path", c.Path(), "shop_domain", shop, "topic", req.Header.Get(webhook.HeaderTopic))
			req.Body = io.NopCloser(bytes.NewReader(body))
			return next(c)
		}
	}
}
