package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"courierbridge/cmd"
	httpin "courierbridge/internal/adapters/in/http"
	_ "courierbridge/internal/generated/docs"
	"courierbridge/internal/generated/servers"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	if _, err := servers.GetSwagger(); err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Error closing application", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func getConfigs() cmd.Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort: envOr("HTTP_PORT", "8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		OperatorToken: os.Getenv("OPERATOR_TOKEN"),

		ShopifyWebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
		ShopifyShopDomain:    os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		ShopifyAccessToken:   os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		ShopifyAPIVersion:    os.Getenv("SHOPIFY_API_VERSION"),
		ShopifyBaseURL:       os.Getenv("SHOPIFY_BASE_URL"),

		MetrobiAPIKey:    os.Getenv("METROBI_API_KEY"),
		MetrobiBaseURL:   os.Getenv("METROBI_BASE_URL"),
		MetrobiMode:      os.Getenv("METROBI_MODE"),
		MetrobiCreateURL: os.Getenv("METROBI_CREATE_URL"),
		MetrobiSurcharge: os.Getenv("METROBI_SURCHARGE"),

		CourierTitleMatch:   os.Getenv("COURIER_TITLE_MATCH"),
		CourierCode:         os.Getenv("COURIER_CODE"),
		NotifyCustomer:      envBool("NOTIFY_CUSTOMER", true),
		ExcludedPostalCodes: envList("EXCLUDED_POSTAL_CODES"),

		StoreTimeZone:    os.Getenv("STORE_TIME_ZONE"),
		StoreProfilePath: os.Getenv("STORE_PROFILE_PATH"),

		ReservationStore: envOr("RESERVATION_STORE", cmd.StoreMemory),
		ReservationTTL:   envDuration("RESERVATION_TTL"),
		SweepSchedule:    os.Getenv("RESERVATION_SWEEP_SCHEDULE"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		RedisURL: envOr("REDIS_URL", "redis://localhost:6379/0"),
	}
	if config.ShopifyWebhookSecret == "" {
		log.Fatalf("SHOPIFY_WEBHOOK_SECRET is required")
	}
	if config.OperatorToken == "" {
		slog.Warn("OPERATOR_TOKEN is not set; /api/v1/ will reject every request")
	}
	return config
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("2M"))
	e.Use(app.Metrics().Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	e.Use(httpin.WebhookAuth(httpin.WebhookAuthConfig{
		Secret: configs.ShopifyWebhookSecret,
		Logger: logger,
	}))
	e.Use(httpin.OperatorAuth(httpin.OperatorAuthConfig{
		Token:  configs.OperatorToken,
		Logger: logger,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(app.Metrics().Handler()))
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", servers.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, app.CreateServer())

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}
}
