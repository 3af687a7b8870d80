package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	httpin "courierbridge/internal/adapters/in/http"
	"courierbridge/internal/adapters/out/memory"
	"courierbridge/internal/adapters/out/metrobi"
	"courierbridge/internal/adapters/out/postgres/jobrepo"
	"courierbridge/internal/adapters/out/redisstore"
	"courierbridge/internal/adapters/out/shopify"
	"courierbridge/internal/core/application/usecases/commands"
	"courierbridge/internal/core/application/usecases/queries"
	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/job"
	"courierbridge/internal/core/domain/model/pickup"
	"courierbridge/internal/core/domain/services"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/jobs"
	"courierbridge/internal/metrics"

	"github.com/shopspring/decimal"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	store     ports.ReservationStore
	courier   ports.CourierGateway
	commerce  ports.CommerceGateway
	scheduler *pickup.Scheduler
	builder   services.BookingRequestBuilder
	surcharge decimal.Decimal

	closers []func() error
}

// NewCompositionRoot builds the long-lived dependencies from configs.
func NewCompositionRoot(ctx context.Context, configs Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs: configs,
		logger:  logger,
		metrics: metrics.New(),
	}

	location, err := time.LoadLocation(orDefault(configs.StoreTimeZone, pickup.DefaultTimeZone))
	if err != nil {
		return nil, fmt.Errorf("store time zone: %w", err)
	}
	c.scheduler = pickup.NewScheduler(location, time.Now)

	profile, err := LoadStoreProfile(configs.StoreProfilePath)
	if err != nil {
		return nil, err
	}
	c.builder = services.NewBookingRequestBuilder(profile)

	c.surcharge = decimal.Zero
	if s := strings.TrimSpace(configs.MetrobiSurcharge); s != "" {
		if c.surcharge, err = decimal.NewFromString(s); err != nil {
			return nil, fmt.Errorf("metrobi surcharge: %w", err)
		}
	}

	if c.courier, err = metrobi.NewClient(metrobi.Config{
		BaseURL:   configs.MetrobiBaseURL,
		APIKey:    configs.MetrobiAPIKey,
		Mode:      metrobi.Mode(configs.MetrobiMode),
		CreateURL: configs.MetrobiCreateURL,
	}); err != nil {
		return nil, err
	}

	if c.commerce, err = shopify.NewClient(shopify.Config{
		ShopDomain:  configs.ShopifyShopDomain,
		AccessToken: configs.ShopifyAccessToken,
		APIVersion:  configs.ShopifyAPIVersion,
		BaseURL:     configs.ShopifyBaseURL,
	}); err != nil {
		return nil, err
	}

	if c.store, err = c.newReservationStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) newReservationStore(ctx context.Context) (ports.ReservationStore, error) {
	ttl := c.pendingTTL()

	switch orDefault(c.configs.ReservationStore, StoreMemory) {
	case StoreMemory:
		return memory.NewReservationStore(ttl, time.Now), nil

	case StorePostgres:
		gormDB, err := gorm.Open(postgresdriver.Open(c.configs.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		if err := jobrepo.AutoMigrate(gormDB.WithContext(ctx)); err != nil {
			return nil, fmt.Errorf("migrate reservations: %w", err)
		}
		return jobrepo.NewGormReservationStore(gormDB, ttl, time.Now), nil

	case StoreRedis:
		client, err := redisstore.NewClient(ctx, c.configs.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		return redisstore.NewReservationStore(client, "", ttl, time.Now), nil

	default:
		return nil, fmt.Errorf("unknown reservation store %q", c.configs.ReservationStore)
	}
}

func (c *CompositionRoot) pendingTTL() time.Duration {
	if c.configs.ReservationTTL > 0 {
		return c.configs.ReservationTTL
	}
	return job.DefaultPendingTTL
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateBookDeliveryCommandHandler() *commands.BookDeliveryCommandHandler {
	policy := commands.DefaultBookingPolicy()
	if c.configs.CourierTitleMatch != "" || c.configs.CourierCode != "" {
		policy.Matcher = fulfillment.NewCourierMatcher(c.configs.CourierTitleMatch, c.configs.CourierCode)
	}
	policy.NotifyCustomer = c.configs.NotifyCustomer

	return commands.NewBookDeliveryCommandHandler(
		c.store, c.courier, c.commerce, c.builder, c.scheduler, policy, c.metrics, c.logger,
	)
}

func (c *CompositionRoot) CreateBookFulfillmentOrderCommandHandler() commands.BookFulfillmentOrderCommandHandler {
	return commands.NewBookFulfillmentOrderCommandHandler(
		c.commerce, c.CreateBookDeliveryCommandHandler(), commands.OutboundTimeout,
	)
}

func (c *CompositionRoot) CreateExpireReservationsCommandHandler() commands.ExpireReservationsCommandHandler {
	return commands.NewExpireReservationsCommandHandler(c.store, c.metrics)
}

func (c *CompositionRoot) CreateGetShippingRatesQueryHandler() queries.GetShippingRatesQueryHandler {
	quoter := queries.NewRateQuoter(c.courier, c.surcharge, queries.OutboundTimeout, c.metrics, c.logger)

	policy := queries.DefaultShippingRatesPolicy()
	policy.DefaultOrigin = c.builder.Store().Address.Line()
	if len(c.configs.ExcludedPostalCodes) > 0 {
		policy.ExcludedPostalCodes = c.configs.ExcludedPostalCodes
	}

	return queries.NewGetShippingRatesQueryHandler(quoter, c.scheduler, policy, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveryJobQueryHandler() queries.GetDeliveryJobQueryHandler {
	return queries.NewGetDeliveryJobQueryHandler(c.store)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateBookDeliveryCommandHandler(),
		c.CreateBookFulfillmentOrderCommandHandler(),
		c.CreateGetShippingRatesQueryHandler(),
		c.CreateGetDeliveryJobQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireReservationsCommandHandler(), c.pendingTTL(), c.configs.SweepSchedule, c.logger,
	)
}

// Close releases store connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
