package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"courierbridge/internal/adapters/out/shopify"
	"courierbridge/internal/core/application/usecases/commands"
	"courierbridge/internal/core/application/usecases/queries"
	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/kernel"
	"courierbridge/internal/core/domain/model/rate"
	"courierbridge/internal/generated/servers"
	"courierbridge/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgBadPayload    = "Bad payload"
	msgUnauthorized  = "Unauthorized"
	msgBookingFailed = "Booking failed"
)

// ShippingRatesQuerier answers carrier service requests.
type ShippingRatesQuerier interface {
	Handle(ctx context.Context, query queries.GetShippingRatesQuery) ([]rate.Quote, error)
}

// DeliveryJobGetter reads a reservation by key.
type DeliveryJobGetter interface {
	Handle(ctx context.Context, query queries.GetDeliveryJobQuery) (queries.GetDeliveryJobQueryResponse, error)
}

// FulfillmentOrderBooker books a delivery for a fulfillment order id.
type FulfillmentOrderBooker interface {
	Handle(ctx context.Context, cmd commands.BookFulfillmentOrderCommand) (commands.Outcome, error)
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	bookDeliveryHandler         commands.DeliveryBooker
	bookFulfillmentOrderHandler FulfillmentOrderBooker

	// Query handlers
	shippingRatesHandler  ShippingRatesQuerier
	getDeliveryJobHandler DeliveryJobGetter

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	bookDeliveryHandler commands.DeliveryBooker,
	bookFulfillmentOrderHandler FulfillmentOrderBooker,
	shippingRatesHandler ShippingRatesQuerier,
	getDeliveryJobHandler DeliveryJobGetter,
	logger *slog.Logger,
) *Server {
	return &Server{
		bookDeliveryHandler:         bookDeliveryHandler,
		bookFulfillmentOrderHandler: bookFulfillmentOrderHandler,
		shippingRatesHandler:        shippingRatesHandler,
		getDeliveryJobHandler:       getDeliveryJobHandler,
		logger:                      logger.With("component", "http"),
	}
}

// PostCarrierService handles POST /carrier_service. Only a malformed body is
// an error; every failure after that is answered with the unavailable rate.
func (s *Server) PostCarrierService(ctx echo.Context) error {
	var body servers.CarrierServiceRequest
	if err := ctx.Bind(&body); err != nil || body.Rate == nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: msgBadPayload})
	}

	query := queries.NewGetShippingRatesQuery(toAddress(body.Rate.Origin), toAddress(body.Rate.Destination))
	quotes, err := s.shippingRatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "shipping rates failed", "error", err)
		quotes = []rate.Quote{rate.Unavailable()}
	}

	return ctx.JSON(http.StatusOK, servers.RatesResponse{Rates: toRates(quotes)})
}

// OrdersCreateWebhook handles POST /webhooks/orders_create.
func (s *Server) OrdersCreateWebhook(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: msgBadPayload})
	}
	order, err := shopify.DecodeOrderWebhook(body)
	if err != nil {
		s.logger.WarnContext(reqCtx, "order webhook rejected", "error", err)
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: msgBadPayload})
	}

	cmd, err := commands.NewBookDeliveryCommand(fulfillment.NewOrderEvent(order))
	if err != nil {
		s.logger.WarnContext(reqCtx, "order webhook rejected", "error", err)
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: msgBadPayload})
	}

	outcome, err := s.bookDeliveryHandler.Handle(reqCtx, cmd)
	if err != nil {
		s.logger.ErrorContext(reqCtx, "order booking failed", "order_id", order.ID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{Error: msgBookingFailed})
	}

	return ctx.JSON(http.StatusOK, servers.WebhookAck{Status: outcome.String()})
}

// FulfillmentOrdersCreateWebhook handles POST /webhooks/fulfillment_orders_create.
// Once authenticated it always acknowledges so the platform does not redeliver.
func (s *Server) FulfillmentOrdersCreateWebhook(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	ack := func(status string) error {
		return ctx.JSON(http.StatusOK, servers.WebhookAck{Status: status})
	}

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		s.logger.ErrorContext(reqCtx, "fulfillment order webhook unreadable", "error", err)
		return ack("ignored")
	}
	rawID, err := shopify.DecodeFulfillmentOrderWebhook(body)
	if err != nil {
		s.logger.ErrorContext(reqCtx, "fulfillment order webhook undecodable", "error", err)
		return ack("ignored")
	}
	cmd, err := commands.NewBookFulfillmentOrderCommand(rawID)
	if err != nil {
		s.logger.ErrorContext(reqCtx, "fulfillment order id invalid", "raw_id", rawID, "error", err)
		return ack("ignored")
	}

	outcome, err := s.bookFulfillmentOrderHandler.Handle(reqCtx, cmd)
	if err != nil {
		s.logger.ErrorContext(reqCtx, "fulfillment order booking failed",
			"fulfillment_order_id", cmd.FulfillmentOrderID(), "error", err)
		return ack("failed")
	}
	return ack(outcome.String())
}

// GetDelivery handles GET /api/v1/deliveries/{key}.
func (s *Server) GetDelivery(ctx echo.Context, key string) error {
	query, err := queries.NewGetDeliveryJobQuery(key)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: "Invalid key: " + err.Error()})
	}

	res, err := s.getDeliveryJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{Error: "Delivery not found"})
		}
		return ctx.JSON(http.StatusInternalServerError, servers.Error{Error: "Failed to retrieve delivery"})
	}

	return ctx.JSON(http.StatusOK, toDelivery(res))
}

func toAddress(a *servers.Address) *kernel.Address {
	if a == nil {
		return nil
	}
	return &kernel.Address{
		Address1:   deref(a.Address1),
		Address2:   deref(a.Address2),
		City:       deref(a.City),
		Province:   deref(a.Province),
		PostalCode: deref(a.PostalCode),
		Country:    deref(a.Country),
		Company:    deref(a.CompanyName),
	}
}

func toRates(quotes []rate.Quote) []servers.Rate {
	rates := make([]servers.Rate, len(quotes))
	for i, q := range quotes {
		rates[i] = servers.Rate{
			ServiceName: q.ServiceName,
			ServiceCode: q.ServiceCode,
			Description: q.Description,
			TotalPrice:  q.TotalPrice,
			Currency:    q.Currency,
		}
	}
	return rates
}

func toDelivery(res queries.GetDeliveryJobQueryResponse) servers.Delivery {
	d := servers.Delivery{
		Key:        res.Key,
		Status:     res.Status,
		ReservedAt: res.ReservedAt,
	}
	if res.Job != nil {
		d.Job = &servers.DeliveryJob{
			Id:           res.Job.ID,
			DeliveryId:   res.Job.DeliveryID,
			TrackingUrl:  optional(res.Job.TrackingURL),
			TrackingCode: optional(res.Job.TrackingCode),
			CreatedAt:    res.Job.CreatedAt,
		}
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
