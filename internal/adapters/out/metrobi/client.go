// Package metrobi is the courier gateway: rate estimates and delivery
// creation against the Metrobi delivery API.
package metrobi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Mode selects the rate endpoint.
type Mode string

const (
	// ModeDeliveryRate quotes by addresses only.
	ModeDeliveryRate Mode = "deliveryrate"
	// ModeDeliveryEstimate quotes by addresses and pickup time.
	ModeDeliveryEstimate Mode = "delivery_estimate"
)

const (
	DefaultBaseURL = "https://delivery-api.metrobi.com/api/v1"

	defaultRequestsPerSecond = 5
	defaultBurst             = 10
	maxErrorBody             = 512
)

// Config configures the courier client.
type Config struct {
	BaseURL string
	APIKey  string
	Mode    Mode
	// CreateURL is the full delivery-creation URL; empty means BaseURL + "/delivery".
	CreateURL string

	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

// Client implements ports.CourierGateway.
type Client struct {
	baseURL   string
	createURL string
	apiKey    string
	mode      Mode
	http      *http.Client
	limiter   *rate.Limiter
}

var _ ports.CourierGateway = (*Client)(nil)

// NewClient validates cfg and fills its defaults: ModeDeliveryRate, DefaultBaseURL,
// a create URL of "<base>/delivery" and the default outbound rate limit.
//
// Returns an error when the API key is blank or the mode is unknown.
//
// Example:
//
//	c, err := metrobi.NewClient(metrobi.Config{APIKey: key, Mode: metrobi.ModeDeliveryEstimate})
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errs.NewValueIsRequiredError("metrobi api key")
	}

	switch cfg.Mode {
	case "":
		cfg.Mode = ModeDeliveryRate
	case ModeDeliveryRate, ModeDeliveryEstimate:
	default:
		return nil, errs.NewValueIsInvalidError("metrobi mode " + string(cfg.Mode))
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	createURL := cfg.CreateURL
	if createURL == "" {
		createURL = baseURL + "/delivery"
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Callers bound each call with a context deadline; this is a backstop.
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:   baseURL,
		createURL: createURL,
		apiKey:    cfg.APIKey,
		mode:      cfg.Mode,
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// QuotesPerPickupTime reports whether estimates depend on the pickup slot.
func (c *Client) QuotesPerPickupTime() bool {
	return c.mode == ModeDeliveryEstimate
}

// EstimateRate asks the courier for an SUV price between the two addresses.
// In ModeDeliveryEstimate the request's pickup slot is sent along.
//
// Returns the price in dollars, an error wrapping ports.ErrCourierRejected for
// a 4xx or unsuccessful body, or ctx's error when the deadline passes first.
func (c *Client) EstimateRate(ctx context.Context, req ports.RateEstimateRequest) (decimal.Decimal, error) {
	payload := rateRequestDTO{
		Size:        booking.SizeSUV,
		PickupStop:  stopDTO{Address: req.PickupAddress},
		DropoffStop: stopDTO{Address: req.DropoffAddress},
	}
	if c.mode == ModeDeliveryEstimate && req.PickupSlot != nil {
		pt := toPickupTimeDTO(*req.PickupSlot)
		payload.PickupTime = &pt
	}

	env, err := c.post(ctx, c.baseURL+"/"+string(c.mode), payload)
	if err != nil {
		return decimal.Zero, err
	}
	return parsePrice(env)
}

// CreateDelivery books the job described by req. A confirmation without a
// delivery id is reported as ports.ErrMalformedResponse.
func (c *Client) CreateDelivery(ctx context.Context, req booking.Request) (booking.Confirmation, error) {
	env, err := c.post(ctx, c.createURL, toCreateRequestDTO(req))
	if err != nil {
		return booking.Confirmation{}, err
	}
	return parseConfirmation(env)
}

// post sends payload and returns the decoded body of a successful response.
// 4xx statuses and bodies without the success flag wrap ports.ErrCourierRejected.
func (c *Client) post(ctx context.Context, url string, payload any) (envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("metrobi rate limit: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("metrobi %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("metrobi %s: read body: %w", url, err)
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d: %s", ports.ErrCourierRejected, resp.StatusCode, snippet(respBody))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("metrobi %s: status %d: %s", url, resp.StatusCode, snippet(respBody))
	}

	env, err := decodeEnvelope(respBody)
	if err != nil {
		return nil, err
	}
	if !env.succeeded() {
		return nil, fmt.Errorf("%w: success flag not set: %s", ports.ErrCourierRejected, snippet(respBody))
	}
	return env, nil
}

func snippet(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
