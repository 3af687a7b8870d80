// Package shopify is the commerce gateway: admin REST reads of orders and
// fulfillment orders, fulfillment creation, and webhook payload decoding.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/ports"
	"courierbridge/internal/pkg/errs"
)

const (
	DefaultAPIVersion = "2024-10"

	headerAccessToken = "X-Shopify-Access-Token"
	maxErrorBody      = 512
)

// Config holds the admin API credentials. Only AccessToken is always
// required; ShopDomain is required unless BaseURL is set.
type Config struct {
	// ShopDomain is the shop's myshopify domain, e.g. "acme.myshopify.com".
	ShopDomain  string
	AccessToken string
	APIVersion  string
	// BaseURL overrides "https://" + ShopDomain.
	BaseURL    string
	HTTPClient *http.Client
}

// Client implements ports.CommerceGateway.
type Client struct {
	adminURL string
	token    string
	http     *http.Client
}

var _ ports.CommerceGateway = (*Client)(nil)

// NewClient builds an admin REST client for
// "<base>/admin/api/<version>", defaulting the version to DefaultAPIVersion.
//
// Example:
//
//	c, err := shopify.NewClient(shopify.Config{ShopDomain: "acme.myshopify.com", AccessToken: token})
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errs.NewValueIsRequiredError("shopify access token")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		if strings.TrimSpace(cfg.ShopDomain) == "" {
			return nil, errs.NewValueIsRequiredError("shopify shop domain")
		}
		base = "https://" + strings.TrimSpace(cfg.ShopDomain)
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		adminURL: base + "/admin/api/" + version,
		token:    cfg.AccessToken,
		http:     httpClient,
	}, nil
}

// GetOrder fetches one order. A 404 or a response without an order is an
// errs.ObjectNotFoundError.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (fulfillment.Order, error) {
	var resp struct {
		Order *orderDTO `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d.json", orderID), nil, &resp); err != nil {
		return fulfillment.Order{}, err
	}
	if resp.Order == nil {
		return fulfillment.Order{}, errs.NewObjectNotFoundError("order", orderID)
	}
	return resp.Order.toDomain(), nil
}

// GetFulfillmentOrder fetches one fulfillment order, with the same not-found
// handling as GetOrder.
func (c *Client) GetFulfillmentOrder(ctx context.Context, fulfillmentOrderID int64) (fulfillment.FulfillmentOrder, error) {
	var resp struct {
		FulfillmentOrder *fulfillmentOrderDTO `json:"fulfillment_order"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/fulfillment_orders/%d.json", fulfillmentOrderID), nil, &resp); err != nil {
		return fulfillment.FulfillmentOrder{}, err
	}
	if resp.FulfillmentOrder == nil {
		return fulfillment.FulfillmentOrder{}, errs.NewObjectNotFoundError("fulfillment order", fulfillmentOrderID)
	}
	return resp.FulfillmentOrder.toDomain(), nil
}

// ListFulfillmentOrders returns every fulfillment order of the order, in the
// platform's order. The slice is empty, not nil, when there are none.
func (c *Client) ListFulfillmentOrders(ctx context.Context, orderID int64) ([]fulfillment.FulfillmentOrder, error) {
	var resp struct {
		FulfillmentOrders []fulfillmentOrderDTO `json:"fulfillment_orders"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/fulfillment_orders.json", orderID), nil, &resp); err != nil {
		return nil, err
	}
	out := make([]fulfillment.FulfillmentOrder, 0, len(resp.FulfillmentOrders))
	for _, fo := range resp.FulfillmentOrders {
		out = append(out, fo.toDomain())
	}
	return out, nil
}

// CreateFulfillment posts the tracking update as a new fulfillment and returns
// its id.
//
// Parameters:
//   - update: the fulfillment orders to close and the tracking details.
//
// Returns the platform's fulfillment id, or an error carrying the status and a
// truncated response body.
func (c *Client) CreateFulfillment(ctx context.Context, update fulfillment.TrackingUpdate) (int64, error) {
	req := struct {
		Fulfillment fulfillmentDTO `json:"fulfillment"`
	}{Fulfillment: toFulfillmentDTO(update)}

	var resp struct {
		Fulfillment struct {
			ID int64 `json:"id"`
		} `json:"fulfillment"`
	}
	if err := c.do(ctx, http.MethodPost, "/fulfillments.json", req, &resp); err != nil {
		return 0, err
	}
	return resp.Fulfillment.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.adminURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerAccessToken, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("shopify %s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundErrorWithCause("path", path, fmt.Errorf("status 404"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shopify %s %s: status %d: %s", method, path, resp.StatusCode, snippet(raw))
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("shopify %s %s: decode: %w", method, path, err)
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
