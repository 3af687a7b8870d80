package metrobi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/ports"

	"github.com/shopspring/decimal"
)

// The courier nests its payload differently per endpoint version. Fields are
// looked up under these prefixes, first match wins.
var payloadPrefixes = [][]string{
	{"response", "data"},
	{"data"},
	{},
}

type envelope map[string]any

func decodeEnvelope(body []byte) (envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrMalformedResponse, err)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: empty body", ports.ErrMalformedResponse)
	}
	return env, nil
}

func (e envelope) succeeded() bool {
	ok, _ := e["success"].(bool)
	return ok
}

// lookup returns the first value found for any of names under any prefix.
func (e envelope) lookup(names ...string) (any, bool) {
	for _, prefix := range payloadPrefixes {
		node := map[string]any(e)
		found := true
		for _, p := range prefix {
			next, ok := node[p].(map[string]any)
			if !ok {
				found = false
				break
			}
			node = next
		}
		if !found {
			continue
		}
		for _, name := range names {
			if v, ok := node[name]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// text returns a string or numeric field as a string; anything else is absent.
func (e envelope) text(names ...string) string {
	v, ok := e.lookup(names...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// parsePrice requires a JSON number; a numeric string is rejected.
func parsePrice(env envelope) (decimal.Decimal, error) {
	v, ok := env.lookup("price")
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: price missing", ports.ErrMalformedResponse)
	}
	num, ok := v.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: price is %T, not a number", ports.ErrMalformedResponse, v)
	}
	price, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q: %w", ports.ErrMalformedResponse, num, err)
	}
	return price, nil
}

// parseConfirmation fails when no delivery id can be found.
func parseConfirmation(env envelope) (booking.Confirmation, error) {
	c := booking.Confirmation{
		DeliveryID:   env.text("delivery_id", "id"),
		TrackingURL:  env.text("tracking_url", "tracking_link"),
		TrackingCode: env.text("tracking_code", "tracking_number"),
	}
	if c.DeliveryID == "" {
		return booking.Confirmation{}, fmt.Errorf("%w: delivery id missing", ports.ErrMalformedResponse)
	}
	return c, nil
}
