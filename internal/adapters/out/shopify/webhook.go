package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/pkg/errs"
)

// DecodeOrderWebhook parses an orders/create webhook body.
func DecodeOrderWebhook(body []byte) (fulfillment.Order, error) {
	var dto orderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return fulfillment.Order{}, errs.NewValueIsInvalidErrorWithCause("order webhook body", err)
	}
	if dto.ID <= 0 {
		return fulfillment.Order{}, errs.NewValueIsRequiredError("order id")
	}
	return dto.toDomain(), nil
}

type fulfillmentOrderWebhookDTO struct {
	FulfillmentOrder *struct {
		ID json.RawMessage `json:"id"`
	} `json:"fulfillment_order"`
	ID json.RawMessage `json:"id"`
}

// DecodeFulfillmentOrderWebhook returns the raw fulfillment-order id from a
// fulfillment_orders/create webhook body. The id may be a JSON number or a
// composite id string; normalizing it is left to fulfillment.ParseID.
func DecodeFulfillmentOrderWebhook(body []byte) (string, error) {
	var dto fulfillmentOrderWebhookDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("fulfillment order webhook body", err)
	}

	raw := dto.ID
	if dto.FulfillmentOrder != nil && len(dto.FulfillmentOrder.ID) > 0 {
		raw = dto.FulfillmentOrder.ID
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errs.NewValueIsRequiredError("fulfillment order id")
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("fulfillment order id", err)
		}
		return strings.TrimSpace(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("fulfillment order id", fmt.Errorf("%s is neither string nor number", raw))
	}
	return n.String(), nil
}
