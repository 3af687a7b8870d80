package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Address defines model for Address.
type Address struct {
	Address1    *string `json:"address1,omitempty"`
	Address2    *string `json:"address2,omitempty"`
	City        *string `json:"city,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Country     *string `json:"country,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Province    *string `json:"province,omitempty"`
}

// CarrierServiceRequest defines model for CarrierServiceRequest.
type CarrierServiceRequest struct {
	Rate *RateRequest `json:"rate"`
}

// RateRequest defines model for RateRequest.
type RateRequest struct {
	Destination *Address `json:"destination"`
	Origin      *Address `json:"origin,omitempty"`
}

// Rate defines model for Rate.
type Rate struct {
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	// TotalPrice Integer minor currency units
	TotalPrice string `json:"total_price"`
}

// RatesResponse defines model for RatesResponse.
type RatesResponse struct {
	Rates []Rate `json:"rates"`
}

// WebhookAck defines model for WebhookAck.
type WebhookAck struct {
	Status string `json:"status"`
}

// DeliveryJob defines model for DeliveryJob.
type DeliveryJob struct {
	CreatedAt    time.Time          `json:"created_at"`
	DeliveryId   string             `json:"delivery_id"`
	Id           openapi_types.UUID `json:"id"`
	TrackingCode *string            `json:"tracking_code,omitempty"`
	TrackingUrl  *string            `json:"tracking_url,omitempty"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	Job        *DeliveryJob `json:"job,omitempty"`
	Key        string       `json:"key"`
	ReservedAt time.Time    `json:"reserved_at"`
	Status     string       `json:"status"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}
