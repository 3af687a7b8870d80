// Package docs registers the Swagger 2.0 description served by the
// /swagger/* UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/carrier_service": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Quote courier delivery during checkout",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CarrierServiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RatesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/webhooks/orders_create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Book a courier for a new order",
                "parameters": [
                    {"in": "header", "name": "X-Shopify-Hmac-Sha256", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WebhookAck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/webhooks/fulfillment_orders_create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Book a courier for a new fulfillment order",
                "parameters": [
                    {"in": "header", "name": "X-Shopify-Hmac-Sha256", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WebhookAck"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/deliveries/{key}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Reservation and booked job for an idempotency key",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "key", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Delivery"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "definitions": {
        "Address": {
            "type": "object",
            "properties": {
                "address1": {"type": "string"},
                "address2": {"type": "string"},
                "city": {"type": "string"},
                "province": {"type": "string"},
                "postal_code": {"type": "string"},
                "country": {"type": "string"},
                "company_name": {"type": "string"}
            }
        },
        "CarrierServiceRequest": {
            "type": "object",
            "properties": {
                "rate": {
                    "type": "object",
                    "properties": {
                        "origin": {"$ref": "#/definitions/Address"},
                        "destination": {"$ref": "#/definitions/Address"}
                    }
                }
            }
        },
        "Rate": {
            "type": "object",
            "properties": {
                "service_name": {"type": "string"},
                "service_code": {"type": "string"},
                "description": {"type": "string"},
                "total_price": {"type": "string"},
                "currency": {"type": "string"}
            }
        },
        "RatesResponse": {
            "type": "object",
            "properties": {
                "rates": {"type": "array", "items": {"$ref": "#/definitions/Rate"}}
            }
        },
        "WebhookAck": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "Delivery": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "status": {"type": "string"},
                "reserved_at": {"type": "string", "format": "date-time"},
                "job": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string", "format": "uuid"},
                        "delivery_id": {"type": "string"},
                        "tracking_url": {"type": "string"},
                        "tracking_code": {"type": "string"},
                        "created_at": {"type": "string", "format": "date-time"}
                    }
                }
            }
        },
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Courier Bridge",
	Description:      "Shipping rates and courier booking for a commerce store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
