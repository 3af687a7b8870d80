package shopify

import (
	"strings"

	"courierbridge/internal/core/domain/model/fulfillment"
	"courierbridge/internal/core/domain/model/kernel"
)

type customerDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type addressDTO struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Phone        string `json:"phone"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

type shippingLineDTO struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

type orderDTO struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Note            string            `json:"note"`
	Customer        *customerDTO      `json:"customer"`
	ShippingAddress *addressDTO       `json:"shipping_address"`
	ShippingLines   []shippingLineDTO `json:"shipping_lines"`
}

type lineItemDTO struct {
	ID                  int64 `json:"id"`
	FulfillableQuantity int   `json:"fulfillable_quantity"`
}

type fulfillmentOrderDTO struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id"`
	Status    string        `json:"status"`
	LineItems []lineItemDTO `json:"line_items"`
}

type fulfillmentLineItemDTO struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

type lineItemsByFulfillmentOrderDTO struct {
	FulfillmentOrderID        int64                    `json:"fulfillment_order_id"`
	FulfillmentOrderLineItems []fulfillmentLineItemDTO `json:"fulfillment_order_line_items"`
}

type trackingInfoDTO struct {
	Number  string `json:"number,omitempty"`
	URL     string `json:"url,omitempty"`
	Company string `json:"company"`
}

type fulfillmentDTO struct {
	LineItemsByFulfillmentOrder []lineItemsByFulfillmentOrderDTO `json:"line_items_by_fulfillment_order"`
	TrackingInfo                trackingInfoDTO                  `json:"tracking_info"`
	NotifyCustomer              bool                             `json:"notify_customer"`
}

func (a *addressDTO) toDomain() (kernel.Address, kernel.Contact) {
	if a == nil {
		return kernel.Address{}, kernel.Contact{}
	}
	province := a.ProvinceCode
	if province == "" {
		province = a.Province
	}
	country := a.CountryCode
	if country == "" {
		country = a.Country
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = kernel.FullName(a.FirstName, a.LastName)
	}
	return kernel.Address{
			Address1:   a.Address1,
			Address2:   a.Address2,
			City:       a.City,
			Province:   province,
			PostalCode: a.Zip,
			Country:    country,
			Company:    a.Company,
		}, kernel.Contact{
			Name:  name,
			Phone: a.Phone,
		}
}

func (o orderDTO) toDomain() fulfillment.Order {
	addr, contact := o.ShippingAddress.toDomain()

	var customer kernel.Contact
	if o.Customer != nil {
		customer = kernel.Contact{
			Name:  kernel.FullName(o.Customer.FirstName, o.Customer.LastName),
			Phone: o.Customer.Phone,
			Email: o.Customer.Email,
		}
	}

	lines := make([]fulfillment.ShippingLine, 0, len(o.ShippingLines))
	for _, l := range o.ShippingLines {
		lines = append(lines, fulfillment.ShippingLine{Title: l.Title, Code: l.Code})
	}

	return fulfillment.Order{
		ID:              o.ID,
		Name:            o.Name,
		Email:           o.Email,
		Phone:           o.Phone,
		Customer:        customer,
		ShippingAddress: addr,
		ShippingContact: contact,
		ShippingLines:   lines,
		Note:            o.Note,
	}
}

func (f fulfillmentOrderDTO) toDomain() fulfillment.FulfillmentOrder {
	items := make([]fulfillment.LineItem, 0, len(f.LineItems))
	for _, li := range f.LineItems {
		items = append(items, fulfillment.LineItem{ID: li.ID, FulfillableQuantity: li.FulfillableQuantity})
	}
	return fulfillment.FulfillmentOrder{
		ID:        f.ID,
		OrderID:   f.OrderID,
		Status:    f.Status,
		LineItems: items,
	}
}

func toFulfillmentDTO(u fulfillment.TrackingUpdate) fulfillmentDTO {
	groups := make([]lineItemsByFulfillmentOrderDTO, 0, len(u.Items))
	for _, it := range u.Items {
		lines := make([]fulfillmentLineItemDTO, 0, len(it.LineItems))
		for _, li := range it.LineItems {
			lines = append(lines, fulfillmentLineItemDTO{ID: li.ID, Quantity: li.FulfillableQuantity})
		}
		groups = append(groups, lineItemsByFulfillmentOrderDTO{
			FulfillmentOrderID:        it.FulfillmentOrderID,
			FulfillmentOrderLineItems: lines,
		})
	}
	return fulfillmentDTO{
		LineItemsByFulfillmentOrder: groups,
		TrackingInfo: trackingInfoDTO{
			Number:  u.Number,
			URL:     u.URL,
			Company: u.Company,
		},
		NotifyCustomer: u.NotifyCustomer,
	}
}
