package metrobi

import (
	"courierbridge/internal/core/domain/model/booking"
	"courierbridge/internal/core/domain/model/pickup"
)

type stopDTO struct {
	Address      string `json:"address"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type pickupTimeDTO struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type settingsDTO struct {
	NotifyRecipient bool `json:"notify_recipient"`
	ProofOfDelivery bool `json:"proof_of_delivery"`
}

type rateRequestDTO struct {
	Size        string         `json:"size"`
	PickupStop  stopDTO        `json:"pickup_stop"`
	DropoffStop stopDTO        `json:"dropoff_stop"`
	PickupTime  *pickupTimeDTO `json:"pickup_time,omitempty"`
}

type createRequestDTO struct {
	Size        string        `json:"size"`
	PickupStop  stopDTO       `json:"pickup_stop"`
	DropoffStop stopDTO       `json:"dropoff_stop"`
	PickupTime  pickupTimeDTO `json:"pickup_time"`
	ExternalID  string        `json:"external_id,omitempty"`
	Settings    settingsDTO   `json:"settings"`
}

func toPickupTimeDTO(s pickup.Slot) pickupTimeDTO {
	return pickupTimeDTO{Date: s.Date(), Time: s.Time()}
}

func toStopDTO(s booking.Stop) stopDTO {
	return stopDTO{
		Address:      s.Address.Line(),
		Name:         s.Contact.Name,
		Phone:        s.Contact.Phone,
		Email:        s.Contact.Email,
		Instructions: s.Instructions,
	}
}

func toCreateRequestDTO(r booking.Request) createRequestDTO {
	return createRequestDTO{
		Size:        r.Size,
		PickupStop:  toStopDTO(r.Pickup),
		DropoffStop: toStopDTO(r.Dropoff),
		PickupTime:  toPickupTimeDTO(r.PickupSlot),
		ExternalID:  r.ExternalReference,
		Settings: settingsDTO{
			NotifyRecipient: r.Settings.NotifyRecipient,
			ProofOfDelivery: r.Settings.ProofOfDelivery,
		},
	}
}
