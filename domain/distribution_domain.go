package domain

import "time"

var (
	MessageSuccessGetRecipients      = "recipients retrieved successfully"
	MessageSuccessRecordDelivery     = "delivery recorded successfully"
	MessageSuccessGetDeliveries      = "deliveries retrieved successfully"
	MessageSuccessUpdatePeopleCount  = "people count updated successfully"
	MessageFailedGetRecipients       = "failed to retrieve recipients"
	MessageFailedRecordDelivery      = "failed to record delivery"
	MessageFailedGetDeliveries       = "failed to retrieve deliveries"
	MessageFailedUpdatePeopleCount   = "failed to update people count"
	ErrPostAlreadyDelivered          = kind(ErrConflict, "this pickup has already been delivered")
	ErrRecipientNotFound             = kind(ErrNotFound, "recipient not found")
	ErrInvalidDeliveryDate           = kind(ErrValidation, "date must be formatted as YYYY-MM-DD")
)

const (
	DeliveryDateLayout      = "2006-01-02"
	DeliveryStatusCompleted = "Completed"
)

type (
	RecordDeliveryRequest struct {
		PostID      string `json:"post_id" validate:"required,uuid"`
		RecipientID string `json:"recipient_id" validate:"required,uuid"`
	}

	UpdatePeopleCountRequest struct {
		PeopleCount int `json:"people_count" validate:"required,min=1"`
	}

	Recipient struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Address     string   `json:"address,omitempty"`
		Location    Location `json:"location"`
		PeopleCount int      `json:"people_count"`
		Distance    *float64 `json:"distance,omitempty"`
	}

	DeliveryRecord struct {
		ID            string    `json:"id"`
		NgoID         string    `json:"ngo_id"`
		DonorID       string    `json:"donor_id"`
		DonorName     string    `json:"donor_name"`
		RecipientID   string    `json:"recipient_id"`
		RecipientName string    `json:"recipient_name"`
		PostID        string    `json:"post_id"`
		FoodType      string    `json:"food_type"`
		Quantity      string    `json:"quantity"`
		PickupTime    time.Time `json:"pickup_time"`
		DeliveryTime  time.Time `json:"delivery_time"`
		Status        string    `json:"status"`
		Date          string    `json:"date"`
	}
)
