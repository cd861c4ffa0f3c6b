package entities

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NgoID         uuid.UUID `gorm:"type:uuid;index;not null" json:"ngo_id"`
	DonorID       uuid.UUID `gorm:"type:uuid;index;not null" json:"donor_id"`
	DonorName     string    `json:"donor_name"`
	RecipientID   uuid.UUID `gorm:"type:uuid;index;not null" json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	PostID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	FoodType      string    `json:"food_type"`
	Quantity      string    `json:"quantity"`
	PickupTime    time.Time `json:"pickup_time"`
	DeliveryTime  time.Time `json:"delivery_time"`
	Status        string    `json:"status"`
	Date          string    `gorm:"index" json:"date"` // YYYY-MM-DD

	Recipient *User `gorm:"foreignKey:RecipientID"`
	Timestamp
}
