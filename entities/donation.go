package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodPost struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID      uuid.UUID `gorm:"type:uuid;index;not null" json:"donor_id"`
	DonorName    string    `gorm:"not null" json:"donor_name"`
	DonorAddress string    `json:"donor_address"`
	DonorPhone   string    `json:"donor_phone"`
	Status       string    `gorm:"index;not null" json:"status"` // AVAILABLE, ACCEPTED, REACHED, COMPLETED, CANCELLED
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	ImageURL     string    `json:"image_url,omitempty"`

	// Assignment, populated only while ACCEPTED, REACHED or COMPLETED.
	AcceptedNgoID   *uuid.UUID `gorm:"type:uuid;index" json:"accepted_ngo_id,omitempty"`
	AcceptedNgoName *string    `json:"accepted_ngo_name,omitempty"`
	NgoPhone        *string    `json:"ngo_phone,omitempty"`
	NgoProfilePhoto *string    `json:"ngo_profile_photo,omitempty"`
	NgoRating       *float64   `json:"ngo_rating,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsRated     bool       `gorm:"not null;default:false" json:"is_rated"`

	Donor     *User       `gorm:"foreignKey:DonorID"`
	FoodItems []*FoodItem `gorm:"foreignKey:FoodPostID"`
	Timestamp
}
