package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FoodPostID uuid.UUID `gorm:"type:uuid;index;not null" json:"food_post_id"`
	Position   int       `gorm:"not null" json:"position"`
	Name       string    `gorm:"not null" json:"name"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	Unit       string    `gorm:"not null" json:"unit"`
	Type       string    `json:"type"`
	PreparedAt time.Time `json:"prepared_at"`
	Storage    string    `json:"storage"`   // room_temperature, hot_pack, fridge
	Freshness  string    `json:"freshness"` // Fresh, Risky, Not Fresh, Unknown

	Timestamp
}
