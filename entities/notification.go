package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_notification_recipient_post" json:"recipient_id"`
	PostID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_notification_recipient_post" json:"post_id"`
	Title       string         `gorm:"not null" json:"title"`
	Message     string         `gorm:"type:text;not null" json:"message"`
	Data        datatypes.JSON `json:"data"` // {"donor_id": "...", "pickup_id": "...", "food_name": "..."}
	IsRead      bool           `gorm:"not null;default:false" json:"is_read"`
	Timestamp
}
