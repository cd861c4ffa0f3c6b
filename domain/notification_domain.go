package domain

import "time"

const (
	NotificationTitleNewPickup = "New Pickup Request"
	NotificationInboxLimit     = 20
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageFailedGetNotifications  = "failed to retrieve notifications"
	MessageFailedMarkRead          = "failed to mark notification as read"

	ErrNotificationNotFound = kind(ErrNotFound, "notification not found")
)

type (
	NotificationData struct {
		DonorID  string `json:"donor_id"`
		PostID   string `json:"pickup_id"`
		FoodName string `json:"food_name"`
	}

	Notification struct {
		ID          string           `json:"id"`
		RecipientID string           `json:"recipient_id"`
		Title       string           `json:"title"`
		Message     string           `json:"message"`
		Data        NotificationData `json:"data"`
		IsRead      bool             `json:"is_read"`
		CreatedAt   time.Time        `json:"created_at"`
	}
)
