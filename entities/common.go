package entities

import "time"

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Review{},
		&Otp{},
		&FoodPost{},
		&FoodItem{},
		&Notification{},
		&DeliveryRecord{},
	}
}
