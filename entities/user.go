package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `json:"name"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `json:"-"`
	Role               string    `gorm:"index;not null" json:"role"` // DONOR, NGO, RECIPIENT, ADMIN
	Organization       string    `json:"organization,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	PhoneVerified      bool      `json:"phone_verified"`
	Address            string    `json:"address,omitempty"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	AccountStatus      string    `gorm:"not null;default:ACTIVE" json:"account_status"`
	VerificationStatus string    `gorm:"not null;default:PENDING" json:"verification_status"`
	DocumentURL        string    `json:"document_url,omitempty"`
	ProfilePhotoURL    string    `json:"profile_photo_url,omitempty"`
	AverageRating      float64   `gorm:"not null;default:0" json:"average_rating"`
	PeopleCount        int       `json:"people_count,omitempty"`

	Reviews []*Review `gorm:"foreignKey:NgoID"`
	Timestamp
}

// DisplayName is what other parties see: the organization when set, the person otherwise.
func (u *User) DisplayName() string {
	if u.Organization != "" {
		return u.Organization
	}
	return u.Name
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NgoID     uuid.UUID `gorm:"type:uuid;index;not null" json:"ngo_id"`
	DonorID   uuid.UUID `gorm:"type:uuid;not null" json:"donor_id"`
	DonorName string    `json:"donor_name"`
	PostID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"post_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Feedback  string    `json:"feedback,omitempty"`
	Timestamp
}

type Otp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string    `gorm:"uniqueIndex;not null" json:"phone"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	Timestamp
}
