package domain

import (
	"time"
)

const (
	StatusAvailable = "AVAILABLE"
	StatusAccepted  = "ACCEPTED"
	StatusReached   = "REACHED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"

	// GPSAddressLabel is stored as the pickup address when the donor posts with device coordinates.
	GPSAddressLabel = "GPS Location"
)

var (
	MessageSuccessCreateDonation  = "donation created successfully"
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessDeleteDonation  = "donation deleted successfully"
	MessageSuccessGetFeed         = "donation feed retrieved successfully"
	MessageSuccessAcceptDonation  = "donation accepted successfully"
	MessageSuccessMarkReached     = "arrival recorded successfully"
	MessageSuccessReleasePickup   = "pickup cancelled, post is available again"
	MessageSuccessConfirmPickup   = "pickup confirmed, donation completed"
	MessageSuccessCancelDonation  = "donation cancelled successfully"
	MessageSuccessRateNgo         = "rating submitted successfully"
	MessageSuccessGetHistory      = "donation history retrieved successfully"
	MessageSuccessClassifyFood    = "freshness classified successfully"
	MessageFailedCreateDonation   = "failed to create donation"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedDeleteDonation   = "failed to delete donation"
	MessageFailedGetFeed          = "failed to retrieve donation feed"
	MessageFailedAcceptDonation   = "failed to accept donation"
	MessageFailedMarkReached      = "failed to record arrival"
	MessageFailedReleasePickup    = "failed to cancel pickup"
	MessageFailedConfirmPickup    = "failed to confirm pickup"
	MessageFailedCancelDonation   = "failed to cancel donation"
	MessageFailedRateNgo          = "failed to submit rating"
	MessageFailedGetHistory       = "failed to retrieve donation history"
	MessageFailedClassifyFood     = "failed to classify freshness"
	MessageFailedUploadFoodImage  = "failed to upload food image"
	MessageSuccessUploadFoodImage = "food image uploaded successfully"

	ErrDonationNotFound     = kind(ErrNotFound, "donation not found")
	ErrPostAlreadyTaken     = kind(ErrConflict, "post already taken")
	ErrPostNotAccepted      = kind(ErrConflict, "post is not in accepted state")
	ErrPostNotReached       = kind(ErrConflict, "post is not in reached state")
	ErrPostNotCompleted     = kind(ErrConflict, "post is not completed")
	ErrPostClosed           = kind(ErrConflict, "post is already completed or cancelled")
	ErrPostAlreadyRated     = kind(ErrConflict, "post already rated")
	ErrNotPostOwner         = kind(ErrForbidden, "not authorized for this donation")
	ErrNotAssignedNgo       = kind(ErrForbidden, "you are not assigned to this pickup")
	ErrFreshnessRejected    = kind(ErrValidation, "items classified Risky or Not Fresh cannot be donated")
	ErrLocationRequired     = kind(ErrValidation, "location required, use GPS or enter a valid address")
	ErrAddressNotFound      = kind(ErrValidation, "address could not be resolved")
	ErrInvalidCoordinates   = kind(ErrValidation, "invalid coordinates")
	ErrInvalidQuantity      = kind(ErrValidation, "quantity must be positive")
	ErrInvalidRating        = kind(ErrValidation, "rating must be between 1 and 5")
	ErrInvalidPreparedTime  = kind(ErrValidation, "preparation time is in the future")
	ErrDonationHasNoNgo     = kind(ErrConflict, "donation has no assigned NGO")
	ErrUnsupportedFoodImage = kind(ErrValidation, "unsupported food image")
)

type (
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	FoodItemRequest struct {
		Name          string    `json:"name" validate:"required,max=120"`
		Quantity      float64   `json:"quantity" validate:"required,gt=0"`
		Unit          string    `json:"unit" validate:"required,max=20"`
		Type          string    `json:"type" validate:"required,max=60"`
		PreparedAt    time.Time `json:"prepared_at" validate:"required"`
		Storage       string    `json:"storage" validate:"required,oneof=room_temperature hot_pack fridge"`
		VisibleIssues bool      `json:"visible_issues"`
	}

	CreatePostRequest struct {
		Items     []FoodItemRequest `json:"items" validate:"required,min=1,dive"`
		Address   string            `json:"address" validate:"omitempty,max=300"`
		Latitude  *float64          `json:"latitude" validate:"omitempty,latitude"`
		Longitude *float64          `json:"longitude" validate:"omitempty,longitude"`
	}

	FoodItem struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Quantity   float64   `json:"quantity"`
		Unit       string    `json:"unit"`
		Type       string    `json:"type"`
		PreparedAt time.Time `json:"prepared_at"`
		Storage    string    `json:"storage"`
		Freshness  string    `json:"freshness"`
	}

	DonationPost struct {
		ID              string     `json:"id"`
		DonorID         string     `json:"donor_id"`
		DonorName       string     `json:"donor_name"`
		DonorAddress    string     `json:"donor_address"`
		DonorPhone      string     `json:"donor_phone"`
		Items           []FoodItem `json:"items"`
		Status          string     `json:"status"`
		Location        Location   `json:"location"`
		ImageURL        string     `json:"image_url,omitempty"`
		AcceptedNgoID   string     `json:"accepted_ngo_id,omitempty"`
		AcceptedNgoName string     `json:"accepted_ngo_name,omitempty"`
		NgoPhone        string     `json:"ngo_phone,omitempty"`
		NgoProfilePhoto string     `json:"ngo_profile_photo,omitempty"`
		NgoRating       *float64   `json:"ngo_rating,omitempty"`
		IsRated         bool       `json:"is_rated"`
		CreatedAt       time.Time  `json:"created_at"`
		UpdatedAt       time.Time  `json:"updated_at"`
		CompletedAt     *time.Time `json:"completed_at,omitempty"`
	}

	FeedEntry struct {
		DonationPost
		// Distance is nil when either side has no usable coordinate.
		Distance *float64 `json:"distance,omitempty"`
		IsMine   bool     `json:"is_mine"`
	}

	RateNgoRequest struct {
		Rating   int    `json:"rating" validate:"required,min=1,max=5"`
		Feedback string `json:"feedback" validate:"omitempty,max=500"`
	}

	DonationHistoryRecord struct {
		PostID        string    `json:"post_id"`
		FoodType      string    `json:"food_type"`
		Quantity      string    `json:"quantity"`
		PrepTime      time.Time `json:"prep_time"`
		SubmittedTime time.Time `json:"submitted_time"`
		Date          string    `json:"date"`
		Status        string    `json:"status"`
	}
)

const (
	HistoryPending   = "Pending"
	HistoryPicked    = "Picked"
	HistoryDelivered = "Delivered"
	HistoryCancelled = "Cancelled"
)

// IsAssignedStatus reports whether a post in this status carries NGO assignment fields.
func IsAssignedStatus(status string) bool {
	return status == StatusAccepted || status == StatusReached || status == StatusCompleted
}
