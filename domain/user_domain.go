package domain

import (
	"time"
)

const (
	AccountActive   = "ACTIVE"
	AccountDisabled = "DISABLED"

	VerificationPending  = "PENDING"
	VerificationVerified = "VERIFIED"
	VerificationRejected = "REJECTED"

	OtpLength      = 6
	OtpTTL         = 5 * time.Minute
	OtpMaxAttempts = 3

	DefaultRecipientPeopleCount = 20
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessGetUser         = "user retrieved successfully"
	MessageSuccessUpdateUser      = "user updated successfully"
	MessageSuccessUploadPhoto     = "profile photo uploaded successfully"
	MessageSuccessUploadDocument  = "verification document uploaded successfully"
	MessageSuccessSendOtp         = "OTP sent successfully"
	MessageSuccessVerifyOtp       = "phone verified successfully"
	MessageSuccessGetUsers        = "users retrieved successfully"
	MessageSuccessUpdateStatus    = "user status updated successfully"
	MessageSuccessVerifyUser      = "user verification updated successfully"
	MessageSuccessGetStats        = "dashboard statistics retrieved successfully"
	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUser          = "failed to retrieve user"
	MessageFailedUpdateUser       = "failed to update user"
	MessageFailedUploadPhoto      = "failed to upload profile photo"
	MessageFailedUploadDocument   = "failed to upload verification document"
	MessageFailedSendOtp          = "failed to send OTP"
	MessageFailedVerifyOtp        = "failed to verify OTP"
	MessageFailedGetUsers         = "failed to retrieve users"
	MessageFailedUpdateStatus     = "failed to update user status"
	MessageFailedVerifyUser       = "failed to update user verification"
	MessageFailedGetStats         = "failed to retrieve dashboard statistics"
	MessageSuccessGetReviews      = "reviews retrieved successfully"
	MessageFailedGetReviews       = "failed to retrieve reviews"
	MessageVerificationMailTitle  = "Your ReServe account verification"
	MessageVerificationMailBody   = "<p>Hello %s,</p><p>Your ReServe account has been <b>%s</b>.</p>"
	ErrUserNotFound               = kind(ErrNotFound, "user not found")
	ErrEmailAlreadyRegistered     = kind(ErrConflict, "email already registered")
	ErrInvalidCredentials         = kind(ErrForbidden, "invalid email or password")
	ErrAccountDisabled            = kind(ErrForbidden, "account disabled, please contact admin")
	ErrAccountPending             = kind(ErrForbidden, "account pending verification, please wait for admin approval")
	ErrAccountRejected            = kind(ErrForbidden, "account verification rejected")
	ErrRoleNotAllowed             = kind(ErrForbidden, "role not allowed for this action")
	ErrOtpNotFound                = kind(ErrValidation, "OTP expired or not found, please request again")
	ErrOtpExpired                 = kind(ErrValidation, "OTP expired")
	ErrOtpTooManyAttempts         = kind(ErrValidation, "too many failed attempts, please request a new OTP")
	ErrOtpInvalid                 = kind(ErrValidation, "invalid code")
	ErrInvalidPhone               = kind(ErrValidation, "phone number must have at least 10 digits")
	ErrInvalidAccountStatus       = kind(ErrValidation, "invalid account status")
	ErrPeopleCountNotPositive     = kind(ErrValidation, "people count must be positive")
	ErrNotARecipient              = kind(ErrValidation, "user is not a verified recipient")
	ErrStorageUnavailable         = kind(ErrExternalService, "file storage unavailable")
	ErrInvalidFileType            = kind(ErrValidation, "file type not allowed")
	ErrRegistrationRoleNotAllowed = kind(ErrValidation, "role cannot self-register")
)

type (
	RegisterRequest struct {
		Name         string   `json:"name" validate:"required,max=100"`
		Email        string   `json:"email" validate:"required,email"`
		Password     string   `json:"password" validate:"required,min=8"`
		Role         string   `json:"role" validate:"required,oneof=DONOR NGO RECIPIENT"`
		Organization string   `json:"organization" validate:"omitempty,max=150"`
		Phone        string   `json:"phone" validate:"omitempty,max=20"`
		Address      string   `json:"address" validate:"omitempty,max=300"`
		Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		Name         string   `json:"name" validate:"omitempty,max=100"`
		Organization string   `json:"organization" validate:"omitempty,max=150"`
		Phone        string   `json:"phone" validate:"omitempty,max=20"`
		Address      string   `json:"address" validate:"omitempty,max=300"`
		Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	}

	SendOtpRequest struct {
		Phone string `json:"phone" validate:"required"`
	}

	VerifyOtpRequest struct {
		Phone string `json:"phone" validate:"required"`
		Code  string `json:"code" validate:"required,len=6,numeric"`
	}

	UpdateAccountStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=ACTIVE DISABLED"`
	}

	VerifyUserRequest struct {
		Approved bool `json:"approved"`
	}

	User struct {
		ID                 string    `json:"id"`
		Name               string    `json:"name"`
		Email              string    `json:"email"`
		Role               string    `json:"role"`
		Organization       string    `json:"organization,omitempty"`
		Phone              string    `json:"phone,omitempty"`
		PhoneVerified      bool      `json:"phone_verified"`
		Address            string    `json:"address,omitempty"`
		Location           *Location `json:"location,omitempty"`
		AccountStatus      string    `json:"account_status"`
		VerificationStatus string    `json:"verification_status"`
		DocumentURL        string    `json:"document_url,omitempty"`
		ProfilePhotoURL    string    `json:"profile_photo_url,omitempty"`
		AverageRating      float64   `json:"average_rating"`
		ReviewCount        int       `json:"review_count"`
		PeopleCount        int       `json:"people_count,omitempty"`
		CreatedAt          time.Time `json:"created_at"`
	}

	// Actor is the slice of a user the lifecycle core needs for authorization and assignment.
	Actor struct {
		ID              string
		Role            string
		Name            string
		Phone           string
		ProfilePhotoURL string
		AverageRating   float64
	}

	Review struct {
		ID        string    `json:"id"`
		NgoID     string    `json:"ngo_id"`
		DonorID   string    `json:"donor_id"`
		DonorName string    `json:"donor_name"`
		PostID    string    `json:"post_id"`
		Rating    int       `json:"rating"`
		Feedback  string    `json:"feedback,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	DashboardStats struct {
		UsersByRole   map[string]int64 `json:"users_by_role"`
		PostsByStatus map[string]int64 `json:"posts_by_status"`
		PendingUsers  int64            `json:"pending_users"`
		Deliveries    int64            `json:"deliveries"`
	}
)
