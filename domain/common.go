package domain

import (
	"errors"
	"fmt"
)

const (
	RoleDonor     = "DONOR"
	RoleNGO       = "NGO"
	RoleRecipient = "RECIPIENT"
	RoleAdmin     = "ADMIN"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
)

// Error kinds. Every specific error below and in the other domain files wraps
// exactly one of these so callers can branch with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service error")
)

var (
	ErrParseUUID      = kind(ErrValidation, "failed to parse UUID")
	ErrUserNotAllowed = kind(ErrForbidden, "user not allowed")
	ErrTokenNotFound  = kind(ErrForbidden, "failed to token not found")
	ErrTokenExpired   = kind(ErrForbidden, "token expired")
	ErrTokenInvalid   = kind(ErrForbidden, "token invalid")
)

func kind(k error, msg string) error {
	return fmt.Errorf("%w: %s", k, msg)
}

// Validation wraps a free-form reason as a validation error.
func Validation(reason string) error {
	return kind(ErrValidation, reason)
}

// External wraps a collaborator failure as an external service error.
func External(service string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExternalService, service, err)
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
