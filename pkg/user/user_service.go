package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reserve-backend/domain"
	"reserve-backend/entities"
	"reserve-backend/internal/utils/mailing"
	"reserve-backend/internal/utils/storage"
	"reserve-backend/pkg/geo"
	"reserve-backend/pkg/jwt"
)

const minPhoneDigits = 10

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
		UploadProfilePhoto(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
		UploadDocument(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
		SendOtp(ctx context.Context, req domain.SendOtpRequest) error
		VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) error
		GetActor(ctx context.Context, userID string) (*domain.Actor, error)
		ListReviews(ctx context.Context, ngoID string) ([]domain.Review, error)

		ListUsers(ctx context.Context, role string, page, limit int) ([]domain.User, domain.Pagination, error)
		UpdateAccountStatus(ctx context.Context, userID string, req domain.UpdateAccountStatusRequest) error
		VerifyUser(ctx context.Context, userID string, req domain.VerifyUserRequest) (*domain.User, error)
		Stats(ctx context.Context) (*domain.DashboardStats, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
		mailer         mailing.Mailer
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3, mailer mailing.Mailer) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		mailer:         mailer,
		now:            time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if req.Role != domain.RoleDonor && req.Role != domain.RoleNGO && req.Role != domain.RoleRecipient {
		return nil, domain.ErrRegistrationRoleNotAllowed
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepository.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if req.Phone != "" && !validPhone(req.Phone) {
		return nil, domain.ErrInvalidPhone
	}
	lat, lng, err := coordinates(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		Password:           string(hashed),
		Role:               req.Role,
		Organization:       strings.TrimSpace(req.Organization),
		Phone:              strings.TrimSpace(req.Phone),
		Address:            strings.TrimSpace(req.Address),
		Latitude:           lat,
		Longitude:          lng,
		AccountStatus:      domain.AccountActive,
		VerificationStatus: domain.VerificationPending,
	}
	// Donors can post right away; NGOs and recipients wait for an admin.
	if req.Role == domain.RoleDonor {
		user.VerificationStatus = domain.VerificationVerified
	}
	if req.Role == domain.RoleRecipient {
		user.PeopleCount = domain.DefaultRecipientPeopleCount
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Infow("user registered", "user_id", user.ID.String(), "role", user.Role)
	dto := ToUser(user, 0)
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	switch {
	case user.AccountStatus == domain.AccountDisabled:
		return nil, domain.ErrAccountDisabled
	case user.VerificationStatus == domain.VerificationPending:
		return nil, domain.ErrAccountPending
	case user.VerificationStatus == domain.VerificationRejected:
		return nil, domain.ErrAccountRejected
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toUserWithReviews(ctx, user)
}

func (s *userService) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if v := strings.TrimSpace(req.Organization); v != "" {
		updates["organization"] = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		if !validPhone(v) {
			return nil, domain.ErrInvalidPhone
		}
		if v != user.Phone {
			updates["phone"] = v
			updates["phone_verified"] = false
		}
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		updates["address"] = v
	}
	if req.Latitude != nil || req.Longitude != nil {
		lat, lng, err := coordinates(req.Latitude, req.Longitude)
		if err != nil {
			return nil, err
		}
		updates["latitude"] = lat
		updates["longitude"] = lng
	}

	if len(updates) > 0 {
		if err := s.userRepository.Update(ctx, user.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Me(ctx, userID)
}

func (s *userService) UploadProfilePhoto(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	return s.upload(ctx, userID, file, "profile-photos", "profile_photo_url", storage.AllowImage)
}

func (s *userService) UploadDocument(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	return s.upload(ctx, userID, file, "verification-documents", "document_url", storage.AllowDocument)
}

func (s *userService) upload(ctx context.Context, userID string, file *multipart.FileHeader, folder, column string, allowed []string) (*domain.User, error) {
	if s.s3 == nil {
		return nil, domain.ErrStorageUnavailable
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := user.ProfilePhotoURL
	if column == "document_url" {
		previous = user.DocumentURL
	}

	var objectKey string
	if previous != "" {
		objectKey, err = s.s3.UpdateFile(s.s3.GetObjectKeyFromLink(previous), file, allowed...)
	} else {
		objectKey, err = s.s3.UploadFile(user.ID.String(), file, folder, allowed...)
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.Update(ctx, user.ID, map[string]interface{}{column: s.s3.GetPublicLinkKey(objectKey)}); err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

func (s *userService) SendOtp(ctx context.Context, req domain.SendOtpRequest) error {
	phone := strings.TrimSpace(req.Phone)
	if !validPhone(phone) {
		return domain.ErrInvalidPhone
	}

	code, err := generateOtp()
	if err != nil {
		return err
	}

	otp := &entities.Otp{
		ID:        uuid.New(),
		Phone:     phone,
		Code:      code,
		ExpiresAt: s.now().Add(domain.OtpTTL),
	}
	if err := s.userRepository.ReplaceOtp(ctx, otp); err != nil {
		return err
	}

	// SMS delivery is mocked.
	log.Infof("[SMS MOCK] OTP for %s: %s", phone, code)
	return nil
}

func (s *userService) VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) error {
	phone := strings.TrimSpace(req.Phone)
	otp, err := s.userRepository.GetOtp(ctx, phone)
	if err != nil {
		return err
	}

	if s.now().After(otp.ExpiresAt) {
		s.discardOtp(ctx, otp)
		return domain.ErrOtpExpired
	}

	// The attempt is spent before the code is compared.
	ok, err := s.userRepository.IncrementOtpAttempts(ctx, otp.ID, domain.OtpMaxAttempts)
	if err != nil {
		return err
	}
	if !ok {
		s.discardOtp(ctx, otp)
		return domain.ErrOtpTooManyAttempts
	}

	if otp.Code != req.Code {
		used := otp.Attempts + 1
		if current, err := s.userRepository.GetOtp(ctx, phone); err == nil && current.ID == otp.ID {
			used = current.Attempts
		}
		return fmt.Errorf("%w: %d attempts remaining", domain.ErrOtpInvalid, max(domain.OtpMaxAttempts-used, 0))
	}

	claimed, err := s.userRepository.ClaimOtp(ctx, otp.ID, req.Code)
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrOtpNotFound
	}
	return s.userRepository.MarkPhoneVerified(ctx, phone)
}

func (s *userService) discardOtp(ctx context.Context, otp *entities.Otp) {
	if err := s.userRepository.DeleteOtp(ctx, otp.ID); err != nil {
		log.Warnw("failed to delete otp", "phone", otp.Phone, "error", err)
	}
}

func (s *userService) GetActor(ctx context.Context, userID string) (*domain.Actor, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Actor{
		ID:              user.ID.String(),
		Role:            user.Role,
		Name:            user.DisplayName(),
		Phone:           user.Phone,
		ProfilePhotoURL: user.ProfilePhotoURL,
		AverageRating:   user.AverageRating,
	}, nil
}

func (s *userService) ListReviews(ctx context.Context, ngoID string) ([]domain.Review, error) {
	id, err := uuid.Parse(ngoID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	reviews, err := s.userRepository.ListReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, domain.Review{
			ID:        r.ID.String(),
			NgoID:     r.NgoID.String(),
			DonorID:   r.DonorID.String(),
			DonorName: r.DonorName,
			PostID:    r.PostID.String(),
			Rating:    r.Rating,
			Feedback:  r.Feedback,
			CreatedAt: r.CreatedAt,
		})
	}
	return result, nil
}

func (s *userService) ListUsers(ctx context.Context, role string, page, limit int) ([]domain.User, domain.Pagination, error) {
	users, total, err := s.userRepository.List(ctx, role, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	result := make([]domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, ToUser(u, 0))
	}
	return result, domain.NewPagination(page, limit, total), nil
}

func (s *userService) UpdateAccountStatus(ctx context.Context, userID string, req domain.UpdateAccountStatusRequest) error {
	if req.Status != domain.AccountActive && req.Status != domain.AccountDisabled {
		return domain.ErrInvalidAccountStatus
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepository.Update(ctx, user.ID, map[string]interface{}{"account_status": req.Status}); err != nil {
		return err
	}

	log.Infow("account status updated", "user_id", userID, "status", req.Status)
	return nil
}

func (s *userService) VerifyUser(ctx context.Context, userID string, req domain.VerifyUserRequest) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	status, outcome := domain.VerificationRejected, "rejected"
	if req.Approved {
		status, outcome = domain.VerificationVerified, "approved"
	}
	if err := s.userRepository.Update(ctx, user.ID, map[string]interface{}{"verification_status": status}); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		body := fmt.Sprintf(domain.MessageVerificationMailBody, user.DisplayName(), outcome)
		if err := s.mailer.SendMail(user.Email, domain.MessageVerificationMailTitle, body); err != nil {
			log.Warnw("failed to send verification mail", "user_id", userID, "error", err)
		}
	}

	return s.Me(ctx, userID)
}

func (s *userService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	byRole, err := s.userRepository.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.userRepository.CountPostsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepository.CountPendingUsers(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.userRepository.CountDeliveries(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		UsersByRole:   byRole,
		PostsByStatus: byStatus,
		PendingUsers:  pending,
		Deliveries:    deliveries,
	}, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.userRepository.GetByID(ctx, id)
}

func (s *userService) toUserWithReviews(ctx context.Context, user *entities.User) (*domain.User, error) {
	var reviews int64
	if user.Role == domain.RoleNGO {
		var err error
		if reviews, err = s.userRepository.CountReviews(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	dto := ToUser(user, int(reviews))
	return &dto, nil
}

func ToUser(user *entities.User, reviewCount int) domain.User {
	dto := domain.User{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Organization:       user.Organization,
		Phone:              user.Phone,
		PhoneVerified:      user.PhoneVerified,
		Address:            user.Address,
		AccountStatus:      user.AccountStatus,
		VerificationStatus: user.VerificationStatus,
		DocumentURL:        user.DocumentURL,
		ProfilePhotoURL:    user.ProfilePhotoURL,
		AverageRating:      user.AverageRating,
		ReviewCount:        reviewCount,
		PeopleCount:        user.PeopleCount,
		CreatedAt:          user.CreatedAt,
	}
	if user.Latitude != nil && user.Longitude != nil {
		dto.Location = &domain.Location{Lat: *user.Latitude, Lng: *user.Longitude}
	}
	return dto
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func coordinates(lat, lng *float64) (*float64, *float64, error) {
	if lat == nil && lng == nil {
		return nil, nil, nil
	}
	if lat == nil || lng == nil || !geo.Valid(domain.Location{Lat: *lat, Lng: *lng}) {
		return nil, nil, domain.ErrInvalidCoordinates
	}
	return lat, lng, nil
}

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
