package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

type (
	UserRepository interface {
		Create(ctx context.Context, user *entities.User) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetByEmail(ctx context.Context, email string) (*entities.User, error)
		Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
		List(ctx context.Context, role string, page, limit int) ([]*entities.User, int64, error)
		CountReviews(ctx context.Context, ngoID uuid.UUID) (int64, error)
		ListReviews(ctx context.Context, ngoID uuid.UUID) ([]*entities.Review, error)

		ReplaceOtp(ctx context.Context, otp *entities.Otp) error
		GetOtp(ctx context.Context, phone string) (*entities.Otp, error)
		IncrementOtpAttempts(ctx context.Context, id uuid.UUID, limit int) (bool, error)
		DeleteOtp(ctx context.Context, id uuid.UUID) error
		ClaimOtp(ctx context.Context, id uuid.UUID, code string) (bool, error)
		MarkPhoneVerified(ctx context.Context, phone string) error

		CountUsersByRole(ctx context.Context) (map[string]int64, error)
		CountPostsByStatus(ctx context.Context) (map[string]int64, error)
		CountPendingUsers(ctx context.Context) (int64, error)
		CountDeliveries(ctx context.Context) (int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}

	groupCount struct {
		GroupKey string
		Total    int64
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, role string, page, limit int) ([]*entities.User, int64, error) {
	var (
		users []*entities.User
		total int64
	)

	query := r.db.WithContext(ctx).Model(&entities.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) CountReviews(ctx context.Context, ngoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Review{}).Where("ngo_id = ?", ngoID).Count(&count).Error
	return count, err
}

func (r *userRepository) ListReviews(ctx context.Context, ngoID uuid.UUID) ([]*entities.Review, error) {
	var reviews []*entities.Review
	err := r.db.WithContext(ctx).Where("ngo_id = ?", ngoID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// ReplaceOtp stores otp as the only pending code for its phone.
func (r *userRepository) ReplaceOtp(ctx context.Context, otp *entities.Otp) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", otp.Phone).Delete(&entities.Otp{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

func (r *userRepository) GetOtp(ctx context.Context, phone string) (*entities.Otp, error) {
	var otp entities.Otp
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOtpNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// IncrementOtpAttempts spends one attempt. It reports false once limit attempts are used.
func (r *userRepository) IncrementOtpAttempts(ctx context.Context, id uuid.UUID, limit int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Otp{}).
		Where("id = ? AND attempts < ?", id, limit).
		Update("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClaimOtp deletes the code only if it still matches, so one code verifies once.
func (r *userRepository) ClaimOtp(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND code = ?", id, code).Delete(&entities.Otp{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) DeleteOtp(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Otp{}).Error
}

func (r *userRepository) MarkPhoneVerified(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("phone = ?", phone).
		Update("phone_verified", true).Error
}

func (r *userRepository) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	return r.groupCounts(ctx, &entities.User{}, "role")
}

func (r *userRepository) CountPostsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCounts(ctx, &entities.FoodPost{}, "status")
}

func (r *userRepository) CountPendingUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("verification_status = ?", domain.VerificationPending).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountDeliveries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.DeliveryRecord{}).Count(&count).Error
	return count, err
}

func (r *userRepository) groupCounts(ctx context.Context, model interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Model(model).
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
