package notification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

type (
	NotificationRepository interface {
		ListNgoIDs(ctx context.Context) ([]uuid.UUID, error)
		CreateMany(ctx context.Context, notifications []*entities.Notification) (int64, error)
		ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]*entities.Notification, error)
		MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// ListNgoIDs returns every verified NGO whose account has not been disabled.
func (r *notificationRepository) ListNgoIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("role = ? AND account_status <> ? AND verification_status = ?",
			domain.RoleNGO, domain.AccountDisabled, domain.VerificationVerified).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// CreateMany skips rows whose (recipient, post) pair already exists and reports how many were inserted.
func (r *notificationRepository) CreateMany(ctx context.Context, notifications []*entities.Notification) (int64, error) {
	if len(notifications) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipient_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&notifications)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]*entities.Notification, error) {
	var notifications []*entities.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	return res.RowsAffected == 1, res.Error
}
