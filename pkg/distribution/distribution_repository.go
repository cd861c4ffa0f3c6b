package distribution

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

type (
	DistributionRepository interface {
		GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
		ListRecipients(ctx context.Context) ([]*entities.User, error)
		UpdatePeopleCount(ctx context.Context, recipientID uuid.UUID, count int) error
		GetPost(ctx context.Context, id uuid.UUID) (*entities.FoodPost, error)
		ListPostsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.FoodPost, error)

		CreateDelivery(ctx context.Context, record *entities.DeliveryRecord) (bool, error)
		ListDeliveriesByNgo(ctx context.Context, ngoID uuid.UUID, date string) ([]*entities.DeliveryRecord, error)
		ListDeliveriesByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entities.DeliveryRecord, error)
		DeliveredPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	distributionRepository struct {
		db *gorm.DB
	}
)

func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
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

// ListRecipients returns verified, active recipients ordered by name.
func (r *distributionRepository) ListRecipients(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND verification_status = ? AND account_status = ?",
			domain.RoleRecipient, domain.VerificationVerified, domain.AccountActive).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *distributionRepository) UpdatePeopleCount(ctx context.Context, recipientID uuid.UUID, count int) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ? AND role = ?", recipientID, domain.RoleRecipient).
		Update("people_count", count)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotARecipient
	}
	return nil
}

func (r *distributionRepository) GetPost(ctx context.Context, id uuid.UUID) (*entities.FoodPost, error) {
	var post entities.FoodPost
	err := r.db.WithContext(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDonationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *distributionRepository) ListPostsByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.FoodPost, error) {
	var posts []*entities.FoodPost
	err := r.db.WithContext(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// CreateDelivery reports false when the post already has a delivery record.
func (r *distributionRepository) CreateDelivery(ctx context.Context, record *entities.DeliveryRecord) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit("Recipient").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "post_id"}}, DoNothing: true}).
		Create(record)
	return res.RowsAffected == 1, res.Error
}

func (r *distributionRepository) ListDeliveriesByNgo(ctx context.Context, ngoID uuid.UUID, date string) ([]*entities.DeliveryRecord, error) {
	var records []*entities.DeliveryRecord
	err := r.db.WithContext(ctx).
		Where("ngo_id = ? AND date = ?", ngoID, date).
		Order("delivery_time DESC").
		Find(&records).Error
	return records, err
}

func (r *distributionRepository) ListDeliveriesByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entities.DeliveryRecord, error) {
	var records []*entities.DeliveryRecord
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("delivery_time DESC").
		Find(&records).Error
	return records, err
}

func (r *distributionRepository) DeliveredPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	delivered := make(map[uuid.UUID]bool)
	if len(postIDs) == 0 {
		return delivered, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&entities.DeliveryRecord{}).
		Where("post_id IN ?", postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		delivered[id] = true
	}
	return delivered, nil
}
