package donation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

type (
	// Guard is the precondition a conditional write must still observe at write time.
	// Zero-valued ids are not checked.
	Guard struct {
		Statuses []string
		DonorID  uuid.UUID
		NgoID    uuid.UUID
	}

	DonationRepository interface {
		Create(ctx context.Context, post *entities.FoodPost) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.FoodPost, error)
		ConditionalUpdate(ctx context.Context, id uuid.UUID, guard Guard, updates map[string]interface{}) (bool, error)
		ListFeed(ctx context.Context, ngoID uuid.UUID) ([]*entities.FoodPost, error)
		ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.FoodPost, error)
		Delete(ctx context.Context, id, donorID uuid.UUID) (bool, error)
		Rate(ctx context.Context, id, donorID uuid.UUID, review *entities.Review) (bool, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, post *entities.FoodPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := post.FoodItems
		post.FoodItems = nil
		if err := tx.Omit("Donor").Create(post).Error; err != nil {
			return err
		}
		for i, item := range items {
			item.FoodPostID = post.ID
			item.Position = i
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		post.FoodItems = items
		return nil
	})
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FoodPost, error) {
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

// ConditionalUpdate applies updates only if the row still satisfies guard.
// It reports whether a row was written.
func (r *donationRepository) ConditionalUpdate(ctx context.Context, id uuid.UUID, guard Guard, updates map[string]interface{}) (bool, error) {
	res := guard.apply(r.db.WithContext(ctx).Model(&entities.FoodPost{}).Where("id = ?", id)).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *donationRepository) ListFeed(ctx context.Context, ngoID uuid.UUID) ([]*entities.FoodPost, error) {
	var posts []*entities.FoodPost
	err := r.db.WithContext(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("status = ?", domain.StatusAvailable).
		Or("status IN ? AND accepted_ngo_id = ?", []string{domain.StatusAccepted, domain.StatusReached}, ngoID).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*entities.FoodPost, error) {
	var posts []*entities.FoodPost
	err := r.db.WithContext(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *donationRepository) Delete(ctx context.Context, id, donorID uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND donor_id = ?", id, donorID).Delete(&entities.FoodPost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("food_post_id = ?", id).Delete(&entities.FoodItem{}).Error
	})
	return deleted, err
}

// Rate flips is_rated, stores the review and refreshes the NGO's average in one transaction.
// It reports false without writing anything when the post was already rated.
func (r *donationRepository) Rate(ctx context.Context, id, donorID uuid.UUID, review *entities.Review) (bool, error) {
	rated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.FoodPost{}).
			Where("id = ? AND donor_id = ? AND status = ? AND is_rated = ?", id, donorID, domain.StatusCompleted, false).
			Update("is_rated", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var ratings []int
		if err := tx.Model(&entities.Review{}).Where("ngo_id = ?", review.NgoID).Pluck("rating", &ratings).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.User{}).Where("id = ?", review.NgoID).
			Update("average_rating", averageRating(ratings)).Error; err != nil {
			return err
		}

		rated = true
		return nil
	})
	return rated, err
}

func (g Guard) apply(db *gorm.DB) *gorm.DB {
	if len(g.Statuses) == 1 {
		db = db.Where("status = ?", g.Statuses[0])
	} else if len(g.Statuses) > 1 {
		db = db.Where("status IN ?", g.Statuses)
	}
	if g.DonorID != uuid.Nil {
		db = db.Where("donor_id = ?", g.DonorID)
	}
	if g.NgoID != uuid.Nil {
		db = db.Where("accepted_ngo_id = ?", g.NgoID)
	}
	return db
}
