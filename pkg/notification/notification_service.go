package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

const defaultFoodName = "Food Donation"

type (
	NotificationService interface {
		NotifyNewPost(ctx context.Context, post domain.DonationPost)
		FanOutNewPost(ctx context.Context, post domain.DonationPost) (int64, error)
		List(ctx context.Context, userID string) ([]domain.Notification, error)
		MarkRead(ctx context.Context, notificationID, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{notificationRepository: notificationRepository}
}

// NotifyNewPost is the best-effort hook the donation lifecycle calls after a post is created.
func (s *notificationService) NotifyNewPost(ctx context.Context, post domain.DonationPost) {
	created, err := s.FanOutNewPost(ctx, post)
	if err != nil {
		log.Errorw("notification fan-out failed", "post_id", post.ID, "error", err)
		return
	}
	log.Infow("notification fan-out", "post_id", post.ID, "created", created)
}

// FanOutNewPost creates one "New Pickup Request" per NGO. Re-running it for the same post
// inserts nothing new.
func (s *notificationService) FanOutNewPost(ctx context.Context, post domain.DonationPost) (int64, error) {
	postID, err := uuid.Parse(post.ID)
	if err != nil {
		return 0, domain.ErrParseUUID
	}

	ngoIDs, err := s.notificationRepository.ListNgoIDs(ctx)
	if err != nil {
		return 0, err
	}

	foodName := defaultFoodName
	if len(post.Items) > 0 && post.Items[0].Name != "" {
		foodName = post.Items[0].Name
	}
	payload, err := json.Marshal(domain.NotificationData{
		DonorID:  post.DonorID,
		PostID:   post.ID,
		FoodName: foodName,
	})
	if err != nil {
		return 0, err
	}
	message := fmt.Sprintf("%d items available near %s", len(post.Items), post.DonorAddress)

	notifications := make([]*entities.Notification, 0, len(ngoIDs))
	for _, ngoID := range ngoIDs {
		notifications = append(notifications, &entities.Notification{
			ID:          uuid.New(),
			RecipientID: ngoID,
			PostID:      postID,
			Title:       domain.NotificationTitleNewPickup,
			Message:     message,
			Data:        datatypes.JSON(payload),
		})
	}
	return s.notificationRepository.CreateMany(ctx, notifications)
}

func (s *notificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	recipientID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rows, err := s.notificationRepository.ListByRecipient(ctx, recipientID, domain.NotificationInboxLimit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Notification, 0, len(rows))
	for _, n := range rows {
		var data domain.NotificationData
		if len(n.Data) > 0 {
			if err := json.Unmarshal(n.Data, &data); err != nil {
				log.Warnw("malformed notification payload", "notification_id", n.ID.String(), "error", err)
			}
		}
		result = append(result, domain.Notification{
			ID:          n.ID.String(),
			RecipientID: n.RecipientID.String(),
			Title:       n.Title,
			Message:     n.Message,
			Data:        data,
			IsRead:      n.IsRead,
			CreatedAt:   n.CreatedAt,
		})
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipientID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	ok, err := s.notificationRepository.MarkRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotificationNotFound
	}
	return nil
}
