package distribution

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"reserve-backend/domain"
	"reserve-backend/entities"
	"reserve-backend/pkg/geo"
)

type (
	DistributionService interface {
		ListRecipients(ctx context.Context, ngoID string, from *domain.Location) ([]domain.Recipient, error)
		RecordDelivery(ctx context.Context, ngoID string, req domain.RecordDeliveryRequest) (*domain.DeliveryRecord, error)
		ListDeliveries(ctx context.Context, ngoID, date string) ([]domain.DeliveryRecord, error)
		ListIncoming(ctx context.Context, recipientID string) ([]domain.DeliveryRecord, error)
		UpdatePeopleCount(ctx context.Context, recipientID string, req domain.UpdatePeopleCountRequest) error
		DonorHistory(ctx context.Context, donorID string) ([]domain.DonationHistoryRecord, error)
	}

	distributionService struct {
		distributionRepository DistributionRepository
		now                    func() time.Time
	}
)

func NewDistributionService(distributionRepository DistributionRepository) DistributionService {
	return &distributionService{
		distributionRepository: distributionRepository,
		now:                    time.Now,
	}
}

// ListRecipients ranks recipients by distance from from, or from the NGO's saved
// location when from is nil. Recipients without a location sort last.
func (s *distributionService) ListRecipients(ctx context.Context, ngoID string, from *domain.Location) ([]domain.Recipient, error) {
	if from == nil {
		id, err := uuid.Parse(ngoID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		ngo, err := s.distributionRepository.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		from = userLocation(ngo)
	}

	users, err := s.distributionRepository.ListRecipients(ctx)
	if err != nil {
		return nil, err
	}

	recipients := make([]domain.Recipient, 0, len(users))
	for _, u := range users {
		loc := domain.Location{}
		if l := userLocation(u); l != nil {
			loc = *l
		}
		recipients = append(recipients, domain.Recipient{
			ID:          u.ID.String(),
			Name:        u.DisplayName(),
			Address:     u.Address,
			Location:    loc,
			PeopleCount: u.PeopleCount,
			Distance:    geo.DistanceBetween(from, loc),
		})
	}

	sort.SliceStable(recipients, func(i, j int) bool {
		a, b := recipients[i].Distance, recipients[j].Distance
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a < *b
	})
	return recipients, nil
}

func (s *distributionService) RecordDelivery(ctx context.Context, ngoID string, req domain.RecordDeliveryRequest) (*domain.DeliveryRecord, error) {
	ngoUUID, err := uuid.Parse(ngoID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	post, err := s.distributionRepository.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AcceptedNgoID == nil || *post.AcceptedNgoID != ngoUUID {
		return nil, domain.ErrNotAssignedNgo
	}
	if post.Status != domain.StatusCompleted {
		return nil, domain.ErrPostNotCompleted
	}

	recipient, err := s.distributionRepository.GetUser(ctx, recipientID)
	if err != nil {
		return nil, domain.ErrRecipientNotFound
	}
	if recipient.Role != domain.RoleRecipient || recipient.VerificationStatus != domain.VerificationVerified {
		return nil, domain.ErrNotARecipient
	}

	now := s.now().UTC()
	pickup := now
	if post.CompletedAt != nil {
		pickup = *post.CompletedAt
	}
	record := &entities.DeliveryRecord{
		ID:            uuid.New(),
		NgoID:         ngoUUID,
		DonorID:       post.DonorID,
		DonorName:     post.DonorName,
		RecipientID:   recipient.ID,
		RecipientName: recipient.DisplayName(),
		PostID:        post.ID,
		FoodType:      foodSummary(post.FoodItems),
		Quantity:      quantitySummary(post.FoodItems),
		PickupTime:    pickup,
		DeliveryTime:  now,
		Status:        domain.DeliveryStatusCompleted,
		Date:          now.Format(domain.DeliveryDateLayout),
	}

	created, err := s.distributionRepository.CreateDelivery(ctx, record)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, domain.ErrPostAlreadyDelivered
	}

	log.Infow("delivery recorded", "post_id", req.PostID, "ngo_id", ngoID, "recipient_id", req.RecipientID)
	dto := toDeliveryRecord(record)
	return &dto, nil
}

func (s *distributionService) ListDeliveries(ctx context.Context, ngoID, date string) ([]domain.DeliveryRecord, error) {
	ngoUUID, err := uuid.Parse(ngoID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if date == "" {
		date = s.now().UTC().Format(domain.DeliveryDateLayout)
	} else if _, err := time.Parse(domain.DeliveryDateLayout, date); err != nil {
		return nil, domain.ErrInvalidDeliveryDate
	}

	records, err := s.distributionRepository.ListDeliveriesByNgo(ctx, ngoUUID, date)
	if err != nil {
		return nil, err
	}
	return toDeliveryRecords(records), nil
}

func (s *distributionService) ListIncoming(ctx context.Context, recipientID string) ([]domain.DeliveryRecord, error) {
	id, err := uuid.Parse(recipientID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	records, err := s.distributionRepository.ListDeliveriesByRecipient(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeliveryRecords(records), nil
}

func (s *distributionService) UpdatePeopleCount(ctx context.Context, recipientID string, req domain.UpdatePeopleCountRequest) error {
	if req.PeopleCount <= 0 {
		return domain.ErrPeopleCountNotPositive
	}
	id, err := uuid.Parse(recipientID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.distributionRepository.UpdatePeopleCount(ctx, id, req.PeopleCount)
}

func (s *distributionService) DonorHistory(ctx context.Context, donorID string) ([]domain.DonationHistoryRecord, error) {
	id, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	posts, err := s.distributionRepository.ListPostsByDonor(ctx, id)
	if err != nil {
		return nil, err
	}
	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	delivered, err := s.distributionRepository.DeliveredPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	history := make([]domain.DonationHistoryRecord, 0, len(posts))
	for _, p := range posts {
		var prepTime time.Time
		if len(p.FoodItems) > 0 {
			prepTime = p.FoodItems[0].PreparedAt
		}
		history = append(history, domain.DonationHistoryRecord{
			PostID:        p.ID.String(),
			FoodType:      foodSummary(p.FoodItems),
			Quantity:      quantitySummary(p.FoodItems),
			PrepTime:      prepTime,
			SubmittedTime: p.CreatedAt,
			Date:          p.CreatedAt.Format(domain.DeliveryDateLayout),
			Status:        historyStatus(p.Status, delivered[p.ID]),
		})
	}
	return history, nil
}

func historyStatus(status string, delivered bool) string {
	switch status {
	case domain.StatusCompleted:
		if delivered {
			return domain.HistoryDelivered
		}
		return domain.HistoryPicked
	case domain.StatusCancelled:
		return domain.HistoryCancelled
	default:
		return domain.HistoryPending
	}
}

func userLocation(u *entities.User) *domain.Location {
	if u.Latitude == nil || u.Longitude == nil {
		return nil
	}
	return &domain.Location{Lat: *u.Latitude, Lng: *u.Longitude}
}

func foodSummary(items []*entities.FoodItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

func quantitySummary(items []*entities.FoodItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s %s", strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Unit))
	}
	return strings.Join(parts, ", ")
}

func toDeliveryRecord(r *entities.DeliveryRecord) domain.DeliveryRecord {
	return domain.DeliveryRecord{
		ID:            r.ID.String(),
		NgoID:         r.NgoID.String(),
		DonorID:       r.DonorID.String(),
		DonorName:     r.DonorName,
		RecipientID:   r.RecipientID.String(),
		RecipientName: r.RecipientName,
		PostID:        r.PostID.String(),
		FoodType:      r.FoodType,
		Quantity:      r.Quantity,
		PickupTime:    r.PickupTime,
		DeliveryTime:  r.DeliveryTime,
		Status:        r.Status,
		Date:          r.Date,
	}
}

func toDeliveryRecords(records []*entities.DeliveryRecord) []domain.DeliveryRecord {
	result := make([]domain.DeliveryRecord, 0, len(records))
	for _, r := range records {
		result = append(result, toDeliveryRecord(r))
	}
	return result
}
