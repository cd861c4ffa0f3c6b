package donation

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"reserve-backend/domain"
	"reserve-backend/entities"
	"reserve-backend/internal/utils/storage"
	"reserve-backend/pkg/freshness"
	"reserve-backend/pkg/geo"
	"reserve-backend/pkg/geocode"
)

// preparedAtSkew tolerates client clocks running slightly ahead.
const preparedAtSkew = 5 * time.Minute

type (
	ActorProvider interface {
		GetActor(ctx context.Context, userID string) (*domain.Actor, error)
	}

	Notifier interface {
		NotifyNewPost(ctx context.Context, post domain.DonationPost)
	}

	// DonationService is the only place a post's status changes.
	DonationService interface {
		Create(ctx context.Context, req domain.CreatePostRequest, donorID string) (*domain.DonationPost, error)
		Accept(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error)
		MarkReached(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error)
		ConfirmPickup(ctx context.Context, postID, donorID string) (*domain.DonationPost, error)
		CancelPickup(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error)
		CancelDonation(ctx context.Context, postID, donorID string) (*domain.DonationPost, error)
		RateNgo(ctx context.Context, postID, donorID string, req domain.RateNgoRequest) error

		Feed(ctx context.Context, ngoID string, from *domain.Location) ([]domain.FeedEntry, error)
		ListByDonor(ctx context.Context, donorID string) ([]domain.DonationPost, error)
		GetForDonor(ctx context.Context, postID, donorID string) (*domain.DonationPost, error)
		Delete(ctx context.Context, postID, donorID string) error
		UploadImage(ctx context.Context, postID, donorID string, image *multipart.FileHeader) (*domain.DonationPost, error)
		ClassifyItem(ctx context.Context, req domain.FoodItemRequest) domain.ClassifyFoodResponse
	}

	donationService struct {
		donationRepository DonationRepository
		users              ActorProvider
		notifier           Notifier
		classifier         freshness.FreshnessService
		geocoder           geocode.Geocoder
		s3                 storage.AwsS3
		now                func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	users ActorProvider,
	notifier Notifier,
	classifier freshness.FreshnessService,
	geocoder geocode.Geocoder,
	s3 storage.AwsS3,
) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		users:              users,
		notifier:           notifier,
		classifier:         classifier,
		geocoder:           geocoder,
		s3:                 s3,
		now:                time.Now,
	}
}

func (s *donationService) Create(ctx context.Context, req domain.CreatePostRequest, donorID string) (*domain.DonationPost, error) {
	donor, err := s.users.GetActor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor.Role != domain.RoleDonor {
		return nil, domain.ErrRoleNotAllowed
	}
	donorUUID, err := uuid.Parse(donor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if len(req.Items) == 0 {
		return nil, domain.Validation("at least one food item is required")
	}
	now := s.now()
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.PreparedAt.After(now.Add(preparedAtSkew)) {
			return nil, domain.ErrInvalidPreparedTime
		}
	}

	postID := uuid.New()
	items := make([]*entities.FoodItem, 0, len(req.Items))
	for _, item := range req.Items {
		level := s.classifier.ClassifyRequest(ctx, item)
		if !domain.IsDonatable(level) {
			return nil, fmt.Errorf("%w: %s is %s", domain.ErrFreshnessRejected, item.Name, level)
		}
		items = append(items, &entities.FoodItem{
			ID:         uuid.New(),
			FoodPostID: postID,
			Name:       strings.TrimSpace(item.Name),
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Type:       item.Type,
			PreparedAt: item.PreparedAt,
			Storage:    item.Storage,
			Freshness:  level,
		})
	}

	location, address, err := s.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	post := &entities.FoodPost{
		ID:           postID,
		DonorID:      donorUUID,
		DonorName:    donor.Name,
		DonorAddress: address,
		DonorPhone:   donor.Phone,
		Status:       domain.StatusAvailable,
		Latitude:     location.Lat,
		Longitude:    location.Lng,
		FoodItems:    items,
	}
	if err := s.donationRepository.Create(ctx, post); err != nil {
		return nil, err
	}

	created := ToDonationPost(post)
	log.Infow("donation created", "post_id", created.ID, "donor_id", created.DonorID, "items", len(items))

	s.notifier.NotifyNewPost(ctx, created)
	return &created, nil
}

// resolveLocation prefers device coordinates and falls back to geocoding the typed address.
func (s *donationService) resolveLocation(ctx context.Context, req domain.CreatePostRequest) (domain.Location, string, error) {
	if req.Latitude != nil && req.Longitude != nil {
		loc := domain.Location{Lat: *req.Latitude, Lng: *req.Longitude}
		if !geo.Valid(loc) {
			return domain.Location{}, "", domain.ErrInvalidCoordinates
		}
		if !geo.IsUnset(loc) {
			return loc, domain.GPSAddressLabel, nil
		}
	}

	address := geocode.NormalizeAddress(req.Address)
	if address == "" {
		return domain.Location{}, "", domain.ErrLocationRequired
	}
	loc, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return domain.Location{}, "", err
	}
	if geo.IsUnset(loc) {
		return domain.Location{}, "", domain.ErrAddressNotFound
	}
	return loc, address, nil
}

func (s *donationService) Accept(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	ngo, err := s.users.GetActor(ctx, ngoID)
	if err != nil {
		return nil, err
	}
	if ngo.Role != domain.RoleNGO {
		return nil, domain.ErrRoleNotAllowed
	}
	ngoUUID, err := uuid.Parse(ngo.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	rating := ngo.AverageRating
	ok, err := s.donationRepository.ConditionalUpdate(ctx, id,
		Guard{Statuses: []string{domain.StatusAvailable}},
		map[string]interface{}{
			"status":            domain.StatusAccepted,
			"accepted_ngo_id":   ngoUUID,
			"accepted_ngo_name": ngo.Name,
			"ngo_phone":         ngo.Phone,
			"ngo_profile_photo": ngo.ProfilePhotoURL,
			"ngo_rating":        rating,
		})
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.donationRepository.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrPostAlreadyTaken
	}

	log.Infow("donation accepted", "post_id", postID, "ngo_id", ngoID)
	return s.reload(ctx, id)
}

func (s *donationService) MarkReached(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error) {
	return s.ngoTransition(ctx, postID, ngoID, domain.ErrPostNotAccepted, map[string]interface{}{
		"status": domain.StatusReached,
	})
}

func (s *donationService) CancelPickup(ctx context.Context, postID, ngoID string) (*domain.DonationPost, error) {
	return s.ngoTransition(ctx, postID, ngoID, domain.ErrPostNotAccepted, withClearedAssignment(map[string]interface{}{
		"status": domain.StatusAvailable,
	}))
}

// ngoTransition moves an ACCEPTED post on behalf of the NGO assigned to it.
func (s *donationService) ngoTransition(ctx context.Context, postID, ngoID string, stateErr error, updates map[string]interface{}) (*domain.DonationPost, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	ngoUUID, err := uuid.Parse(ngoID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	ok, err := s.donationRepository.ConditionalUpdate(ctx, id,
		Guard{Statuses: []string{domain.StatusAccepted}, NgoID: ngoUUID}, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		post, err := s.donationRepository.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if post.AcceptedNgoID == nil || *post.AcceptedNgoID != ngoUUID {
			return nil, domain.ErrNotAssignedNgo
		}
		return nil, stateErr
	}

	log.Infow("donation updated by ngo", "post_id", postID, "ngo_id", ngoID, "status", updates["status"])
	return s.reload(ctx, id)
}

func (s *donationService) ConfirmPickup(ctx context.Context, postID, donorID string) (*domain.DonationPost, error) {
	completedAt := s.now()
	return s.donorTransition(ctx, postID, donorID,
		[]string{domain.StatusReached}, domain.ErrPostNotReached,
		map[string]interface{}{
			"status":       domain.StatusCompleted,
			"completed_at": completedAt,
		})
}

func (s *donationService) CancelDonation(ctx context.Context, postID, donorID string) (*domain.DonationPost, error) {
	return s.donorTransition(ctx, postID, donorID,
		[]string{domain.StatusAvailable, domain.StatusAccepted, domain.StatusReached}, domain.ErrPostClosed,
		withClearedAssignment(map[string]interface{}{
			"status": domain.StatusCancelled,
		}))
}

func (s *donationService) donorTransition(ctx context.Context, postID, donorID string, from []string, stateErr error, updates map[string]interface{}) (*domain.DonationPost, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	ok, err := s.donationRepository.ConditionalUpdate(ctx, id, Guard{Statuses: from, DonorID: donorUUID}, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		post, err := s.donationRepository.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if post.DonorID != donorUUID {
			return nil, domain.ErrNotPostOwner
		}
		return nil, stateErr
	}

	log.Infow("donation updated by donor", "post_id", postID, "donor_id", donorID, "status", updates["status"])
	return s.reload(ctx, id)
}

func (s *donationService) RateNgo(ctx context.Context, postID, donorID string, req domain.RateNgoRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.ErrInvalidRating
	}
	id, err := uuid.Parse(postID)
	if err != nil {
		return domain.ErrParseUUID
	}
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return domain.ErrParseUUID
	}

	post, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case post.DonorID != donorUUID:
		return domain.ErrNotPostOwner
	case post.Status != domain.StatusCompleted:
		return domain.ErrPostNotCompleted
	case post.IsRated:
		return domain.ErrPostAlreadyRated
	case post.AcceptedNgoID == nil:
		return domain.ErrDonationHasNoNgo
	}

	review := &entities.Review{
		ID:        uuid.New(),
		NgoID:     *post.AcceptedNgoID,
		DonorID:   donorUUID,
		DonorName: post.DonorName,
		PostID:    post.ID,
		Rating:    req.Rating,
		Feedback:  strings.TrimSpace(req.Feedback),
	}
	ok, err := s.donationRepository.Rate(ctx, id, donorUUID, review)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPostAlreadyRated
	}

	log.Infow("ngo rated", "post_id", postID, "ngo_id", review.NgoID.String(), "rating", req.Rating)
	return nil
}

func (s *donationService) Feed(ctx context.Context, ngoID string, from *domain.Location) ([]domain.FeedEntry, error) {
	ngoUUID, err := uuid.Parse(ngoID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if from != nil && !geo.Valid(*from) {
		return nil, domain.ErrInvalidCoordinates
	}

	posts, err := s.donationRepository.ListFeed(ctx, ngoUUID)
	if err != nil {
		return nil, err
	}
	return RankFeed(toDonationPosts(posts), ngoID, from), nil
}

func (s *donationService) ListByDonor(ctx context.Context, donorID string) ([]domain.DonationPost, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	posts, err := s.donationRepository.ListByDonor(ctx, donorUUID)
	if err != nil {
		return nil, err
	}
	return toDonationPosts(posts), nil
}

func (s *donationService) GetForDonor(ctx context.Context, postID, donorID string) (*domain.DonationPost, error) {
	post, err := s.ownedPost(ctx, postID, donorID)
	if err != nil {
		return nil, err
	}
	dto := ToDonationPost(post)
	return &dto, nil
}

// Delete removes a donor's own post regardless of status.
func (s *donationService) Delete(ctx context.Context, postID, donorID string) error {
	post, err := s.ownedPost(ctx, postID, donorID)
	if err != nil {
		return err
	}

	ok, err := s.donationRepository.Delete(ctx, post.ID, post.DonorID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDonationNotFound
	}

	if post.ImageURL != "" && s.s3 != nil {
		if err := s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(post.ImageURL)); err != nil {
			log.Warnw("failed to delete food image", "post_id", postID, "error", err)
		}
	}
	return nil
}

func (s *donationService) UploadImage(ctx context.Context, postID, donorID string, image *multipart.FileHeader) (*domain.DonationPost, error) {
	if s.s3 == nil {
		return nil, domain.ErrStorageUnavailable
	}
	post, err := s.ownedPost(ctx, postID, donorID)
	if err != nil {
		return nil, err
	}

	objectKey, err := s.s3.UploadFile(fmt.Sprintf("post-%s", post.ID.String()), image, "food-posts", storage.AllowImage...)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFileType) {
			return nil, domain.ErrUnsupportedFoodImage
		}
		return nil, err
	}

	ok, err := s.donationRepository.ConditionalUpdate(ctx, post.ID, Guard{DonorID: post.DonorID},
		map[string]interface{}{"image_url": s.s3.GetPublicLinkKey(objectKey)})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	return s.reload(ctx, post.ID)
}

func (s *donationService) ClassifyItem(ctx context.Context, req domain.FoodItemRequest) domain.ClassifyFoodResponse {
	level := s.classifier.ClassifyRequest(ctx, req)
	return domain.ClassifyFoodResponse{
		Freshness: level,
		Donatable: domain.IsDonatable(level),
	}
}

func (s *donationService) ownedPost(ctx context.Context, postID, donorID string) (*entities.FoodPost, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	post, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.DonorID != donorUUID {
		return nil, domain.ErrNotPostOwner
	}
	return post, nil
}

func (s *donationService) reload(ctx context.Context, id uuid.UUID) (*domain.DonationPost, error) {
	post, err := s.donationRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDonationPost(post)
	return &dto, nil
}

func withClearedAssignment(updates map[string]interface{}) map[string]interface{} {
	updates["accepted_ngo_id"] = nil
	updates["accepted_ngo_name"] = nil
	updates["ngo_phone"] = nil
	updates["ngo_profile_photo"] = nil
	updates["ngo_rating"] = nil
	return updates
}
