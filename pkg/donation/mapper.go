package donation

import (
	"math"

	"reserve-backend/domain"
	"reserve-backend/entities"
)

func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}

func ToDonationPost(post *entities.FoodPost) domain.DonationPost {
	items := make([]domain.FoodItem, 0, len(post.FoodItems))
	for _, item := range post.FoodItems {
		items = append(items, domain.FoodItem{
			ID:         item.ID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Type:       item.Type,
			PreparedAt: item.PreparedAt,
			Storage:    item.Storage,
			Freshness:  item.Freshness,
		})
	}

	dto := domain.DonationPost{
		ID:           post.ID.String(),
		DonorID:      post.DonorID.String(),
		DonorName:    post.DonorName,
		DonorAddress: post.DonorAddress,
		DonorPhone:   post.DonorPhone,
		Items:        items,
		Status:       post.Status,
		Location:     domain.Location{Lat: post.Latitude, Lng: post.Longitude},
		ImageURL:     post.ImageURL,
		NgoRating:    post.NgoRating,
		IsRated:      post.IsRated,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		CompletedAt:  post.CompletedAt,
	}
	if post.AcceptedNgoID != nil {
		dto.AcceptedNgoID = post.AcceptedNgoID.String()
	}
	if post.AcceptedNgoName != nil {
		dto.AcceptedNgoName = *post.AcceptedNgoName
	}
	if post.NgoPhone != nil {
		dto.NgoPhone = *post.NgoPhone
	}
	if post.NgoProfilePhoto != nil {
		dto.NgoProfilePhoto = *post.NgoProfilePhoto
	}
	return dto
}

func toDonationPosts(posts []*entities.FoodPost) []domain.DonationPost {
	result := make([]domain.DonationPost, 0, len(posts))
	for _, p := range posts {
		result = append(result, ToDonationPost(p))
	}
	return result
}
