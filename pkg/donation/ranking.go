package donation

import (
	"sort"

	"reserve-backend/domain"
	"reserve-backend/pkg/geo"
)

// RankFeed puts posts already assigned to ngoID first, then orders by ascending
// distance from the requester. Posts without a distance sort last. The sort is
// stable, so equal keys keep their input order.
func RankFeed(posts []domain.DonationPost, ngoID string, from *domain.Location) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, domain.FeedEntry{
			DonationPost: p,
			Distance:     geo.DistanceBetween(from, p.Location),
			IsMine:       ngoID != "" && p.AcceptedNgoID == ngoID && domain.IsAssignedStatus(p.Status),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsMine != b.IsMine {
			return a.IsMine
		}
		switch {
		case a.Distance == nil && b.Distance == nil:
			return false
		case a.Distance == nil:
			return false
		case b.Distance == nil:
			return true
		}
		return *a.Distance < *b.Distance
	})
	return entries
}
