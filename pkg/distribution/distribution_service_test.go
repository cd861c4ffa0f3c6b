package distribution

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reserve-backend/domain"
	"reserve-backend/entities"
	"reserve-backend/internal/testutil"
)

var today = time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

func newService(db *gorm.DB) *distributionService {
	svc := NewDistributionService(NewDistributionRepository(db)).(*distributionService)
	svc.now = func() time.Time { return today }
	return svc
}

func createPost(t *testing.T, db *gorm.DB, donor *entities.User, status string, ngo *entities.User) *entities.FoodPost {
	t.Helper()
	completedAt := today.Add(-2 * time.Hour)
	post := &entities.FoodPost{
		ID:        uuid.New(),
		DonorID:   donor.ID,
		DonorName: donor.Name,
		Status:    status,
		Latitude:  13.08,
		Longitude: 80.27,
		FoodItems: []*entities.FoodItem{
			{ID: uuid.New(), Name: "Rice", Quantity: 5, Unit: "kg", PreparedAt: today.Add(-3 * time.Hour)},
			{ID: uuid.New(), Name: "Dal", Quantity: 2.5, Unit: "L", Position: 1},
		},
	}
	if ngo != nil {
		post.AcceptedNgoID = &ngo.ID
		name := ngo.Name
		post.AcceptedNgoName = &name
	}
	if status == domain.StatusCompleted {
		post.CompletedAt = &completedAt
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestListRecipients_RankedByDistance(t *testing.T) {
	db := testutil.NewDB(t)
	ngo := testutil.CreateUser(t, db, domain.RoleNGO, "ngo", func(u *entities.User) {
		u.Latitude, u.Longitude = ptr(13.08), ptr(80.27)
	})
	testutil.CreateUser(t, db, domain.RoleRecipient, "far", func(u *entities.User) {
		u.Latitude, u.Longitude = ptr(13.50), ptr(80.27)
	})
	testutil.CreateUser(t, db, domain.RoleRecipient, "near", func(u *entities.User) {
		u.Latitude, u.Longitude = ptr(13.09), ptr(80.27)
		u.PeopleCount = 35
	})
	testutil.CreateUser(t, db, domain.RoleRecipient, "another-unknown")
	testutil.CreateUser(t, db, domain.RoleRecipient, "pending", func(u *entities.User) {
		u.VerificationStatus = domain.VerificationPending
	})

	recipients, err := newService(db).ListRecipients(context.Background(), ngo.ID.String(), nil)
	require.NoError(t, err)

	require.Len(t, recipients, 3)
	assert.Equal(t, "near", recipients[0].Name)
	assert.Equal(t, 35, recipients[0].PeopleCount)
	require.NotNil(t, recipients[0].Distance)
	assert.Equal(t, 1.1, *recipients[0].Distance)
	assert.Equal(t, "far", recipients[1].Name)
	assert.Equal(t, "another-unknown", recipients[2].Name)
	assert.Nil(t, recipients[2].Distance)
}

func TestRecordDelivery(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateUser(t, db, domain.RoleDonor, "hotel")
	ngo := testutil.CreateUser(t, db, domain.RoleNGO, "ngo")
	other := testutil.CreateUser(t, db, domain.RoleNGO, "other")
	home := testutil.CreateUser(t, db, domain.RoleRecipient, "home", func(u *entities.User) { u.Organization = "Little Stars" })
	svc := newService(db)
	ctx := context.Background()

	done := createPost(t, db, donor, domain.StatusCompleted, ngo)
	req := domain.RecordDeliveryRequest{PostID: done.ID.String(), RecipientID: home.ID.String()}

	_, err := svc.RecordDelivery(ctx, other.ID.String(), req)
	assert.ErrorIs(t, err, domain.ErrNotAssignedNgo)

	record, err := svc.RecordDelivery(ctx, ngo.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, "Little Stars", record.RecipientName)
	assert.Equal(t, "Rice, Dal", record.FoodType)
	assert.Equal(t, "5 kg, 2.5 L", record.Quantity)
	assert.Equal(t, "2025-03-01", record.Date)
	assert.Equal(t, domain.DeliveryStatusCompleted, record.Status)

	_, err = svc.RecordDelivery(ctx, ngo.ID.String(), req)
	assert.ErrorIs(t, err, domain.ErrPostAlreadyDelivered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	inProgress := createPost(t, db, donor, domain.StatusReached, ngo)
	_, err = svc.RecordDelivery(ctx, ngo.ID.String(), domain.RecordDeliveryRequest{PostID: inProgress.ID.String(), RecipientID: home.ID.String()})
	assert.ErrorIs(t, err, domain.ErrPostNotCompleted)

	another := createPost(t, db, donor, domain.StatusCompleted, ngo)
	_, err = svc.RecordDelivery(ctx, ngo.ID.String(), domain.RecordDeliveryRequest{PostID: another.ID.String(), RecipientID: donor.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotARecipient)

	deliveries, err := svc.ListDeliveries(ctx, ngo.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, done.ID.String(), deliveries[0].PostID)

	deliveries, err = svc.ListDeliveries(ctx, ngo.ID.String(), "2025-02-28")
	require.NoError(t, err)
	assert.Empty(t, deliveries)

	_, err = svc.ListDeliveries(ctx, ngo.ID.String(), "01/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidDeliveryDate)

	incoming, err := svc.ListIncoming(ctx, home.ID.String())
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "hotel", incoming[0].DonorName)
}

func TestDonorHistory_DerivedStatus(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateUser(t, db, domain.RoleDonor, "hotel")
	ngo := testutil.CreateUser(t, db, domain.RoleNGO, "ngo")
	home := testutil.CreateUser(t, db, domain.RoleRecipient, "home")
	svc := newService(db)
	ctx := context.Background()

	posts := map[string]*entities.FoodPost{
		domain.HistoryPending:   createPost(t, db, donor, domain.StatusAccepted, ngo),
		domain.HistoryPicked:    createPost(t, db, donor, domain.StatusCompleted, ngo),
		domain.HistoryDelivered: createPost(t, db, donor, domain.StatusCompleted, ngo),
		domain.HistoryCancelled: createPost(t, db, donor, domain.StatusCancelled, nil),
	}
	_, err := svc.RecordDelivery(ctx, ngo.ID.String(), domain.RecordDeliveryRequest{
		PostID:      posts[domain.HistoryDelivered].ID.String(),
		RecipientID: home.ID.String(),
	})
	require.NoError(t, err)

	history, err := svc.DonorHistory(ctx, donor.ID.String())
	require.NoError(t, err)
	require.Len(t, history, len(posts))

	byPost := map[string]domain.DonationHistoryRecord{}
	for _, h := range history {
		byPost[h.PostID] = h
	}
	for want, post := range posts {
		assert.Equal(t, want, byPost[post.ID.String()].Status)
	}
	assert.Equal(t, "5 kg, 2.5 L", history[0].Quantity)
}

func TestUpdatePeopleCount(t *testing.T) {
	db := testutil.NewDB(t)
	home := testutil.CreateUser(t, db, domain.RoleRecipient, "home")
	ngo := testutil.CreateUser(t, db, domain.RoleNGO, "ngo")
	svc := newService(db)
	ctx := context.Background()

	require.NoError(t, svc.UpdatePeopleCount(ctx, home.ID.String(), domain.UpdatePeopleCountRequest{PeopleCount: 42}))

	var stored entities.User
	require.NoError(t, db.Where("id = ?", home.ID).First(&stored).Error)
	assert.Equal(t, 42, stored.PeopleCount)

	err := svc.UpdatePeopleCount(ctx, home.ID.String(), domain.UpdatePeopleCountRequest{PeopleCount: 0})
	assert.ErrorIs(t, err, domain.ErrPeopleCountNotPositive)

	err = svc.UpdatePeopleCount(ctx, ngo.ID.String(), domain.UpdatePeopleCountRequest{PeopleCount: 5})
	assert.ErrorIs(t, err, domain.ErrNotARecipient)
}

func TestRecordDelivery_DatesAreUTC(t *testing.T) {
	db := testutil.NewDB(t)
	donor := testutil.CreateUser(t, db, domain.RoleDonor, "hotel")
	ngo := testutil.CreateUser(t, db, domain.RoleNGO, "ngo")
	home := testutil.CreateUser(t, db, domain.RoleRecipient, "home")
	svc := newService(db)
	ctx := context.Background()

	// 02:00 on 2 March in India is still 1 March in UTC.
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 2, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)) }

	post := createPost(t, db, donor, domain.StatusCompleted, ngo)
	record, err := svc.RecordDelivery(ctx, ngo.ID.String(), domain.RecordDeliveryRequest{PostID: post.ID.String(), RecipientID: home.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", record.Date)

	deliveries, err := svc.ListDeliveries(ctx, ngo.ID.String(), "")
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)
}
