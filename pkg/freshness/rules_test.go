package freshness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reserve-backend/domain"
)

func TestElapsedBucket(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := map[time.Duration]string{
		10 * time.Minute: domain.ElapsedUnderOneHour,
		time.Hour:        domain.ElapsedOneToTwo,
		3 * time.Hour:    domain.ElapsedTwoToFour,
		5 * time.Hour:    domain.ElapsedFourToSix,
		6 * time.Hour:    domain.ElapsedOverSixHours,
		30 * time.Hour:   domain.ElapsedOverSixHours,
	}
	for ago, want := range cases {
		assert.Equal(t, want, ElapsedBucket(now.Add(-ago), now), "prepared %s ago", ago)
	}

	assert.Equal(t, domain.ElapsedBucketUnknown, ElapsedBucket(time.Time{}, now))
}

func TestRuleClassifier(t *testing.T) {
	cases := []struct {
		storage string
		bucket  string
		want    string
	}{
		{domain.StorageRoomTemperature, domain.ElapsedUnderOneHour, domain.FreshnessFresh},
		{domain.StorageRoomTemperature, domain.ElapsedTwoToFour, domain.FreshnessFresh},
		{domain.StorageRoomTemperature, domain.ElapsedFourToSix, domain.FreshnessRisky},
		{domain.StorageRoomTemperature, domain.ElapsedOverSixHours, domain.FreshnessNotFresh},
		{domain.StorageHotPack, domain.ElapsedOneToTwo, domain.FreshnessFresh},
		{domain.StorageHotPack, domain.ElapsedOverSixHours, domain.FreshnessNotFresh},
		{domain.StorageFridge, domain.ElapsedFourToSix, domain.FreshnessFresh},
		{domain.StorageFridge, domain.ElapsedOverSixHours, domain.FreshnessRisky},
		{"freezer", domain.ElapsedUnderOneHour, domain.FreshnessUnknown},
		{domain.StorageHotPack, domain.ElapsedBucketUnknown, domain.FreshnessUnknown},
	}

	for _, tc := range cases {
		got, err := RuleClassifier{}.Classify(context.Background(), domain.ItemDescriptor{
			Name:          "rice",
			Storage:       tc.storage,
			ElapsedBucket: tc.bucket,
		})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s / %s", tc.storage, tc.bucket)
	}
}

func TestRuleClassifierVisibleIssues(t *testing.T) {
	for _, storage := range []string{domain.StorageRoomTemperature, domain.StorageHotPack, domain.StorageFridge, "unknown"} {
		got, _ := RuleClassifier{}.Classify(context.Background(), domain.ItemDescriptor{
			Storage:       storage,
			ElapsedBucket: domain.ElapsedUnderOneHour,
			VisibleIssues: true,
		})
		assert.Equal(t, domain.FreshnessNotFresh, got)
	}
}
