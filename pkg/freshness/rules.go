package freshness

import (
	"context"
	"time"

	"reserve-backend/domain"
)

// ElapsedBucket buckets the time since preparation the way donors are asked for it.
func ElapsedBucket(preparedAt, now time.Time) string {
	if preparedAt.IsZero() {
		return domain.ElapsedBucketUnknown
	}
	elapsed := now.Sub(preparedAt)
	switch {
	case elapsed < time.Hour:
		return domain.ElapsedUnderOneHour
	case elapsed < 2*time.Hour:
		return domain.ElapsedOneToTwo
	case elapsed < 4*time.Hour:
		return domain.ElapsedTwoToFour
	case elapsed < 6*time.Hour:
		return domain.ElapsedFourToSix
	default:
		return domain.ElapsedOverSixHours
	}
}

// RuleClassifier is the deterministic elapsed-time x storage lookup.
type RuleClassifier struct{}

func (RuleClassifier) Classify(_ context.Context, item domain.ItemDescriptor) (string, error) {
	return classifyByRules(item), nil
}

func classifyByRules(item domain.ItemDescriptor) string {
	if item.VisibleIssues {
		return domain.FreshnessNotFresh
	}

	switch item.Storage {
	case domain.StorageRoomTemperature, domain.StorageHotPack:
		switch item.ElapsedBucket {
		case domain.ElapsedUnderOneHour, domain.ElapsedOneToTwo, domain.ElapsedTwoToFour:
			return domain.FreshnessFresh
		case domain.ElapsedFourToSix:
			return domain.FreshnessRisky
		case domain.ElapsedOverSixHours:
			return domain.FreshnessNotFresh
		}
	case domain.StorageFridge:
		switch item.ElapsedBucket {
		case domain.ElapsedOverSixHours:
			return domain.FreshnessRisky
		case domain.ElapsedBucketUnknown:
			return domain.FreshnessUnknown
		default:
			return domain.FreshnessFresh
		}
	}
	return domain.FreshnessUnknown
}
