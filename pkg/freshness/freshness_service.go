package freshness

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"reserve-backend/domain"
	"reserve-backend/internal/utils"
)

type (
	Classifier interface {
		Classify(ctx context.Context, item domain.ItemDescriptor) (string, error)
	}

	FreshnessService interface {
		Classify(ctx context.Context, item domain.ItemDescriptor) string
		ClassifyRequest(ctx context.Context, req domain.FoodItemRequest) string
	}

	freshnessService struct {
		primary  Classifier
		fallback Classifier
		now      func() time.Time
	}
)

// NewFreshnessService uses Gemini when GEMINI_API_KEY is configured and the rule table otherwise.
func NewFreshnessService() FreshnessService {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, freshness uses the rule-based classifier")
		return NewFreshnessServiceWith(RuleClassifier{}, time.Now)
	}
	return NewFreshnessServiceWith(NewGeminiClassifier(apiKey, utils.GetConfig("GEMINI_MODEL")), time.Now)
}

func NewFreshnessServiceWith(primary Classifier, now func() time.Time) FreshnessService {
	return &freshnessService{
		primary:  primary,
		fallback: RuleClassifier{},
		now:      now,
	}
}

func (s *freshnessService) Classify(ctx context.Context, item domain.ItemDescriptor) string {
	if item.VisibleIssues {
		return domain.FreshnessNotFresh
	}

	level, err := s.primary.Classify(ctx, item)
	if err == nil {
		return level
	}

	log.Warnw("freshness classifier failed, using rules", "item", item.Name, "error", err)
	level, _ = s.fallback.Classify(ctx, item)
	return level
}

func (s *freshnessService) ClassifyRequest(ctx context.Context, req domain.FoodItemRequest) string {
	return s.Classify(ctx, domain.ItemDescriptor{
		Name:          req.Name,
		Category:      req.Type,
		ElapsedBucket: ElapsedBucket(req.PreparedAt, s.now()),
		Storage:       req.Storage,
		VisibleIssues: req.VisibleIssues,
	})
}
