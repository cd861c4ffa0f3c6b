package freshness

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserve-backend/domain"
)

type stubClassifier struct {
	level string
	err   error
	calls int
}

func (s *stubClassifier) Classify(context.Context, domain.ItemDescriptor) (string, error) {
	s.calls++
	return s.level, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func geminiServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"quota"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGemini(url string) *GeminiClassifier {
	g := NewGeminiClassifier("test-key", "gemini-test")
	g.BaseURL = url
	return g
}

func TestVisibleIssuesSkipClassifier(t *testing.T) {
	primary := &stubClassifier{level: domain.FreshnessFresh}
	svc := NewFreshnessServiceWith(primary, fixedNow)

	got := svc.ClassifyRequest(context.Background(), domain.FoodItemRequest{
		Name:          "biryani",
		Storage:       domain.StorageFridge,
		PreparedAt:    fixedNow().Add(-10 * time.Minute),
		VisibleIssues: true,
	})

	assert.Equal(t, domain.FreshnessNotFresh, got)
	assert.Zero(t, primary.calls)
}

func TestClassifierErrorFallsBackToRules(t *testing.T) {
	primary := &stubClassifier{err: errors.New("boom")}
	svc := NewFreshnessServiceWith(primary, fixedNow)

	got := svc.ClassifyRequest(context.Background(), domain.FoodItemRequest{
		Name:       "dal",
		Storage:    domain.StorageRoomTemperature,
		PreparedAt: fixedNow().Add(-5 * time.Hour),
	})

	assert.Equal(t, domain.FreshnessRisky, got)
	assert.Equal(t, 1, primary.calls)
}

func TestGeminiClassifier(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, "```json\n{\"prediction\": \"Risky\"}\n```")

	got, err := newTestGemini(srv.URL).Classify(context.Background(), domain.ItemDescriptor{
		Name:          "paneer",
		Category:      "veg",
		ElapsedBucket: domain.ElapsedFourToSix,
		Storage:       domain.StorageHotPack,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FreshnessRisky, got)
}

func TestGeminiClassifierErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := geminiServer(t, http.StatusTooManyRequests, "")
		_, err := newTestGemini(srv.URL).Classify(context.Background(), domain.ItemDescriptor{})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("unknown label", func(t *testing.T) {
		srv := geminiServer(t, http.StatusOK, `{"prediction": "Maybe"}`)
		_, err := newTestGemini(srv.URL).Classify(context.Background(), domain.ItemDescriptor{})
		assert.ErrorIs(t, err, domain.ErrUnknownFreshness)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewGeminiClassifier("", "m").Classify(context.Background(), domain.ItemDescriptor{})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})
}

func TestServiceFallsBackWhenGeminiFails(t *testing.T) {
	srv := geminiServer(t, http.StatusInternalServerError, "")
	svc := NewFreshnessServiceWith(newTestGemini(srv.URL), fixedNow)

	got := svc.ClassifyRequest(context.Background(), domain.FoodItemRequest{
		Name:       "idli",
		Storage:    domain.StorageHotPack,
		PreparedAt: fixedNow().Add(-30 * time.Minute),
	})

	assert.Equal(t, domain.FreshnessFresh, got)
}
