package freshness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"reserve-backend/domain"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// GeminiClassifier asks the Gemini generateContent API for a freshness label.
type GeminiClassifier struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewGeminiClassifier(apiKey, model string) *GeminiClassifier {
	return &GeminiClassifier{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultGeminiBaseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *GeminiClassifier) Classify(ctx context.Context, item domain.ItemDescriptor) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", domain.ErrExternalService)
	}

	prompt := fmt.Sprintf(`Act as a food safety expert. Classify freshness based on these simple inputs.

Details:
- Food: %s (%s)
- Cooked: %s ago
- Stored in: %s
- Visible Issues: %t

Rules:
- "Fresh": Safe to eat.
- "Risky": Edible but borderline (e.g., room temp for 4+ hours).
- "Not Fresh": Dangerous (e.g., >6 hours room temp, or visible issues).

Return JSON schema.`, item.Name, item.Category, item.ElapsedBucket, storageLabel(item.Storage), item.VisibleIssues)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"responseMimeType": "application/json",
			"responseSchema": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"prediction": map[string]interface{}{
						"type": "STRING",
						"enum": []string{domain.FreshnessFresh, domain.FreshnessRisky, domain.FreshnessNotFresh},
					},
				},
			},
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimRight(g.BaseURL, "/"), g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", domain.External("gemini", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", domain.External("gemini", fmt.Errorf("%s - %s", resp.Status, string(bodyBytes)))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", domain.External("gemini", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiProcessingFailed
	}

	// The model sometimes wraps JSON in markdown fences.
	responseText := geminiResp.Candidates[0].Content.Parts[0].Text
	if match := jsonObjectPattern.FindString(responseText); match != "" {
		responseText = match
	}

	var result domain.GeminiResponse
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return "", domain.External("gemini", err)
	}

	switch result.Prediction {
	case domain.FreshnessFresh, domain.FreshnessRisky, domain.FreshnessNotFresh:
		return result.Prediction, nil
	default:
		return "", domain.ErrUnknownFreshness
	}
}

func storageLabel(storage string) string {
	switch storage {
	case domain.StorageRoomTemperature:
		return "Room Temperature"
	case domain.StorageHotPack:
		return "Hot Pack"
	case domain.StorageFridge:
		return "Fridge"
	default:
		return storage
	}
}
