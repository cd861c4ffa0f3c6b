package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"reserve-backend/domain"
	"reserve-backend/internal/utils"
)

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

type (
	Geocoder interface {
		Resolve(ctx context.Context, address string) (domain.Location, error)
	}

	// GoogleGeocoder resolves free-text addresses with the Google Geocoding API.
	GoogleGeocoder struct {
		APIKey   string
		Endpoint string
		Client   *http.Client
	}

	geocodeResponse struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			FormattedAddress string `json:"formatted_address"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
)

func NewGoogleGeocoder() *GoogleGeocoder {
	return NewGoogleGeocoderWithKey(utils.GetConfig("GOOGLE_MAPS_API_KEY"))
}

func NewGoogleGeocoderWithKey(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		APIKey:   apiKey,
		Endpoint: defaultGeocodeURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NormalizeAddress folds Unicode compatibility forms and collapses whitespace.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(address)), " ")
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, address string) (domain.Location, error) {
	address = NormalizeAddress(address)
	if address == "" {
		return domain.Location{}, domain.ErrLocationRequired
	}
	if g.APIKey == "" {
		return domain.Location{}, domain.External("geocoder", fmt.Errorf("GOOGLE_MAPS_API_KEY not set"))
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return domain.Location{}, err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return domain.Location{}, domain.External("geocoder", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, domain.External("geocoder", fmt.Errorf("unexpected status %s", resp.Status))
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Location{}, domain.External("geocoder", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return domain.Location{}, domain.ErrAddressNotFound
	default:
		return domain.Location{}, domain.External("geocoder", fmt.Errorf("%s %s", body.Status, body.ErrorMessage))
	}
	if len(body.Results) == 0 {
		return domain.Location{}, domain.ErrAddressNotFound
	}

	loc := body.Results[0].Geometry.Location
	return domain.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
