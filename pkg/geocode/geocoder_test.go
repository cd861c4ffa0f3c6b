package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserve-backend/domain"
)

func newTestGeocoder(t *testing.T, status int, body string) (*GoogleGeocoder, *string) {
	t.Helper()
	var gotAddress string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	g := NewGoogleGeocoderWithKey("maps-key")
	g.Endpoint = srv.URL
	return g, &gotAddress
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "12 Anna Salai, Chennai", NormalizeAddress("  12   Anna Salai,\tChennai \n"))
	// Fullwidth digits fold to ASCII.
	assert.Equal(t, "12 Mount Road", NormalizeAddress("１２ Mount Road"))
}

func TestResolve(t *testing.T) {
	g, gotAddress := newTestGeocoder(t, http.StatusOK, `{
		"status": "OK",
		"results": [{"formatted_address": "Chennai", "geometry": {"location": {"lat": 13.0827, "lng": 80.2707}}}]
	}`)

	loc, err := g.Resolve(context.Background(), "  Chennai  Central ")

	require.NoError(t, err)
	assert.Equal(t, domain.Location{Lat: 13.0827, Lng: 80.2707}, loc)
	assert.Equal(t, "Chennai Central", *gotAddress)
}

func TestResolveZeroResults(t *testing.T) {
	g, _ := newTestGeocoder(t, http.StatusOK, `{"status": "ZERO_RESULTS", "results": []}`)

	_, err := g.Resolve(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveFailsClosed(t *testing.T) {
	t.Run("denied", func(t *testing.T) {
		g, _ := newTestGeocoder(t, http.StatusOK, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`)
		_, err := g.Resolve(context.Background(), "Chennai")
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("server error", func(t *testing.T) {
		g, _ := newTestGeocoder(t, http.StatusBadGateway, ``)
		_, err := g.Resolve(context.Background(), "Chennai")
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("no key", func(t *testing.T) {
		_, err := NewGoogleGeocoderWithKey("").Resolve(context.Background(), "Chennai")
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("blank address", func(t *testing.T) {
		_, err := NewGoogleGeocoderWithKey("k").Resolve(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrLocationRequired)
	})
}
