package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/geocoding/v5/mapbox.places/"))
		// Mapbox takes lng,lat order in the path.
		assert.Contains(t, r.URL.Path, "-120.66")
		assert.Equal(t, "place,region,country", r.URL.Query().Get("types"))
		assert.Equal(t, "secret-token", r.URL.Query().Get("access_token"))
		w.Write([]byte(`{"features":[
			{"place_type":["place"],"text":"Leavenworth"},
			{"place_type":["region"],"text":"Washington"},
			{"place_type":["country"],"text":"United States"}
		]}`))
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "secret-token")
	place, err := c.ReverseGeocode(context.Background(), 47.6, -120.66)
	require.NoError(t, err)
	assert.Equal(t, "Leavenworth", *place.City)
	assert.Equal(t, "Washington", *place.State)
	assert.Equal(t, "United States", *place.Country)
}

func TestReverseGeocodeFirstFeatureWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[
			{"place_type":["place"],"text":"First"},
			{"place_type":["place"],"text":"Second"}
		]}`))
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "secret-token")
	place, err := c.ReverseGeocode(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "First", *place.City)
}

func TestReverseGeocodeMissingToken(t *testing.T) {
	c := New("")
	_, err := c.ReverseGeocode(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "bad-token")
	_, err := c.ReverseGeocode(context.Background(), 1, 2)
	assert.Error(t, err)
}
