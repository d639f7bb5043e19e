package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "campista-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"address":{"city":"Leavenworth","state":"Washington","country":"United States"}}`))
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "campista-test")
	place, err := c.ReverseGeocode(context.Background(), 47.6, -120.66)
	require.NoError(t, err)
	assert.Equal(t, "Leavenworth", *place.City)
	assert.Equal(t, "Washington", *place.State)
	assert.Equal(t, "United States", *place.Country)
}

func TestReverseGeocodeFallsBackToTownAndVillage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"village":"Stehekin","state":"Washington"}}`))
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "campista-test")
	place, err := c.ReverseGeocode(context.Background(), 48.3, -120.65)
	require.NoError(t, err)
	require.NotNil(t, place.City)
	assert.Equal(t, "Stehekin", *place.City)
	assert.Nil(t, place.Country)
}

func TestReverseGeocodeEmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "campista-test")
	place, err := c.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Nil(t, place.City)
	assert.Nil(t, place.State)
	assert.Nil(t, place.Country)
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewWithHost(srv.URL, "campista-test")
	_, err := c.ReverseGeocode(context.Background(), 47.6, -120.66)
	assert.Error(t, err)
}
