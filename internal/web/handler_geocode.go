package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type placeJSON struct {
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

// handleReverseGeocode proxies a coordinate lookup to the configured
// provider. Failures are reported as 502 so the client can degrade and leave
// the location fields blank; they never block the surrounding form action.
func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
		return
	}

	place, err := s.geocoder.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		s.logger.Warn("reverse geocode failed", "lat", lat, "lng", lng, "error", err)
		s.respondJSON(w, http.StatusBadGateway, map[string]string{"error": "reverse geocode failed"})
		return
	}

	s.respondJSON(w, http.StatusOK, placeJSON{City: place.City, State: place.State, Country: place.Country})
}

// handleServeBlob serves local-backend photo blobs addressed by signed
// capability URLs. The HMAC signature is the sole authorization; there is no
// session check.
func (s *Server) handleServeBlob(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	exp := r.URL.Query().Get("exp")
	sig := r.URL.Query().Get("sig")

	if !s.localBlobs.Verify(key, exp, sig) {
		http.Error(w, "invalid or expired link", http.StatusForbidden)
		return
	}

	reader, contentType, err := s.localBlobs.Open(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("failed to write blob", "key", key, "error", err)
	}
}
