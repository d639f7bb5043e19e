package web

import (
	"net/http"
	"time"

	"github.com/vbonduro/campista/internal/service"
)

type photoJSON struct {
	ID           int64  `json:"id"`
	CampsiteID   int64  `json:"campsite_id"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	CreatedAt    string `json:"created_at"`
	URL          string `json:"url,omitempty"`
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	campsiteID, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campsite id"})
		return
	}

	// Ceiling with slack for the multipart framing; the exact size check
	// happens against the file header before anything is stored.
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(service.MaxPhotoSize); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse form"})
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "photo file required"})
		return
	}
	defer file.Close()

	photo, err := s.photos.Upload(r.Context(), principal(r), campsiteID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, photoJSON{
		ID:           photo.ID,
		CampsiteID:   photo.CampsiteID,
		OriginalName: photo.OriginalName,
		ContentType:  photo.ContentType,
		SizeBytes:    photo.SizeBytes,
		CreatedAt:    photo.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	campsiteID, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campsite id"})
		return
	}

	views, err := s.photos.List(r.Context(), principal(r), campsiteID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]photoJSON, 0, len(views))
	for _, v := range views {
		out = append(out, photoJSON{
			ID:           v.Photo.ID,
			CampsiteID:   v.Photo.CampsiteID,
			OriginalName: v.Photo.OriginalName,
			ContentType:  v.Photo.ContentType,
			SizeBytes:    v.Photo.SizeBytes,
			CreatedAt:    v.Photo.CreatedAt.UTC().Format(time.RFC3339),
			URL:          v.URL,
		})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid photo id"})
		return
	}

	if err := s.photos.Delete(r.Context(), principal(r), photoID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
