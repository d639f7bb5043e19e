package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vbonduro/campista/internal/domain"
	"github.com/vbonduro/campista/internal/viewcache"
)

// campsiteJSON mirrors the persisted column names on the wire.
type campsiteJSON struct {
	ID          int64    `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	DateVisited *string  `json:"date_visited"`
	Rating      *int     `json:"rating"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	Notes       *string  `json:"notes"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	CreatedAt   string   `json:"created_at"`
}

func toCampsiteJSON(c *domain.Campsite) campsiteJSON {
	return campsiteJSON{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		DateVisited: c.DateVisited,
		Rating:      c.Rating,
		City:        c.City,
		State:       c.State,
		Country:     c.Country,
		Notes:       c.Notes,
		Lat:         c.Lat,
		Lng:         c.Lng,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleListCampsites(w http.ResponseWriter, r *http.Request) {
	owner := principal(r)
	filter, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Only the unfiltered list is cached; filters vary per request.
	cacheable := filter == (domain.CampsiteFilter{})
	if cacheable {
		if body, ok := s.views.Get(viewcache.ListKey(owner)); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(body)
			return
		}
	}

	campsites, err := s.campsites.List(r.Context(), owner, filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]campsiteJSON, 0, len(campsites))
	for _, c := range campsites {
		out = append(out, toCampsiteJSON(c))
	}

	body, err := json.Marshal(out)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if cacheable {
		s.views.Set(viewcache.ListKey(owner), body)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

func (s *Server) handleCreateCampsite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}

	nc, err := newCampsiteFromForm(r.PostForm)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	campsite, err := s.campsites.Create(r.Context(), principal(r), nc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toCampsiteJSON(campsite))
}

func (s *Server) handleGetCampsite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campsite id"})
		return
	}
	owner := principal(r)

	if body, ok := s.views.Get(viewcache.DetailKey(owner, id)); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(body)
		return
	}

	campsite, err := s.campsites.Get(r.Context(), owner, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if campsite == nil {
		s.respondError(w, r, domain.ErrNotFound)
		return
	}

	body, err := json.Marshal(toCampsiteJSON(campsite))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.views.Set(viewcache.DetailKey(owner, id), body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

func (s *Server) handleUpdateCampsite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campsite id"})
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}

	patch, err := patchFromForm(r.PostForm)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	campsite, err := s.campsites.Update(r.Context(), principal(r), id, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toCampsiteJSON(campsite))
}

func (s *Server) handleDeleteCampsite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid campsite id"})
		return
	}

	if err := s.campsites.Delete(r.Context(), principal(r), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (domain.CampsiteFilter, error) {
	var f domain.CampsiteFilter
	q := r.URL.Query()
	if v := q.Get("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			return f, domain.Validationf("invalid min_rating %q", v)
		}
		f.MinRating = n
	}
	f.State = q.Get("state")
	f.VisitedAfter = q.Get("visited_after")
	return f, nil
}
