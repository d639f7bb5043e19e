package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/vbonduro/campista/internal/auth"
	"github.com/vbonduro/campista/internal/domain"
	"github.com/vbonduro/campista/internal/geocode"
	"github.com/vbonduro/campista/internal/photostore/local"
	"github.com/vbonduro/campista/internal/service"
	"github.com/vbonduro/campista/internal/viewcache"
)

type Server struct {
	campsites *service.CampsiteService
	photos    *service.PhotoService
	authSvc   *auth.Service
	sessions  *auth.Sessions
	geocoder  geocode.Geocoder
	views     *viewcache.Cache
	// localBlobs serves signed blob URLs for the local photo backend; nil
	// when the s3 backend is active.
	localBlobs *local.Store
	router     chi.Router
	logger     *slog.Logger
}

func NewServer(
	campsites *service.CampsiteService,
	photos *service.PhotoService,
	authSvc *auth.Service,
	sessions *auth.Sessions,
	geocoder geocode.Geocoder,
	views *viewcache.Cache,
	localBlobs *local.Store,
	logger *slog.Logger,
) *Server {
	s := &Server{
		campsites:  campsites,
		photos:     photos,
		authSvc:    authSvc,
		sessions:   sessions,
		geocoder:   geocoder,
		views:      views,
		localBlobs: localBlobs,
		logger:     logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		// Brute-force protection on the credential endpoints only.
		r.Use(httprate.Limit(10, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
		r.Post("/auth/signup", s.handleSignUp)
		r.Post("/auth/login", s.handleLogin)
	})
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/auth/confirm", s.handleConfirm)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Get("/campsites", s.handleListCampsites)
		r.Post("/campsites", s.handleCreateCampsite)
		r.Get("/campsites/{id}", s.handleGetCampsite)
		r.Patch("/campsites/{id}", s.handleUpdateCampsite)
		r.Delete("/campsites/{id}", s.handleDeleteCampsite)
		r.Post("/campsites/{id}/photos", s.handleUploadPhoto)
		r.Get("/campsites/{id}/photos", s.handleListPhotos)
		r.Delete("/photos/{id}", s.handleDeletePhoto)
		r.Get("/geocode/reverse", s.handleReverseGeocode)
	})

	// Signed capability URLs issued by the local photo backend. No session:
	// the signature is the authorization.
	if s.localBlobs != nil {
		r.Get("/photos/*", s.handleServeBlob)
	}

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// principal returns the authenticated user id set by the session middleware.
func principal(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. NotFound
// keeps one body for both missing and foreign-owned records.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		s.respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		s.respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case domain.IsValidation(err):
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
