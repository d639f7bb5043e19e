package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "campista_session"

type contextKey struct{}

// Sessions exchanges a session cookie for a principal. The identity is always
// passed explicitly through the request context, never held in package state.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string, secure bool) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return &Sessions{store: store}
}

// SignIn binds userID to the caller's session cookie.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values["user_id"] = userID
	return sess.Save(r, w)
}

// SignOut clears the caller's session.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	delete(sess.Values, "user_id")
	return sess.Save(r, w)
}

// UserID resolves the principal from the request's session cookie.
func (s *Sessions) UserID(r *http.Request) (string, bool) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	id, ok := sess.Values["user_id"].(string)
	return id, ok && id != ""
}

// Middleware rejects requests with no valid session and makes the principal
// available via UserIDFromContext.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.UserID(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated principal placed by Middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}
