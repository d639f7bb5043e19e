package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/vbonduro/campista/internal/domain"
)

// TokenStore persists one-time confirmation tokens. Only the SHA-256 hash of
// a token is stored; the emailed link carries the raw token, so a database
// leak never yields a usable link.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

const tokenTTL = 24 * time.Hour

// Issue creates a one-time token of the given type for a user and returns
// the raw token to embed in the confirmation link. Only the token's hash is
// written to the database.
func (s *TokenStore) Issue(ctx context.Context, userID, typ string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confirmation_tokens (token_hash, type, user_id, expires_at)
		VALUES (?, ?, ?, ?)
	`, hashToken(token), typ, userID, s.now().Add(tokenTTL).UTC())
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Consume hashes the presented token, verifies the (hash, type) pair,
// deletes it, and returns the user it belongs to. Expired or unknown tokens
// return domain.ErrNotFound.
func (s *TokenStore) Consume(ctx context.Context, token, typ string) (string, error) {
	tokenHash := hashToken(token)

	var userID string
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, expires_at FROM confirmation_tokens
		WHERE token_hash = ? AND type = ?
	`, tokenHash, typ).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	// One-time: delete regardless of expiry so a stale token cannot be retried.
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM confirmation_tokens WHERE token_hash = ? AND type = ?
	`, tokenHash, typ); err != nil {
		return "", fmt.Errorf("failed to consume token: %w", err)
	}

	if s.now().After(expiresAt) {
		return "", domain.ErrNotFound
	}

	return userID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
