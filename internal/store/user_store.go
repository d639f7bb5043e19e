package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vbonduro/campista/internal/domain"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Validationf("email is required")
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)
	`, id, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getWhere(ctx, "id = ?", id)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getWhere(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserStore) getWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, confirmed_at, created_at
		FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.ConfirmedAt, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Confirm records the user's email confirmation time. Confirming an already
// confirmed user is a no-op.
func (s *UserStore) Confirm(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET confirmed_at = datetime('now')
		WHERE id = ? AND confirmed_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	return nil
}
