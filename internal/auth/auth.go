package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/campista/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenTypeSignup is the confirmation token type issued on sign-up.
const TokenTypeSignup = "signup"

// userRepository is the subset of store.UserStore that Service requires.
type userRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Confirm(ctx context.Context, id string) error
}

// tokenRepository is the subset of store.TokenStore that Service requires.
type tokenRepository interface {
	Issue(ctx context.Context, userID, typ string) (string, error)
	Consume(ctx context.Context, token, typ string) (string, error)
}

type Service struct {
	users  userRepository
	tokens tokenRepository
	logger *slog.Logger
}

func NewService(users userRepository, tokens tokenRepository, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// SignUp registers a new user and issues a signup confirmation token. The
// returned token goes into the emailed link; only its hash is persisted.
func (s *Service) SignUp(ctx context.Context, email, password string) (*domain.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", domain.Validationf("email and password are required")
	}
	if len(password) < 8 {
		return nil, "", domain.Validationf("password must be at least 8 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.Validationf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID, TokenTypeSignup)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return user, token, nil
}

// SignIn exchanges email+password for the user. Wrong email and wrong
// password produce the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Confirm consumes a one-time (token_hash, type) pair and marks the user
// confirmed.
func (s *Service) Confirm(ctx context.Context, token, typ string) error {
	userID, err := s.tokens.Consume(ctx, token, typ)
	if err != nil {
		return err
	}
	if err := s.users.Confirm(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user confirmed", "user_id", userID)
	return nil
}

// SafeNext validates a caller-supplied post-confirmation redirect path. Only
// origin-local paths pass; anything that could leave the origin falls back
// to "/".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, "/\\") || strings.Contains(next, "://") {
		return "/"
	}
	return next
}
