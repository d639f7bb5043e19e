package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/campista/internal/db"
	"github.com/vbonduro/campista/internal/domain"
	"github.com/vbonduro/campista/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store.NewUserStore(d), store.NewTokenStore(d), logger)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Nil(t, user.ConfirmedAt)
	// The plaintext password never ends up in the stored hash.
	assert.NotContains(t, user.PasswordHash, "correct horse")

	signedIn, err := svc.SignIn(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "", "correct horse")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.SignUp(ctx, "alice@example.com", "short")
	assert.True(t, domain.IsValidation(err))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.SignUp(ctx, "ALICE@example.com", "other password")
	assert.True(t, domain.IsValidation(err))
}

func TestSignInWrongCredentialsAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	_, wrongPassword := svc.SignIn(ctx, "alice@example.com", "wrong")
	_, wrongEmail := svc.SignIn(ctx, "nobody@example.com", "correct horse")

	assert.True(t, errors.Is(wrongPassword, domain.ErrUnauthorized))
	assert.True(t, errors.Is(wrongEmail, domain.ErrUnauthorized))
}

func TestConfirmFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, token, TokenTypeSignup))

	confirmed, err := svc.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, confirmed.ConfirmedAt)

	// The token is one-time.
	err = svc.Confirm(ctx, token, TokenTypeSignup)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirmUnknownToken(t *testing.T) {
	svc := newTestService(t)

	err := svc.Confirm(context.Background(), "deadbeef", TokenTypeSignup)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"empty", "", "/"},
		{"local path", "/campsites/7", "/campsites/7"},
		{"local path with query", "/campsites?min_rating=4", "/campsites?min_rating=4"},
		{"relative", "campsites", "/"},
		{"protocol relative", "//evil.example.com", "/"},
		{"backslash variant", "/\\evil.example.com", "/"},
		{"absolute url", "https://evil.example.com", "/"},
		{"scheme smuggled in path", "/redirect?to=https://evil.example.com", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeNext(tt.next))
		})
	}
}
