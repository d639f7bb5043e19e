package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/campista/internal/domain"
)

func TestTokenStoreIssueAndConsume(t *testing.T) {
	s := NewTokenStore(openTestDB(t))
	ctx := context.Background()

	token, err := s.Issue(ctx, userOne, "signup")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	userID, err := s.Consume(ctx, token, "signup")
	require.NoError(t, err)
	assert.Equal(t, userOne, userID)
}

func TestTokenStoreOnlyTheHashIsAtRest(t *testing.T) {
	d := openTestDB(t)
	s := NewTokenStore(d)
	ctx := context.Background()

	token, err := s.Issue(ctx, userOne, "signup")
	require.NoError(t, err)

	var stored string
	require.NoError(t, d.QueryRow(`SELECT token_hash FROM confirmation_tokens`).Scan(&stored))
	assert.NotEqual(t, token, stored)

	// Presenting the stored hash must not work; a leaked table yields no
	// usable link.
	_, err = s.Consume(ctx, stored, "signup")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = s.Consume(ctx, token, "signup")
	assert.NoError(t, err)
}

func TestTokenStoreConsumeIsOneTime(t *testing.T) {
	s := NewTokenStore(openTestDB(t))
	ctx := context.Background()

	token, err := s.Issue(ctx, userOne, "signup")
	require.NoError(t, err)

	_, err = s.Consume(ctx, token, "signup")
	require.NoError(t, err)

	_, err = s.Consume(ctx, token, "signup")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTokenStoreConsumeChecksType(t *testing.T) {
	s := NewTokenStore(openTestDB(t))
	ctx := context.Background()

	token, err := s.Issue(ctx, userOne, "signup")
	require.NoError(t, err)

	_, err = s.Consume(ctx, token, "password_reset")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// The mismatched attempt must not have burned the token.
	_, err = s.Consume(ctx, token, "signup")
	assert.NoError(t, err)
}

func TestTokenStoreExpiredTokenIsRejectedAndBurned(t *testing.T) {
	s := NewTokenStore(openTestDB(t))
	ctx := context.Background()

	token, err := s.Issue(ctx, userOne, "signup")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = s.Consume(ctx, token, "signup")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Expired consumption still deletes the row.
	s.now = time.Now
	_, err = s.Consume(ctx, token, "signup")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTokenStoreUnknownToken(t *testing.T) {
	s := NewTokenStore(openTestDB(t))

	_, err := s.Consume(context.Background(), "deadbeef", "signup")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
