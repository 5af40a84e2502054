//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/clock"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := adminauth.HashSecret("zemi-gyoza")
	require.NoError(t, err)

	tokens := adminauth.NewTokenService("test-secret", time.Hour)
	cmd := commands.NewAdminCommands(hash, tokens, time.Hour, clock.NewMockClock(time.Now()))

	t.Run("correct password yields a valid session", func(t *testing.T) {
		session, err := cmd.Login(ctx, "zemi-gyoza")
		require.NoError(t, err)
		require.NotEmpty(t, session.Token)

		claims, err := tokens.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := cmd.Login(ctx, "zemi-ramen")
		assert.ErrorIs(t, err, commands.ErrAdminUnauthorized)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := cmd.Login(ctx, "")
		assert.ErrorIs(t, err, commands.ErrAdminUnauthorized)
	})

	t.Run("token from another secret is rejected", func(t *testing.T) {
		otherTokens := adminauth.NewTokenService("other-secret", time.Hour)
		otherToken, err := otherTokens.GenerateToken(time.Now())
		require.NoError(t, err)

		_, err = tokens.ValidateToken(otherToken)
		assert.ErrorIs(t, err, adminauth.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired, err := tokens.GenerateToken(time.Now().Add(-2 * time.Hour))
		require.NoError(t, err)

		_, err = tokens.ValidateToken(expired)
		assert.ErrorIs(t, err, adminauth.ErrExpiredToken)
	})
}
