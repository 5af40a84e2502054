package commands

import (
	"context"
	"errors"
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/clock"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/errs"
)

var ErrAdminUnauthorized = errs.New("admin authentication failed")

type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// AdminCommands exchanges the shared admin secret for a signed session token.
type AdminCommands interface {
	Login(ctx context.Context, password string) (AdminSession, error)
}

type adminCommandsImpl struct {
	passwordHash string
	tokens       *adminauth.TokenService
	tokenTTL     time.Duration
	clock        clock.Clock
}

func NewAdminCommands(passwordHash string, tokens *adminauth.TokenService, tokenTTL time.Duration, clk clock.Clock) AdminCommands {
	return &adminCommandsImpl{
		passwordHash: passwordHash,
		tokens:       tokens,
		tokenTTL:     tokenTTL,
		clock:        clk,
	}
}

func (c *adminCommandsImpl) Login(_ context.Context, password string) (AdminSession, error) {
	if err := adminauth.CompareSecret(c.passwordHash, password); err != nil {
		if errors.Is(err, adminauth.ErrWrongSecret) || errors.Is(err, adminauth.ErrInvalidSecret) {
			return AdminSession{}, errs.Mark(err, ErrAdminUnauthorized)
		}
		return AdminSession{}, errs.Wrap(err, "failed to verify admin secret")
	}

	now := c.clock.Now()
	token, err := c.tokens.GenerateToken(now)
	if err != nil {
		return AdminSession{}, errs.Wrap(err, "failed to sign admin token")
	}

	return AdminSession{Token: token, ExpiresAt: now.Add(c.tokenTTL)}, nil
}
