package bootstrap

import (
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"

	"go.uber.org/fx"
)

var AdminAuthModule = fx.Module("adminauth",
	fx.Provide(
		NewAdminTokenService,
	),
)

func NewAdminTokenService(cfg config.Config) *adminauth.TokenService {
	tokenDuration, err := time.ParseDuration(cfg.Admin.TokenDuration)
	if err != nil {
		panic("invalid ADMIN_TOKEN_DURATION: " + err.Error())
	}

	return adminauth.NewTokenService(cfg.Admin.TokenSecret, tokenDuration)
}
