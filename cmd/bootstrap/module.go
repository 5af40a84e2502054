package bootstrap

import (
	"github.com/daiya0277-lgtm/gyoza-app/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	AdminAuthModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
