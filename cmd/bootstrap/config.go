package bootstrap

import (
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
