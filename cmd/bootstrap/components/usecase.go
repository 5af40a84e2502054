package components

import (
	"time"

	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/adminauth"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/clock"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewReservationCommands,
		NewStockCommands,
		NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewReservationQueries,
	),
)

func NewReservationCommands(u shared.UnitOfWork, cache commands.CatalogCache, clk clock.Clock, cfg config.Config) commands.ReservationCommands {
	return commands.NewReservationCommands(u, cache, clk, cfg.Sale.PickupDate)
}

func NewStockCommands(writer commands.StockWriter, cache commands.CatalogCache) commands.StockCommands {
	return commands.NewStockCommands(writer, cache)
}

func NewAdminCommands(cfg config.Config, tokens *adminauth.TokenService, clk clock.Clock) commands.AdminCommands {
	tokenDuration, err := time.ParseDuration(cfg.Admin.TokenDuration)
	if err != nil {
		panic("invalid ADMIN_TOKEN_DURATION: " + err.Error())
	}

	return commands.NewAdminCommands(cfg.Admin.PasswordHash, tokens, tokenDuration, clk)
}
