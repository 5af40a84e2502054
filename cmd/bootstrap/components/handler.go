package components

import (
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/api"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/middleware"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewCatalogHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		middleware.NewAdminMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewCatalogHandler(catalogQueries queries.CatalogQueries, cfg config.Config) *api.CatalogHandler {
	return api.NewCatalogHandler(catalogQueries, cfg.Sale)
}
