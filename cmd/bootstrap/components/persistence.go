package components

import (
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/cache"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/db"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/readstore"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/repository"
	"github.com/daiya0277-lgtm/gyoza-app/internal/infra/uow"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Pool-bound product repository backs the admin stock overwrite,
		// which runs outside any explicit transaction.
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(commands.StockWriter)),
		),
		fx.Annotate(
			NewProductCache,
			fx.As(new(queries.ProductCache)),
			fx.As(new(commands.CatalogCache)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewProductCache(rdb *redis.Client, cfg config.Config) *cache.ProductCache {
	return cache.NewProductCache(rdb, cfg.Redis.CacheTTL)
}
