package components

import (
	"cabinstay/internal/infra/db"
	"cabinstay/internal/infra/readstore"
	"cabinstay/internal/infra/uow"
	"cabinstay/internal/usecase/queries"
	"cabinstay/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		func(u shared.UnitOfWork) shared.CommandReads {
			return u.CommandReads()
		},
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReads)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
