package components

import (
	"vehicle-care-booking/internal/infra/db"
	"vehicle-care-booking/internal/infra/readstore"
	"vehicle-care-booking/internal/infra/uow"
	"vehicle-care-booking/internal/usecase/queries"
	"vehicle-care-booking/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// repositories are built per transaction inside the unit of work
		uow.NewPostgresUoW,
		fx.Annotate(
			uow.NewOutboxQueue,
			fx.As(new(worker.JobQueue)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
