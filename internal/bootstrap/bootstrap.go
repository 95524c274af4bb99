// Package bootstrap groups the fx options shared by the storefront binaries.
package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/http"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/delivery/worker"
	workerhandler "storefront/internal/delivery/worker/handler"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/jsonstore"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/qrcode"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

// Infra provides the configuration and a background context.
func Infra() fx.Option {
	return fx.Provide(
		config.New,
		context.Background,
	)
}

// Logger provides the process logger writing to w.
func Logger(w io.Writer) fx.Option {
	return fx.Provide(func(cfg *config.Config) (*slog.Logger, error) {
		return logs.NewWithWriter(cfg, w)
	})
}

// ServerLogger provides the stdout logger used by long-running processes.
func ServerLogger() fx.Option {
	return fx.Provide(logs.New)
}

// RepositoryParams holds dependencies for NewRepositories, injected by Fx.
type RepositoryParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is every persistence port, all backed by the same driver.
type Repositories struct {
	fx.Out

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	OrderRepo    repository.OrderRepository
}

// NewRepositories opens the configured storage driver.
func NewRepositories(params RepositoryParams) (Repositories, error) {
	switch driver := params.Config.Storage.Driver; driver {
	case config.StorageDriverJSON:
		store, err := jsonstore.New(jsonstore.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return Repositories{}, err
		}
		params.Logger.Debug("Using JSON store",
			slog.String("bucketURL", params.Config.Storage.BucketURL),
			slog.String("dataDir", params.Config.Storage.DataDir),
		)

		return Repositories{
			TxManager:    jsonstore.NewTransactionManager(store),
			ProductRepo:  jsonstore.NewProductRepository(store),
			CustomerRepo: jsonstore.NewCustomerRepository(store),
			OrderRepo:    jsonstore.NewOrderRepository(store),
		}, nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager:    postgres.NewTransactionManager(db),
			ProductRepo:  postgres.NewProductRepository(db),
			CustomerRepo: postgres.NewCustomerRepository(db),
			OrderRepo:    postgres.NewOrderRepository(db),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown storage driver %q", driver)
	}
}

// Persistence provides the repositories and the transaction manager.
func Persistence() fx.Option {
	return fx.Provide(NewRepositories)
}

// Services provides the infrastructure behind the domain service ports.
func Services() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewFromConfig,
		),
		pubsub.Module,
	)
}

// Usecases provides every use case implementation.
func Usecases() fx.Option {
	return fx.Provide(
		impl.NewCatalogueService,
		impl.NewCartService,
		impl.NewCheckoutService,
		impl.NewOrderService,
		impl.NewAccountService,
		impl.NewAdminService,
	)
}

// HTTPDelivery provides the JSON API server and its handlers.
func HTTPDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewProductHandler,
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
			handler.NewOrderHandler,
			handler.NewAdminHandler,
		),
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// WorkerDelivery provides the order event push receiver.
func WorkerDelivery() fx.Option {
	return fx.Provide(
		workerhandler.NewOrderEventHandler,
		fx.Annotate(
			worker.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

type startServerParams struct {
	fx.In
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

// StartDeliveries serves every delivery in the group. A delivery that fails
// shuts the whole application down so the OnStop hooks still run.
func StartDeliveries(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
