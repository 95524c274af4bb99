package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"storefront/config"
	"storefront/internal/bootstrap"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// cli carries the use cases every subcommand works against.
type cli struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	catalogue usecase.CatalogueUsecase
	cart      usecase.CartUsecase
	checkouts usecase.CheckoutUsecase
	orderUC   usecase.OrderUsecase
	accounts  usecase.AccountUsecase
	admin     usecase.AdminUsecase
}

type cliParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Catalogue usecase.CatalogueUsecase
	Cart      usecase.CartUsecase
	Checkout  usecase.CheckoutUsecase
	Orders    usecase.OrderUsecase
	Accounts  usecase.AccountUsecase
	Admin     usecase.AdminUsecase
}

// startApp builds the same graph the API server uses, minus the deliveries.
// Logs go to stderr so stdout stays parseable.
func startApp(ctx context.Context, stdout, stderr io.Writer) (*fx.App, *cli, error) {
	var params cliParams
	app := fx.New(
		bootstrap.Infra(),
		bootstrap.Logger(stderr),
		bootstrap.Persistence(),
		bootstrap.Services(),
		bootstrap.Usecases(),
		fx.NopLogger,
		fx.Populate(&params),
	)
	if err := app.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to build application")
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return nil, nil, errors.Wrap(err, "failed to start application")
	}

	return app, &cli{
		cfg:       params.Config,
		logger:    params.Logger,
		out:       stdout,
		errOut:    stderr,
		catalogue: params.Catalogue,
		cart:      params.Cart,
		checkouts: params.Checkout,
		orderUC:   params.Orders,
		accounts:  params.Accounts,
		admin:     params.Admin,
	}, nil
}

func stopApp(app *fx.App, stderr io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := app.Stop(ctx); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to stop cleanly: %v\n", err)
	}
}
