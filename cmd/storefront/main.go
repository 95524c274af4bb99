// Command storefront serves the storefront JSON API.
package main

import (
	"storefront/internal/bootstrap"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		bootstrap.Infra(),
		bootstrap.ServerLogger(),
		bootstrap.Persistence(),
		bootstrap.Services(),
		bootstrap.Usecases(),
		bootstrap.HTTPDelivery(),
		fx.Invoke(
			bootstrap.StartDeliveries,
		),
	).Run()
}
