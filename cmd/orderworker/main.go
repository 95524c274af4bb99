// Command orderworker receives OrderPlaced push deliveries and confirms them
// against the order store.
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
		bootstrap.WorkerDelivery(),
		fx.Invoke(
			bootstrap.StartDeliveries,
		),
	).Run()
}
