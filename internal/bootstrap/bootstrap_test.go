package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func testConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Storage = &config.StorageConfig{Driver: driver, BucketURL: "mem://"}
	cfg.ApplyDefaults()

	return cfg
}

func TestNewRepositories_JSON(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	repos, err := NewRepositories(RepositoryParams{
		Lifecycle: lc,
		Config:    testConfig(config.StorageDriverJSON),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	ctx := context.Background()
	require.NoError(t, repos.CustomerRepo.Create(ctx, entity.NewCustomer("ada", "hash", "", entity.RoleCustomer)))

	customer, err := repos.CustomerRepo.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, customer.Role)
}

func TestNewRepositories_UnknownDriver(t *testing.T) {
	_, err := NewRepositories(RepositoryParams{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    testConfig("sqlite"),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	assert.ErrorContains(t, err, `unknown storage driver "sqlite"`)
}

func TestApplicationGraphs(t *testing.T) {
	supply := fx.Options(
		fx.Supply(testConfig(config.StorageDriverJSON)),
		fx.Provide(context.Background),
		Logger(io.Discard),
		Persistence(),
	)

	tests := []struct {
		name    string
		options fx.Option
	}{
		{name: "api server", options: fx.Options(supply, Services(), Usecases(), HTTPDelivery(), fx.Invoke(StartDeliveries))},
		{name: "order worker", options: fx.Options(supply, WorkerDelivery(), fx.Invoke(StartDeliveries))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, fx.ValidateApp(tt.options))
		})
	}
}
