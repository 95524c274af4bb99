package jsonstore

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	// URL openers for the remaining bucket schemes.
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and creates the store over it.
func New(params Params) (*Store, error) {
	bucket, err := OpenBucket(context.Background(), params.Config.Storage)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewStore(bucket, KeysFromConfig(params.Config.Storage), params.Logger), nil
}

// OpenBucket opens cfg.BucketURL, or the local DataDir when no URL is set.
func OpenBucket(ctx context.Context, cfg *config.StorageConfig) (*blob.Bucket, error) {
	if cfg.BucketURL != "" {
		bucket, err := blob.OpenBucket(ctx, cfg.BucketURL)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
		}

		return bucket, nil
	}

	bucket, err := fileblob.OpenBucket(cfg.DataDir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open data directory %s", cfg.DataDir)
	}

	return bucket, nil
}

// KeysFromConfig maps the configured object keys.
func KeysFromConfig(cfg *config.StorageConfig) Keys {
	return Keys{
		Users:    cfg.UsersKey,
		Products: cfg.ProductsKey,
		Orders:   cfg.OrdersKey,
	}
}
