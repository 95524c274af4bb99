package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type productRepository struct {
	run    runner
	key    string
	logger *slog.Logger
}

// NewProductRepository creates a product repository over the store's products collection.
func NewProductRepository(store *Store) repository.ProductRepository {
	return newProductRepository(store, store)
}

func newProductRepository(store *Store, run runner) *productRepository {
	return &productRepository{
		run:    run,
		key:    store.keys.Products,
		logger: store.logger,
	}
}

// decodeProduct returns nil for records that are not a valid product.
func (r *productRepository) decodeProduct(raw json.RawMessage) *entity.Product {
	var rec productRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.logger.Warn("Skipping undecodable product record", slog.Any("error", err))

		return nil
	}

	product := toProductDomain(&rec)
	if err := product.Validate(); err != nil {
		r.logger.Warn("Skipping invalid product record",
			slog.String("product_id", rec.ProductID),
			slog.Any("error", err),
		)

		return nil
	}

	return product
}

// hasProductID matches records by their product_id, valid or not.
func hasProductID(productID string) func(json.RawMessage) bool {
	return func(raw json.RawMessage) bool {
		var head struct {
			ProductID string `json:"product_id"`
		}

		return json.Unmarshal(raw, &head) == nil && head.ProductID == productID
	}
}

// find locates the stored record of a valid product.
func (r *productRepository) find(c *collection, productID string) (int, *entity.Product) {
	i := c.indexOf(hasProductID(productID))
	if i < 0 {
		return -1, nil
	}
	product := r.decodeProduct(c.records[i])
	if product == nil {
		return -1, nil
	}

	return i, product
}

func (r *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := r.run.view(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		products = make([]*entity.Product, 0, len(c.records))
		for _, raw := range c.records {
			if product := r.decodeProduct(raw); product != nil {
				products = append(products, product)
			}
		}

		return nil
	})

	return products, err
}

func (r *productRepository) FindByID(ctx context.Context, productID string) (*entity.Product, error) {
	var product *entity.Product
	err := r.run.view(ctx, func(sess *session) error {
		_, product = r.find(sess.collection(ctx, r.key), productID)
		if product == nil {
			return errors.WithStack(repository.ErrProductNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		if c.indexOf(hasProductID(product.ProductID)) >= 0 {
			return errors.WithStack(repository.ErrDuplicateProduct)
		}

		return c.append(fromProductDomain(product))
	})
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		i := c.indexOf(hasProductID(product.ProductID))
		if i < 0 {
			return errors.WithStack(repository.ErrProductNotFound)
		}

		return c.replace(i, fromProductDomain(product))
	})
}

func (r *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		i, product := r.find(c, productID)
		if i < 0 {
			return errors.WithStack(repository.ErrProductNotFound)
		}
		if product.Stock < quantity {
			return errors.WithStack(repository.ErrInsufficientStock)
		}
		product.Stock -= quantity

		return c.replace(i, fromProductDomain(product))
	})
}

func (r *productRepository) Delete(ctx context.Context, productID string) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		i := c.indexOf(hasProductID(productID))
		if i < 0 {
			return errors.WithStack(repository.ErrProductNotFound)
		}

		return c.removeAt(i)
	})
}
