package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type customerRepository struct {
	run    runner
	key    string
	logger *slog.Logger
}

// NewCustomerRepository creates an account repository over the store's users collection.
func NewCustomerRepository(store *Store) repository.CustomerRepository {
	return newCustomerRepository(store, store)
}

func newCustomerRepository(store *Store, run runner) *customerRepository {
	return &customerRepository{
		run:    run,
		key:    store.keys.Users,
		logger: store.logger,
	}
}

func (r *customerRepository) find(c *collection, username string) (int, *entity.Customer) {
	for i, raw := range c.records {
		var rec userRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.logger.Warn("Skipping undecodable user record", slog.Any("error", err))

			continue
		}
		if rec.Username == username {
			return i, toCustomerDomain(&rec)
		}
	}

	return -1, nil
}

func (r *customerRepository) FindByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	var customer *entity.Customer
	err := r.run.view(ctx, func(sess *session) error {
		_, customer = r.find(sess.collection(ctx, r.key), username)
		if customer == nil {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		if i, _ := r.find(c, customer.Username); i >= 0 {
			return errors.WithStack(repository.ErrDuplicateCustomer)
		}

		return c.append(fromCustomerDomain(customer))
	})
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.run.update(ctx, func(sess *session) error {
		c := sess.collection(ctx, r.key)
		i, _ := r.find(c, customer.Username)
		if i < 0 {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}

		return c.replace(i, fromCustomerDomain(customer))
	})
}
