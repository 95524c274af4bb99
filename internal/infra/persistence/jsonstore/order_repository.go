package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
)

type orderRepository struct {
	run    runner
	key    string
	logger *slog.Logger
}

// NewOrderRepository creates the append-only order history over the store's orders collection.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return newOrderRepository(store, store)
}

func newOrderRepository(store *Store, run runner) *orderRepository {
	return &orderRepository{
		run:    run,
		key:    store.keys.Orders,
		logger: store.logger,
	}
}

// decode returns the history entries that carry an order, skipping anything else.
func (r *orderRepository) decode(c *collection, keep func(*entity.OrderRecord) bool) []*entity.OrderRecord {
	records := make([]*entity.OrderRecord, 0, len(c.records))
	for _, raw := range c.records {
		var env orderEnvelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Order == nil {
			r.logger.Warn("Skipping undecodable order record", slog.Any("error", err))

			continue
		}

		record := toOrderRecordDomain(&env)
		if keep == nil || keep(record) {
			records = append(records, record)
		}
	}

	return records
}

func (r *orderRepository) Append(ctx context.Context, record *entity.OrderRecord) error {
	return r.run.update(ctx, func(sess *session) error {
		return sess.collection(ctx, r.key).append(fromOrderRecordDomain(record))
	})
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.OrderRecord, error) {
	var records []*entity.OrderRecord
	err := r.run.view(ctx, func(sess *session) error {
		records = r.decode(sess.collection(ctx, r.key), nil)

		return nil
	})

	return records, err
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]*entity.OrderRecord, error) {
	var records []*entity.OrderRecord
	err := r.run.view(ctx, func(sess *session) error {
		records = r.decode(sess.collection(ctx, r.key), func(rec *entity.OrderRecord) bool {
			return rec.Order.UserID == userID
		})

		return nil
	})

	return records, err
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (*entity.OrderRecord, error) {
	var found *entity.OrderRecord
	err := r.run.view(ctx, func(sess *session) error {
		matches := r.decode(sess.collection(ctx, r.key), func(rec *entity.OrderRecord) bool {
			return rec.Order.OrderID == orderID
		})
		if len(matches) == 0 {
			return errors.WithStack(repository.ErrOrderNotFound)
		}
		found = matches[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}
