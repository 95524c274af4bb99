package jsonstore

import (
	"context"

	"storefront/internal/domain/repository"
)

// storeTransactionManager implements the domain's TransactionManager over a single
// store write session.
type storeTransactionManager struct {
	store *Store
}

// storeRepositoryFactory hands out repositories that share one session, so every
// change they stage is committed or discarded together.
type storeRepositoryFactory struct {
	store *Store
	run   txRunner
}

// ProductRepo returns a product repository bound to the session.
func (f *storeRepositoryFactory) ProductRepo() repository.ProductRepository {
	return newProductRepository(f.store, f.run)
}

// CustomerRepo returns an account repository bound to the session.
func (f *storeRepositoryFactory) CustomerRepo() repository.CustomerRepository {
	return newCustomerRepository(f.store, f.run)
}

// OrderRepo returns an order repository bound to the session.
func (f *storeRepositoryFactory) OrderRepo() repository.OrderRepository {
	return newOrderRepository(f.store, f.run)
}

// NewTransactionManager is the constructor for storeTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &storeTransactionManager{store: store}
}

// Execute holds the store's write lock while fn runs. Nothing reaches the bucket
// unless fn returns nil.
func (tm *storeTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return tm.store.update(ctx, func(sess *session) error {
		return fn(&storeRepositoryFactory{store: tm.store, run: txRunner{sess: sess}})
	})
}
