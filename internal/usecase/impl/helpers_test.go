package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// txRepos are the repository mocks handed to one transaction callback.
type txRepos struct {
	factory   *mockRepo.MockRepositoryFactory
	products  *mockRepo.MockProductRepository
	customers *mockRepo.MockCustomerRepository
	orders    *mockRepo.MockOrderRepository
}

// expectTx makes txManager run the next transaction callback against fresh
// repository mocks prepared by setup, returning whatever the callback returns.
func expectTx(t *testing.T, txManager *mockRepo.MockTransactionManager, setup func(repos txRepos)) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			repos := txRepos{
				factory:   mockRepo.NewMockRepositoryFactory(t),
				products:  mockRepo.NewMockProductRepository(t),
				customers: mockRepo.NewMockCustomerRepository(t),
				orders:    mockRepo.NewMockOrderRepository(t),
			}
			repos.factory.EXPECT().ProductRepo().Return(repos.products).Maybe()
			repos.factory.EXPECT().CustomerRepo().Return(repos.customers).Maybe()
			repos.factory.EXPECT().OrderRepo().Return(repos.orders).Maybe()
			setup(repos)

			return fn(repos.factory)
		}).
		Once()
}

func testProducts() []*entity.Product {
	return []*entity.Product{
		{ProductID: "P001", Name: "Laptop", Price: decimal.RequireFromString("10.00"), Category: "Computers", Stock: 5},
		{ProductID: "P002", Name: "Wireless Mouse", Price: decimal.RequireFromString("25.50"), Category: "Accessories", Stock: 2},
		{ProductID: "P003", Name: "USB Cable", Price: decimal.RequireFromString("4.99"), Category: "accessories", Stock: 0},
	}
}

func testCustomer(lines ...entity.CartLine) *entity.Customer {
	customer := entity.NewCustomer("ada", "$2a$04$hash", "ada@example.com", entity.RoleCustomer)
	customer.Cart = entity.NewCart(lines)

	return customer
}

func productIDs(products []*entity.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}

	return ids
}
