package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminServiceFixtures struct {
	service   usecase.AdminUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
}

func createTestAdminService(t *testing.T) adminServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	return adminServiceFixtures{
		service:   NewAdminService(txManager, orderRepo, discardLogger()),
		txManager: txManager,
		orderRepo: orderRepo,
	}
}

func TestAdminService_AddProduct(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().Create(ctx, &entity.Product{
			ProductID: "P010",
			Name:      "Monitor",
			Price:     decimal.RequireFromString("199.99"),
			Category:  "Displays",
			Stock:     4,
		}).Return(nil)
	})

	product, err := fx.service.AddProduct(ctx, &usecase.AddProductInput{
		ProductID: " P010 ",
		Name:      "Monitor",
		Price:     decimal.RequireFromString("199.99"),
		Category:  "Displays",
		Stock:     4,
	})

	require.NoError(t, err)
	assert.Equal(t, "P010", product.ProductID)
}

func TestAdminService_AddProduct_Duplicate(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Product")).Return(repository.ErrDuplicateProduct)
	})

	_, err := fx.service.AddProduct(ctx, &usecase.AddProductInput{
		ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Category: "Computers", Stock: 1,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductAlreadyExists)
}

func TestAdminService_AddProduct_Invalid(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()

	_, err := fx.service.AddProduct(ctx, &usecase.AddProductInput{ProductID: "P010", Name: "Monitor", Category: "Displays", Stock: -1})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.AddProduct(ctx, &usecase.AddProductInput{
		ProductID: "P010", Name: "Monitor", Category: "Displays", Price: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_UpdateProduct(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	laptop := testProducts()[0]
	price := decimal.RequireFromString("12.50")
	name := "Laptop Pro"
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().FindByID(ctx, "P001").Return(laptop, nil)
		repos.products.EXPECT().Update(ctx, laptop).Return(nil)
	})

	product, err := fx.service.UpdateProduct(ctx, "P001", &usecase.UpdateProductInput{Name: &name, Price: &price})

	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", product.Name)
	assert.True(t, product.Price.Equal(price))
	assert.Equal(t, 5, product.Stock)
}

func TestAdminService_UpdateStock(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	laptop := testProducts()[0]
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().FindByID(ctx, "P001").Return(laptop, nil)
		repos.products.EXPECT().Update(ctx, laptop).Return(nil)
	})

	product, err := fx.service.UpdateStock(ctx, "P001", 40)

	require.NoError(t, err)
	assert.Equal(t, 40, product.Stock)

	_, err = fx.service.UpdateStock(ctx, "P001", -1)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_UpdateStock_NotFound(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().FindByID(ctx, "P404").Return(nil, repository.ErrProductNotFound)
	})

	_, err := fx.service.UpdateStock(ctx, "P404", 3)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestAdminService_DeleteProduct(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().Delete(ctx, "P001").Return(nil)
	})
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.products.EXPECT().Delete(ctx, "P001").Return(repository.ErrProductNotFound)
	})

	require.NoError(t, fx.service.DeleteProduct(ctx, "P001"))
	assert.ErrorIs(t, fx.service.DeleteProduct(ctx, "P001"), domainerrors.ErrProductNotFound)
}

func TestAdminService_SalesReport(t *testing.T) {
	fx := createTestAdminService(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	first, err := entity.NewOrder("ada", []entity.OrderLineItem{
		{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Quantity: 3},
	}, entity.ShippingInfo{}, "Cash", now)
	require.NoError(t, err)
	second, err := entity.NewOrder("bob", []entity.OrderLineItem{
		{ProductID: "P002", Name: "Wireless Mouse", Price: decimal.RequireFromString("25.50"), Quantity: 1},
		{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(12), Quantity: 1},
	}, entity.ShippingInfo{}, "Cash", now)
	require.NoError(t, err)

	fx.orderRepo.EXPECT().FindAll(ctx).Return([]*entity.OrderRecord{{Order: first}, {Order: second}}, nil)

	report, err := fx.service.SalesReport(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 5, report.UnitsSold)
	assert.Equal(t, "67.50", report.TotalRevenue.StringFixed(2))
	require.Len(t, report.Products, 2)
	assert.Equal(t, "P001", report.Products[0].ProductID)
	assert.Equal(t, 4, report.Products[0].UnitsSold)
	assert.Equal(t, "42.00", report.Products[0].Revenue.StringFixed(2))
}
