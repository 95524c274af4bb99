package impl

import (
	"context"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogueServiceFixtures struct {
	service     usecase.CatalogueUsecase
	productRepo *mockRepo.MockProductRepository
}

func createTestCatalogueService(t *testing.T, cfg *config.Config) catalogueServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	service := NewCatalogueService(CatalogueServiceParams{
		ProductRepo: productRepo,
		Config:      cfg,
		Logger:      discardLogger(),
	})

	return catalogueServiceFixtures{
		service:     service,
		productRepo: productRepo,
	}
}

func TestCatalogueService_ListProducts_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.ListProductsInput
		want  []string
	}{
		{name: "no filters", input: nil, want: []string{"P001", "P002", "P003"}},
		{name: "category ignores case", input: &usecase.ListProductsInput{Category: "ACCESSORIES"}, want: []string{"P002", "P003"}},
		{name: "search by name", input: &usecase.ListProductsInput{Search: "lap"}, want: []string{"P001"}},
		{name: "search by id", input: &usecase.ListProductsInput{Search: "p00"}, want: []string{"P001", "P002", "P003"}},
		{name: "available", input: &usecase.ListProductsInput{Stock: usecase.StockAvailable}, want: []string{"P001", "P002"}},
		{name: "low stock uses default threshold", input: &usecase.ListProductsInput{Stock: usecase.StockLow}, want: []string{"P001", "P002"}},
		{name: "out of stock", input: &usecase.ListProductsInput{Stock: usecase.StockOut}, want: []string{"P003"}},
		{
			name:  "filters combine",
			input: &usecase.ListProductsInput{Category: "accessories", Stock: usecase.StockAvailable},
			want:  []string{"P002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCatalogueService(t, nil)
			ctx := context.Background()
			fx.productRepo.EXPECT().FindAll(ctx).Return(testProducts(), nil)

			products, err := fx.service.ListProducts(ctx, tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, productIDs(products))
		})
	}
}

func TestCatalogueService_ListProducts_ConfiguredLowStockThreshold(t *testing.T) {
	fx := createTestCatalogueService(t, &config.Config{
		Checkout: &config.CheckoutConfig{LowStockThreshold: 3},
	})
	ctx := context.Background()
	fx.productRepo.EXPECT().FindAll(ctx).Return(testProducts(), nil)

	products, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{Stock: usecase.StockLow})

	require.NoError(t, err)
	assert.Equal(t, []string{"P002"}, productIDs(products))
}

func TestCatalogueService_ListProducts_InvalidStockFilter(t *testing.T) {
	fx := createTestCatalogueService(t, nil)

	_, err := fx.service.ListProducts(context.Background(), &usecase.ListProductsInput{Stock: "plenty"})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogueService_ListProducts_LoadError(t *testing.T) {
	fx := createTestCatalogueService(t, nil)
	ctx := context.Background()
	fx.productRepo.EXPECT().FindAll(ctx).Return(nil, domainerrors.NewStoreIOError(errors.New("bucket offline"), "read products.json"))

	_, err := fx.service.ListProducts(ctx, nil)

	assert.ErrorIs(t, err, domainerrors.ErrStoreIO)
	assert.Contains(t, err.Error(), "failed to load catalogue")
}

func TestCatalogueService_GetProduct(t *testing.T) {
	fx := createTestCatalogueService(t, nil)
	ctx := context.Background()
	laptop := testProducts()[0]
	fx.productRepo.EXPECT().FindByID(ctx, "P001").Return(laptop, nil)
	fx.productRepo.EXPECT().FindByID(ctx, "P404").Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.GetProduct(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, laptop, product)

	_, err = fx.service.GetProduct(ctx, "P404")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "P404", appErr.Details())
}

func TestCatalogueService_ListCategories(t *testing.T) {
	fx := createTestCatalogueService(t, nil)
	ctx := context.Background()
	fx.productRepo.EXPECT().FindAll(mock.Anything).Return(testProducts(), nil)

	categories, err := fx.service.ListCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entity.CategorySummary{
		{Category: "Accessories", ProductCount: 2, TotalStock: 2},
		{Category: "Computers", ProductCount: 1, TotalStock: 5},
	}, categories)
}
