package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// catalogueService implements the CatalogueUsecase interface.
type catalogueService struct {
	productRepo       repository.ProductRepository
	lowStockThreshold int
	logger            *slog.Logger
}

// CatalogueServiceParams holds dependencies for CatalogueService, injected by Fx.
type CatalogueServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogueService is the constructor for catalogueService.
func NewCatalogueService(params CatalogueServiceParams) usecase.CatalogueUsecase {
	threshold := entity.DefaultLowStockThreshold
	if params.Config != nil && params.Config.Checkout != nil && params.Config.Checkout.LowStockThreshold > 0 {
		threshold = params.Config.Checkout.LowStockThreshold
	}

	return &catalogueService{
		productRepo:       params.ProductRepo,
		lowStockThreshold: threshold,
		logger:            params.Logger,
	}
}

// LoadCatalogue reads every product into a fresh snapshot.
func (srv *catalogueService) LoadCatalogue(ctx context.Context) (*entity.Catalogue, error) {
	catalogue, err := loadCatalogue(ctx, srv.productRepo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalogue")
	}
	srv.logger.Debug("Catalogue loaded", slog.Int("products", catalogue.Len()))

	return catalogue, nil
}

// ListProducts returns the products matching every filter set on input.
func (srv *catalogueService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) ([]*entity.Product, error) {
	if input == nil {
		input = &usecase.ListProductsInput{}
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	catalogue, err := srv.LoadCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	if input.Category != "" {
		catalogue = entity.NewCatalogue(catalogue.ListByCategory(input.Category))
	}
	if input.Search != "" {
		catalogue = entity.NewCatalogue(catalogue.Search(input.Search))
	}

	switch input.Stock {
	case usecase.StockAvailable:
		return catalogue.Available(), nil
	case usecase.StockLow:
		return catalogue.LowStock(srv.lowStockThreshold), nil
	case usecase.StockOut:
		return catalogue.OutOfStock(), nil
	case usecase.StockAll:
		return catalogue.ListAll(), nil
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown stock filter " + string(input.Stock))
	}
}

// GetProduct looks one product up by id.
func (srv *catalogueService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	return findProduct(ctx, srv.productRepo, productID)
}

// ListCategories aggregates product count and stock per category.
func (srv *catalogueService) ListCategories(ctx context.Context) ([]entity.CategorySummary, error) {
	catalogue, err := srv.LoadCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	return catalogue.Categories(), nil
}
