package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// AddProduct lists a new product.
func (srv *adminService) AddProduct(ctx context.Context, input *usecase.AddProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ProductID:   strings.TrimSpace(input.ProductID),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		Description: input.Description,
	}
	if err := product.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Adding product", slog.String("productID", product.ProductID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateProduct) {
				return domainerrors.ErrProductAlreadyExists.WithDetails(product.ProductID)
			}

			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add product")
	}

	return product, nil
}

// UpdateProduct changes the product fields set on input.
func (srv *adminService) UpdateProduct(ctx context.Context, productID string, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Updating product", slog.String("productID", productID))

	return srv.modify(ctx, productID, func(product *entity.Product) {
		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Category != nil {
			product.Category = strings.TrimSpace(*input.Category)
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
	})
}

// UpdateStock sets the units on hand of a product.
func (srv *adminService) UpdateStock(ctx context.Context, productID string, stock int) (*entity.Product, error) {
	if stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails(entity.ErrNegativeStock.Error())
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Updating stock", slog.String("productID", productID), slog.Int("stock", stock))

	return srv.modify(ctx, productID, func(product *entity.Product) {
		product.Stock = stock
	})
}

// DeleteProduct removes a product from the catalogue. Carts still naming it are
// reported as unresolved at checkout.
func (srv *adminService) DeleteProduct(ctx context.Context, productID string) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Deleting product", slog.String("productID", productID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Delete(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(productID)
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// SalesReport aggregates units and revenue over the whole order history.
func (srv *adminService) SalesReport(ctx context.Context) (*entity.SalesReport, error) {
	records, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order history")
	}

	return entity.BuildSalesReport(records), nil
}

func (srv *adminService) modify(ctx context.Context, productID string, change func(*entity.Product)) (*entity.Product, error) {
	var updated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := findProduct(ctx, productRepo, productID)
		if err != nil {
			return err
		}

		change(product)
		if err := product.Validate(); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}

		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WithDetails(productID)
			}

			return errors.Wrap(err, "failed to update product")
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return updated, nil
}
