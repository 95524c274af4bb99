// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

var validate = usecase.NewValidator()

// validateInput runs the struct tags of input and reports failures as ErrValidationFailed.
func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

func findCustomer(ctx context.Context, repo repository.CustomerRepository, username string) (*entity.Customer, error) {
	customer, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WithDetails(username)
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}
	customer.EnsureCart()

	return customer, nil
}

func findProduct(ctx context.Context, repo repository.ProductRepository, productID string) (*entity.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productID)
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func loadCatalogue(ctx context.Context, repo repository.ProductRepository) (*entity.Catalogue, error) {
	products, err := repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}

	return entity.NewCatalogue(products), nil
}
