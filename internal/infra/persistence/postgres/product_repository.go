// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindAll returns the catalogue in insertion order.
func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var models []*model.ProductModel
	if err := repo.db.WithContext(ctx).Order("created_at, product_id").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toProductDomain(m))
	}

	return products, nil
}

func (repo *productRepository) FindByID(ctx context.Context, productID string) (*entity.Product, error) {
	var m model.ProductModel
	if err := repo.db.WithContext(ctx).Where("product_id = ?", productID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&m), nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := repo.db.WithContext(ctx).Create(fromProductDomain(product)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateProduct
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("price and stock must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("product_id = ?", product.ProductID).
		Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"category":    product.Category,
			"stock":       product.Stock,
			"description": product.Description,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("price and stock must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock applies the decrement in one conditional UPDATE so concurrent
// checkouts cannot drive stock below zero.
func (repo *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := repo.FindByID(ctx, productID); err != nil {
		return err
	}

	return repository.ErrInsufficientStock
}

func (repo *productRepository) Delete(ctx context.Context, productID string) error {
	result := repo.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func toProductDomain(m *model.ProductModel) *entity.Product {
	return &entity.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Stock:       m.Stock,
		Description: m.Description,
	}
}

func fromProductDomain(p *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
	}
}
