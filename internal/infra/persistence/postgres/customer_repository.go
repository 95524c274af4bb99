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

// customerRepository implements the domain.CustomerRepository interface using GORM.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// FindByUsername retrieves an account, preloading its cart lines in insertion order.
func (repo *customerRepository) FindByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	var m model.CustomerModel
	err := repo.db.WithContext(ctx).
		Preload("CartLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("username = ?", username).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by username")
	}

	return toCustomerDomain(&m), nil
}

// Create inserts the account and its cart lines in one statement batch.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	if err := repo.db.WithContext(ctx).Create(fromCustomerDomain(customer)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCustomer
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	return nil
}

// Update saves the profile and replaces the stored cart lines.
func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	m := fromCustomerDomain(customer)

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CustomerModel{}).
			Where("username = ?", m.Username).
			Updates(map[string]any{
				"password_hash": m.PasswordHash,
				"email":         m.Email,
				"role":          m.Role,
				"full_name":     m.FullName,
				"address":       m.Address,
				"phone_number":  m.PhoneNumber,
			})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
		}
		if result.RowsAffected == 0 {
			return repository.ErrCustomerNotFound
		}

		if err := tx.Where("username = ?", m.Username).Delete(&model.CartLineModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart lines")
		}
		if len(m.CartLines) == 0 {
			return nil
		}
		if err := tx.Create(&m.CartLines).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save cart lines")
		}

		return nil
	})
}

func toCustomerDomain(m *model.CustomerModel) *entity.Customer {
	lines := make([]entity.CartLine, 0, len(m.CartLines))
	for _, l := range m.CartLines {
		lines = append(lines, entity.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	role := entity.ParseRole(m.Role)

	return &entity.Customer{
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Email:        m.Email,
		Role:         role,
		FullName:     m.FullName,
		Address:      m.Address,
		PhoneNumber:  m.PhoneNumber,
		Cart:         entity.NewCart(lines),
	}
}

func fromCustomerDomain(c *entity.Customer) *model.CustomerModel {
	lines := c.EnsureCart().Lines()
	cartLines := make([]model.CartLineModel, 0, len(lines))
	for i, l := range lines {
		cartLines = append(cartLines, model.CartLineModel{
			Username:  c.Username,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Position:  i,
		})
	}

	return &model.CustomerModel{
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Email:        c.Email,
		Role:         c.Role.String(),
		FullName:     c.FullName,
		Address:      c.Address,
		PhoneNumber:  c.PhoneNumber,
		CartLines:    cartLines,
	}
}
