package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// orderRepository implements the append-only domain.OrderRepository using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) Append(ctx context.Context, record *entity.OrderRecord) error {
	m := &model.OrderRecordModel{
		OrderID:   record.Order.OrderID,
		UserID:    record.Order.UserID,
		Total:     record.Order.Total,
		Status:    string(record.Order.Status),
		OrderDate: record.Order.OrderDate,
		Payload:   datatypes.NewJSONType(*record),
	}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append order record")
	}

	return nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.OrderRecord, error) {
	return repo.find(repo.db.WithContext(ctx))
}

func (repo *orderRepository) FindByUser(ctx context.Context, userID string) ([]*entity.OrderRecord, error) {
	return repo.find(repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (repo *orderRepository) FindByID(ctx context.Context, orderID string) (*entity.OrderRecord, error) {
	var m model.OrderRecordModel
	if err := repo.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderRecordDomain(&m), nil
}

func (repo *orderRepository) find(query *gorm.DB) ([]*entity.OrderRecord, error) {
	var models []*model.OrderRecordModel
	if err := query.Order("created_at, order_id").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list order records")
	}

	records := make([]*entity.OrderRecord, 0, len(models))
	for _, m := range models {
		records = append(records, toOrderRecordDomain(m))
	}

	return records, nil
}

func toOrderRecordDomain(m *model.OrderRecordModel) *entity.OrderRecord {
	record := m.Payload.Data()

	return &record
}
