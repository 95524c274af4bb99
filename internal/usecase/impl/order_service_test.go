package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	orderRepo *mockRepo.MockOrderRepository
	qrService *mockService.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	qrService := mockService.NewMockQRCodeService(t)

	return orderServiceFixtures{
		service:   NewOrderService(orderRepo, qrService, discardLogger()),
		orderRepo: orderRepo,
		qrService: qrService,
	}
}

func testOrderRecord(orderID, userID string) *entity.OrderRecord {
	return &entity.OrderRecord{
		Order:   &entity.Order{OrderID: orderID, UserID: userID},
		Invoice: &entity.Invoice{OrderID: orderID, UserID: userID},
		Receipt: &entity.Receipt{ReceiptID: "R-" + orderID, OrderID: orderID, UserID: userID},
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	history := []*entity.OrderRecord{testOrderRecord("O1", "ada"), testOrderRecord("O2", "ada")}
	fx.orderRepo.EXPECT().FindByUser(ctx, "ada").Return(history, nil)

	records, err := fx.service.ListOrders(ctx, "ada")

	require.NoError(t, err)
	assert.Equal(t, history, records)
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requester usecase.Requester
		wantErr   error
	}{
		{name: "owner", requester: usecase.Requester{Username: "ada"}},
		{name: "admin", requester: usecase.Requester{Username: "root", IsAdmin: true}},
		{name: "someone else", requester: usecase.Requester{Username: "bob"}, wantErr: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			fx.orderRepo.EXPECT().FindByID(ctx, "O1").Return(testOrderRecord("O1", "ada"), nil)

			record, err := fx.service.GetOrder(ctx, tt.requester, "O1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, record)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, "O1", record.Order.OrderID)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	fx.orderRepo.EXPECT().FindByID(ctx, "missing").Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, usecase.Requester{Username: "ada"}, "missing")

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ReceiptQR(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	record := testOrderRecord("O1", "ada")
	fx.orderRepo.EXPECT().FindByID(ctx, "O1").Return(record, nil)
	fx.qrService.EXPECT().GenerateReceiptQR(record.Receipt).Return([]byte("png"), nil)

	png, err := fx.service.ReceiptQR(ctx, usecase.Requester{Username: "ada"}, "O1")

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestOrderService_ReceiptQR_GenerateError(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	record := testOrderRecord("O1", "ada")
	fx.orderRepo.EXPECT().FindByID(ctx, "O1").Return(record, nil)
	fx.qrService.EXPECT().GenerateReceiptQR(record.Receipt).Return(nil, errors.New("encoder failed"))

	_, err := fx.service.ReceiptQR(ctx, usecase.Requester{Username: "ada"}, "O1")

	assert.ErrorContains(t, err, "failed to generate receipt QR code")
}
