package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo repository.OrderRepository
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orderRepo: orderRepo,
		qrService: qrService,
		logger:    logger,
	}
}

// ListOrders returns the order history of username in placement order.
func (srv *orderService) ListOrders(ctx context.Context, username string) ([]*entity.OrderRecord, error) {
	records, err := srv.orderRepo.FindByUser(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return records, nil
}

// GetOrder returns one order. Customers only see their own orders.
func (srv *orderService) GetOrder(ctx context.Context, requester usecase.Requester, orderID string) (*entity.OrderRecord, error) {
	record, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WithDetails(orderID)
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !requester.IsAdmin && record.Order.UserID != requester.Username {
		srv.logger.Warn("Order access denied",
			slog.String("orderID", orderID),
			slog.String("username", requester.Username),
		)

		return nil, domainerrors.ErrForbidden.WithDetails("order belongs to another account")
	}

	return record, nil
}

// ReceiptQR renders the receipt of an order as a PNG QR code.
func (srv *orderService) ReceiptQR(ctx context.Context, requester usecase.Requester, orderID string) ([]byte, error) {
	record, err := srv.GetOrder(ctx, requester, orderID)
	if err != nil {
		return nil, err
	}
	if record.Receipt == nil {
		return nil, domainerrors.ErrNotFound.WithDetails("order has no receipt")
	}

	png, err := srv.qrService.GenerateReceiptQR(record.Receipt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate receipt QR code")
	}

	return png, nil
}
