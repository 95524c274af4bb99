package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultInvoiceDueDays = 14

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager  repository.TransactionManager
	publisher  service.EventPublisher
	taxRate    decimal.Decimal
	invoiceDue time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	taxRate := decimal.Zero
	dueDays := defaultInvoiceDueDays
	if params.Config != nil && params.Config.Checkout != nil {
		taxRate = decimal.NewFromFloat(params.Config.Checkout.TaxRate)
		if params.Config.Checkout.InvoiceDueDays > 0 {
			dueDays = params.Config.Checkout.InvoiceDueDays
		}
	}

	return &checkoutService{
		txManager:  params.TxManager,
		publisher:  params.Publisher,
		taxRate:    taxRate,
		invoiceDue: time.Duration(dueDays) * 24 * time.Hour,
		now:        time.Now,
		logger:     params.Logger,
	}
}

// Checkout prices the cart, derives the invoice and receipt, takes the stock, appends
// the order and clears the cart. Either all of it is persisted or none of it is.
func (srv *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*entity.OrderRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	shipping := input.Shipping.Normalize()
	if err := shipping.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("shipping: " + err.Error())
	}
	if err := input.Payment.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("payment: " + err.Error())
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Checking out", slog.String("username", input.Username))

	var record *entity.OrderRecord

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()
		productRepo := repoFactory.ProductRepo()

		// 1. Load the cart
		customer, err := findCustomer(ctx, customerRepo, input.Username)
		if err != nil {
			return err
		}
		cart := customer.EnsureCart()
		if cart.IsEmpty() {
			return domainerrors.ErrEmptyCart
		}

		// 2. Price every line against the current catalogue
		catalogue, err := loadCatalogue(ctx, productRepo)
		if err != nil {
			return err
		}
		items, err := resolveCart(cart, catalogue)
		if err != nil {
			return err
		}

		// 3. Derive order, invoice and receipt
		now := srv.now()
		paymentMethod := input.Payment.Descriptor()
		order, err := entity.NewOrder(customer.Username, items, shipping, paymentMethod, now)
		if err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		invoice := entity.InvoiceFromOrder(order, srv.taxRate, srv.invoiceDue, now)
		receipt := entity.ReceiptFromInvoice(invoice, paymentMethod, now)
		if err := receipt.ValidatePayment(); err != nil {
			return domainerrors.ErrPaymentMismatch.WithDetails(err.Error())
		}

		// 4. Take the stock
		for _, item := range items {
			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return stockError(err, item, catalogue)
			}
		}

		// 5. Append the order and clear the cart
		record = &entity.OrderRecord{Order: order, Invoice: invoice, Receipt: receipt}
		if err := repoFactory.OrderRepo().Append(ctx, record); err != nil {
			return errors.Wrap(err, "failed to append order")
		}

		cart.Clear()
		if err := customerRepo.Update(ctx, customer); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to checkout")
	}

	logger.Info("Order placed",
		slog.String("orderID", record.Order.OrderID),
		slog.String("username", record.Order.UserID),
		slog.String("total", record.Invoice.TotalAmount.StringFixed(2)),
	)
	srv.publishOrderPlaced(ctx, logger, record)

	return record, nil
}

// publishOrderPlaced announces a committed order. Failures are logged only.
func (srv *checkoutService) publishOrderPlaced(ctx context.Context, logger *slog.Logger, record *entity.OrderRecord) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderPlacedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   record.Order.OrderID,
		UserID:    record.Order.UserID,
		Total:     record.Receipt.AmountPaid.StringFixed(2),
		ItemCount: record.Order.ItemCount(),
		PlacedAt:  record.Order.OrderDate,
	}
	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.Warn("Failed to publish order placed event",
			slog.String("orderID", event.OrderID),
			slog.Any("error", err),
		)
	}
}

// resolveCart builds the order line items at current prices. Unknown products fail
// the whole cart before any stock shortfall is reported.
func resolveCart(cart *entity.Cart, catalogue *entity.Catalogue) ([]entity.OrderLineItem, error) {
	lines := cart.Lines()
	items := make([]entity.OrderLineItem, 0, len(lines))

	var missing []string
	var shortages []domainerrors.StockShortage
	for _, line := range lines {
		product, ok := catalogue.GetByID(line.ProductID)
		if !ok {
			missing = append(missing, line.ProductID)

			continue
		}
		if !product.CanFulfil(line.Quantity) {
			shortages = append(shortages, domainerrors.StockShortage{
				ProductID: product.ProductID,
				Requested: line.Quantity,
				Available: product.Stock,
			})

			continue
		}
		items = append(items, entity.OrderLineItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	if len(missing) > 0 {
		return nil, domainerrors.NewUnresolvedCartLinesError(missing...)
	}
	if len(shortages) > 0 {
		return nil, domainerrors.NewInsufficientStockError(shortages...)
	}

	return items, nil
}

// stockError maps a failed decrement onto the checkout error taxonomy.
func stockError(err error, item entity.OrderLineItem, catalogue *entity.Catalogue) error {
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		available := 0
		if product, ok := catalogue.GetByID(item.ProductID); ok {
			available = product.Stock
		}

		return domainerrors.NewInsufficientStockError(domainerrors.StockShortage{
			ProductID: item.ProductID,
			Requested: item.Quantity,
			Available: available,
		})
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.NewUnresolvedCartLinesError(item.ProductID)
	default:
		return errors.Wrap(err, "failed to decrement stock")
	}
}
