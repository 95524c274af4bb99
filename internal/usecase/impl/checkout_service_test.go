package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var checkoutNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type checkoutServiceFixtures struct {
	service   *checkoutService
	txManager *mockRepo.MockTransactionManager
	publisher *mockService.MockEventPublisher
}

func createTestCheckoutService(t *testing.T, taxRate float64) checkoutServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	publisher := mockService.NewMockEventPublisher(t)
	cfg := &config.Config{
		Checkout: &config.CheckoutConfig{TaxRate: taxRate, InvoiceDueDays: 30},
	}

	srv := NewCheckoutService(CheckoutServiceParams{
		TxManager: txManager,
		Publisher: publisher,
		Config:    cfg,
		Logger:    discardLogger(),
	}).(*checkoutService)
	srv.now = func() time.Time { return checkoutNow }

	return checkoutServiceFixtures{
		service:   srv,
		txManager: txManager,
		publisher: publisher,
	}
}

func validCheckoutInput() *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		Username: "ada",
		Shipping: entity.ShippingInfo{Name: " Ada Lovelace ", Address: "12 Analytical Way", Phone: "0400123456"},
		Payment:  entity.Payment{Method: entity.PaymentCreditCard, AccountHolder: "Ada Lovelace"},
	}
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P001", Quantity: 3})

	var appended *entity.OrderRecord
	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
		repos.products.EXPECT().DecrementStock(ctx, "P001", 3).Return(nil)
		repos.orders.EXPECT().Append(ctx, mock.AnythingOfType("*entity.OrderRecord")).
			Run(func(_ context.Context, record *entity.OrderRecord) { appended = record }).
			Return(nil)
		repos.customers.EXPECT().Update(ctx, customer).Return(nil)
	})
	fx.publisher.EXPECT().
		PublishOrderPlaced(ctx, mock.MatchedBy(func(e *service.OrderPlacedEvent) bool {
			return e.UserID == "ada" && e.Total == "30.00" && e.ItemCount == 3 && e.PlacedAt.Equal(checkoutNow)
		})).
		Return(nil)

	record, err := fx.service.Checkout(ctx, validCheckoutInput())

	require.NoError(t, err)
	assert.Same(t, appended, record)
	assert.True(t, customer.Cart.IsEmpty())

	order := record.Order
	assert.Equal(t, entity.OrderConfirmed, order.Status)
	assert.Equal(t, "Credit Card - Ada Lovelace", order.PaymentMethod)
	assert.Equal(t, "Ada Lovelace", order.Shipping.Name)
	assert.Equal(t, entity.DefaultCountry, order.Shipping.Country)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, order.TotalIsConsistent())

	invoice := record.Invoice
	assert.Equal(t, order.OrderID, invoice.OrderID)
	assert.True(t, invoice.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, invoice.TaxAmount.IsZero())
	assert.Equal(t, checkoutNow.Add(30*24*time.Hour), invoice.DueDate)

	receipt := record.Receipt
	assert.Equal(t, invoice.InvoiceID, receipt.InvoiceID)
	assert.True(t, receipt.AmountPaid.Equal(decimal.NewFromInt(30)))
	assert.True(t, strings.HasPrefix(receipt.TransactionReference, "TXN-20250314092653-"))
	assert.NoError(t, receipt.ValidatePayment())
}

func TestCheckoutService_Checkout_AppliesTaxRate(t *testing.T) {
	fx := createTestCheckoutService(t, 0.1)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P002", Quantity: 1})

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
		repos.products.EXPECT().DecrementStock(ctx, "P002", 1).Return(nil)
		repos.orders.EXPECT().Append(ctx, mock.Anything).Return(nil)
		repos.customers.EXPECT().Update(ctx, customer).Return(nil)
	})
	fx.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(nil)

	record, err := fx.service.Checkout(ctx, validCheckoutInput())

	require.NoError(t, err)
	assert.Equal(t, "25.50", record.Order.Total.StringFixed(2))
	assert.Equal(t, "2.55", record.Invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "28.05", record.Invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, "28.05", record.Receipt.AmountPaid.StringFixed(2))
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(testCustomer(), nil)
	})

	_, err := fx.service.Checkout(ctx, validCheckoutInput())

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_Checkout_UnresolvedLines(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(
		entity.CartLine{ProductID: "P001", Quantity: 1},
		entity.CartLine{ProductID: "P404", Quantity: 1},
		entity.CartLine{ProductID: "P002", Quantity: 9},
	)

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
	})

	_, err := fx.service.Checkout(ctx, validCheckoutInput())

	var unresolved *domainerrors.UnresolvedCartLinesError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, []string{"P404"}, unresolved.ProductIDs)
	assert.Equal(t, 3, len(customer.Cart.Lines()))
}

func TestCheckoutService_Checkout_InsufficientStock(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P001", Quantity: 1}, entity.CartLine{ProductID: "P002", Quantity: 9})

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
	})

	_, err := fx.service.Checkout(ctx, validCheckoutInput())

	var stockErr *domainerrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, []domainerrors.StockShortage{{ProductID: "P002", Requested: 9, Available: 2}}, stockErr.Shortages)
}

func TestCheckoutService_Checkout_StockTakenConcurrently(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P001", Quantity: 3})

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
		repos.products.EXPECT().DecrementStock(ctx, "P001", 3).Return(repository.ErrInsufficientStock)
	})

	_, err := fx.service.Checkout(ctx, validCheckoutInput())

	var stockErr *domainerrors.InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
}

func TestCheckoutService_Checkout_AppendFailureKeepsCart(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P001", Quantity: 3})

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
		repos.products.EXPECT().DecrementStock(ctx, "P001", 3).Return(nil)
		repos.orders.EXPECT().Append(ctx, mock.Anything).
			Return(domainerrors.NewStoreIOError(errors.New("disk full"), "write orders.json"))
	})

	record, err := fx.service.Checkout(ctx, validCheckoutInput())

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrStoreIO)
	assert.Equal(t, 3, customer.Cart.QuantityOf("P001"))
}

func TestCheckoutService_Checkout_PublishFailureKeepsOrder(t *testing.T) {
	fx := createTestCheckoutService(t, 0)
	ctx := context.Background()
	customer := testCustomer(entity.CartLine{ProductID: "P001", Quantity: 1})

	expectTx(t, fx.txManager, func(repos txRepos) {
		repos.customers.EXPECT().FindByUsername(ctx, "ada").Return(customer, nil)
		repos.products.EXPECT().FindAll(ctx).Return(testProducts(), nil)
		repos.products.EXPECT().DecrementStock(ctx, "P001", 1).Return(nil)
		repos.orders.EXPECT().Append(ctx, mock.Anything).Return(nil)
		repos.customers.EXPECT().Update(ctx, customer).Return(nil)
	})
	fx.publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(errors.New("broker unavailable"))

	record, err := fx.service.Checkout(ctx, validCheckoutInput())

	require.NoError(t, err)
	assert.NotNil(t, record)
}

func TestCheckoutService_Checkout_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.CheckoutInput)
		detail string
	}{
		{name: "missing username", mutate: func(in *usecase.CheckoutInput) { in.Username = "" }, detail: "Username"},
		{name: "short phone", mutate: func(in *usecase.CheckoutInput) { in.Shipping.Phone = "123" }, detail: "shipping"},
		{name: "missing address", mutate: func(in *usecase.CheckoutInput) { in.Shipping.Address = " " }, detail: "shipping"},
		{name: "unknown method", mutate: func(in *usecase.CheckoutInput) { in.Payment.Method = "bitcoin" }, detail: "payment"},
		{name: "card without holder", mutate: func(in *usecase.CheckoutInput) { in.Payment.AccountHolder = "" }, detail: "payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCheckoutService(t, 0)
			input := validCheckoutInput()
			tt.mutate(input)

			_, err := fx.service.Checkout(context.Background(), input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}
