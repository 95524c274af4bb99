package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager    repository.TransactionManager
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:    params.TxManager,
		customerRepo: params.CustomerRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

// ViewCart prices the cart of username against the current catalogue.
func (srv *cartService) ViewCart(ctx context.Context, username string) (*usecase.CartView, error) {
	customer, err := findCustomer(ctx, srv.customerRepo, username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to view cart")
	}

	view, err := priceCart(ctx, srv.productRepo, customer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to view cart")
	}

	return view, nil
}

// AddToCart adds units of a product, refusing quantities the current stock cannot cover.
func (srv *cartService) AddToCart(ctx context.Context, username string, input *usecase.AddToCartInput) (*usecase.CartView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Adding to cart", slog.String("username", username), slog.String("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	return srv.mutate(ctx, username, func(repoFactory repository.RepositoryFactory, cart *entity.Cart) error {
		product, err := findProduct(ctx, repoFactory.ProductRepo(), input.ProductID)
		if err != nil {
			return err
		}

		requested := cart.QuantityOf(input.ProductID) + input.Quantity
		if !product.CanFulfil(requested) {
			return domainerrors.NewInsufficientStockError(domainerrors.StockShortage{
				ProductID: product.ProductID,
				Requested: requested,
				Available: product.Stock,
			})
		}
		cart.Add(input.ProductID, input.Quantity)

		return nil
	})
}

// UpdateCartItem sets the quantity of an existing line. Zero removes it.
func (srv *cartService) UpdateCartItem(ctx context.Context, username string, input *usecase.UpdateCartItemInput) (*usecase.CartView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Updating cart item", slog.String("username", username), slog.String("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	return srv.mutate(ctx, username, func(repoFactory repository.RepositoryFactory, cart *entity.Cart) error {
		if cart.QuantityOf(input.ProductID) == 0 {
			return domainerrors.ErrCartLineNotFound.WithDetails(input.ProductID)
		}

		if input.Quantity > 0 {
			product, err := findProduct(ctx, repoFactory.ProductRepo(), input.ProductID)
			if err != nil {
				return err
			}
			if !product.CanFulfil(input.Quantity) {
				return domainerrors.NewInsufficientStockError(domainerrors.StockShortage{
					ProductID: product.ProductID,
					Requested: input.Quantity,
					Available: product.Stock,
				})
			}
		}
		cart.UpdateQuantity(input.ProductID, input.Quantity)

		return nil
	})
}

// RemoveFromCart drops every line for productID.
func (srv *cartService) RemoveFromCart(ctx context.Context, username, productID string) (*usecase.CartView, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Removing from cart", slog.String("username", username), slog.String("productID", productID))

	return srv.mutate(ctx, username, func(_ repository.RepositoryFactory, cart *entity.Cart) error {
		if !cart.Remove(productID) {
			return domainerrors.ErrCartLineNotFound.WithDetails(productID)
		}

		return nil
	})
}

// ClearCart empties the cart of username.
func (srv *cartService) ClearCart(ctx context.Context, username string) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Clearing cart", slog.String("username", username))

	_, err := srv.mutate(ctx, username, func(_ repository.RepositoryFactory, cart *entity.Cart) error {
		cart.Clear()

		return nil
	})

	return err
}

// mutate loads the account, applies change to its cart, saves the account and
// returns the repriced cart, all in one transaction.
func (srv *cartService) mutate(
	ctx context.Context,
	username string,
	change func(repository.RepositoryFactory, *entity.Cart) error,
) (*usecase.CartView, error) {
	var view *usecase.CartView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		customer, err := findCustomer(ctx, customerRepo, username)
		if err != nil {
			return err
		}

		if err := change(repoFactory, customer.Cart); err != nil {
			return err
		}

		if err := customerRepo.Update(ctx, customer); err != nil {
			return errors.Wrap(err, "failed to save cart")
		}

		view, err = priceCart(ctx, repoFactory.ProductRepo(), customer)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update cart")
	}

	return view, nil
}

// priceCart values every cart line at the current catalogue price and flags
// lines whose product has gone.
func priceCart(ctx context.Context, productRepo repository.ProductRepository, customer *entity.Customer) (*usecase.CartView, error) {
	catalogue, err := loadCatalogue(ctx, productRepo)
	if err != nil {
		return nil, err
	}

	cart := customer.EnsureCart()
	view := &usecase.CartView{
		Username:   customer.Username,
		Lines:      make([]usecase.CartLineView, 0, len(cart.Lines())),
		TotalItems: cart.TotalItems(),
		Subtotal:   decimal.Zero,
	}

	for _, line := range cart.Lines() {
		product, ok := catalogue.GetByID(line.ProductID)
		if !ok {
			view.Lines = append(view.Lines, usecase.CartLineView{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Missing:   true,
			})
			view.MissingProducts = append(view.MissingProducts, line.ProductID)

			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, usecase.CartLineView{
			ProductID: line.ProductID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			Stock:     product.Stock,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}

	return view, nil
}
