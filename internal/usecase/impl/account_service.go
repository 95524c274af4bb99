package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

const tokenTypeBearer = "Bearer"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	customerRepo repository.CustomerRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CustomerRepo repository.CustomerRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		customerRepo: params.CustomerRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Register creates an account with a hashed password and an empty cart.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role " + role.String())
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Registering account", slog.String("username", input.Username), slog.String("role", role.String()))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	customer := entity.NewCustomer(input.Username, hash, input.Email, role)
	customer.FullName = input.FullName
	customer.Address = input.Address
	customer.PhoneNumber = input.PhoneNumber

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CustomerRepo().Create(ctx, customer); err != nil {
			if errors.Is(err, repository.ErrDuplicateCustomer) {
				return domainerrors.ErrCustomerAlreadyExists.WithDetails(customer.Username)
			}

			return errors.Wrap(err, "failed to create customer")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register")
	}

	return customer, nil
}

// Login checks the credentials and issues an access token. Accounts still holding a
// plaintext password are moved to a hash on their first successful login.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	var customer *entity.Customer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		found, err := customerRepo.FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find customer")
		}

		if srv.hasher.IsHashed(found.PasswordHash) {
			if !srv.hasher.Check(input.Password, found.PasswordHash) {
				return domainerrors.ErrInvalidCredentials
			}
			customer = found

			return nil
		}

		if subtle.ConstantTimeCompare([]byte(input.Password), []byte(found.PasswordHash)) != 1 {
			return domainerrors.ErrInvalidCredentials
		}
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		found.PasswordHash = hash
		if err := customerRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to upgrade legacy password")
		}
		logger.Info("Upgraded legacy password", slog.String("username", found.Username))
		customer = found

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			logger.Warn("Login failed", slog.String("username", input.Username))
		}

		return nil, errors.Wrap(err, "failed to login")
	}

	token, err := srv.tokenService.GenerateAccessToken(customer.Username, customer.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		Customer:    customer,
	}, nil
}

// GetProfile retrieves the account of username.
func (srv *accountService) GetProfile(ctx context.Context, username string) (*entity.Customer, error) {
	customer, err := findCustomer(ctx, srv.customerRepo, username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return customer, nil
}

// UpdateProfile changes the profile fields set on input.
func (srv *accountService) UpdateProfile(ctx context.Context, username string, input *usecase.UpdateProfileInput) (*entity.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	logger.Info("Updating profile", slog.String("username", username))

	var customer *entity.Customer

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		found, err := findCustomer(ctx, customerRepo, username)
		if err != nil {
			return err
		}

		if input.Email != nil {
			found.Email = *input.Email
		}
		if input.FullName != nil {
			found.FullName = *input.FullName
		}
		if input.Address != nil {
			found.Address = *input.Address
		}
		if input.PhoneNumber != nil {
			found.PhoneNumber = *input.PhoneNumber
		}
		if input.Password != nil {
			hash, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
			}
			found.PasswordHash = hash
		}

		if err := customerRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		customer = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return customer, nil
}
