package errors

import (
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same business error code, so copies
// made by WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return other.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Catalogue-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrProductAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PRODUCT_ALREADY_EXISTS",
		"A product with this ID already exists",
		"",
	)

	// Customer-related errors
	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Customer not found",
		"",
	)

	ErrCustomerAlreadyExists = NewBaseError(
		http.StatusConflict,
		"CUSTOMER_ALREADY_EXISTS",
		"This username is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// Cart-related errors
	ErrCartLineNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_LINE_NOT_FOUND",
		"Product is not in the cart",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusConflict,
		"EMPTY_CART",
		"Your cart is empty",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrPaymentMismatch = NewBaseError(
		http.StatusInternalServerError,
		"PAYMENT_MISMATCH",
		"Amount paid does not match the invoice total",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Storage-related errors
	ErrStoreIO = NewBaseError(
		http.StatusInternalServerError,
		"STORE_IO_FAILED",
		"Failed to access the data store",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// StockShortage describes one cart line that the current stock cannot cover.
type StockShortage struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError is returned when at least one requested quantity exceeds stock.
type InsufficientStockError struct {
	Shortages []StockShortage
}

// NewInsufficientStockError creates an InsufficientStockError for the given shortages
func NewInsufficientStockError(shortages ...StockShortage) *InsufficientStockError {
	return &InsufficientStockError{Shortages: shortages}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return "insufficient stock: " + e.Details()
}

// HTTPCode returns the HTTP status code
func (e *InsufficientStockError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code
func (e *InsufficientStockError) ErrorCode() string {
	return "INSUFFICIENT_STOCK"
}

// Message returns the user-friendly error message
func (e *InsufficientStockError) Message() string {
	return "Not enough stock for one or more products"
}

// Details returns detailed error information
func (e *InsufficientStockError) Details() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.ProductID, s.Requested, s.Available))
	}

	return strings.Join(parts, ", ")
}

// UnresolvedCartLinesError is returned by checkout when cart lines reference
// products that no longer exist in the catalogue.
type UnresolvedCartLinesError struct {
	ProductIDs []string
}

// NewUnresolvedCartLinesError creates an UnresolvedCartLinesError naming the missing products
func NewUnresolvedCartLinesError(productIDs ...string) *UnresolvedCartLinesError {
	return &UnresolvedCartLinesError{ProductIDs: productIDs}
}

// Error implements the error interface
func (e *UnresolvedCartLinesError) Error() string {
	return "cart references unknown products: " + e.Details()
}

// HTTPCode returns the HTTP status code
func (e *UnresolvedCartLinesError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code
func (e *UnresolvedCartLinesError) ErrorCode() string {
	return "UNRESOLVED_CART_LINES"
}

// Message returns the user-friendly error message
func (e *UnresolvedCartLinesError) Message() string {
	return "Some products in your cart are no longer available"
}

// Details returns detailed error information
func (e *UnresolvedCartLinesError) Details() string {
	return strings.Join(e.ProductIDs, ", ")
}

// StoreIOError wraps a persistence read or write failure, implementing the AppError interface
type StoreIOError struct {
	err     error
	details string
}

// NewStoreIOError creates a store I/O error
func NewStoreIOError(err error, details string) AppError {
	return &StoreIOError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreIOError) Error() string {
	return errors.Wrap(e.err, "store io failed: "+e.details).Error()
}

// Unwrap exposes the underlying I/O error
func (e *StoreIOError) Unwrap() error {
	return e.err
}

// Is reports StoreIOError as matching ErrStoreIO.
func (e *StoreIOError) Is(target error) bool {
	return target == ErrStoreIO
}

// HTTPCode returns the HTTP status code
func (e *StoreIOError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StoreIOError) ErrorCode() string {
	return ErrStoreIO.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StoreIOError) Message() string {
	return ErrStoreIO.Message()
}

// Details returns detailed error information
func (e *StoreIOError) Details() string {
	return e.details
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying database error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
