package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// Ledger operation errors. These are expected business outcomes, not fatal
// conditions; services return them (possibly wrapped with context) so that
// handlers can branch with errors.Is.

// ErrInvalidAmount indicates a non-positive amount was supplied to a ledger operation.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrAccountNotFound indicates a referenced account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrReserveNotFound indicates no reserve account exists for the requested currency.
var ErrReserveNotFound = errors.New("reserve account not found for currency")

// ErrInsufficientFunds indicates the source account balance cannot cover the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrExchangeRateMissing indicates no rate is stored for the ordered currency pair.
var ErrExchangeRateMissing = errors.New("exchange rate not found for currency pair")

// ErrUserNotFound indicates a referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrPersistenceFailure indicates the atomic unit could not commit. The
// operation left no partial state behind; callers may retry, but retries are
// not deduplicated.
var ErrPersistenceFailure = errors.New("operation could not be committed")
