package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that an account balance cannot cover the
// requested debit. It is a declined business outcome, not a system fault.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrTimeout indicates that an operation could not acquire the locks it
// needed within its bounded wait.
var ErrTimeout = errors.New("operation timed out")

// ErrUnauthorized indicates failed authentication (bad card number, PIN or token).
var ErrUnauthorized = errors.New("unauthorized")
