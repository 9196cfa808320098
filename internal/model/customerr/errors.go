package customerr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount          = errors.New("amount must be a positive number")
	ErrNothingToDelete        = errors.New("no expenses to delete")
	ErrPersistenceUnavailable = errors.New("state storage unavailable")
)

type InsufficientBalanceError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: %s left, %s requested", e.Balance.StringFixed(2), e.Amount.StringFixed(2))
}

// Persistence wraps a storage failure so that it matches ErrPersistenceUnavailable.
func Persistence(err error, msg string) error {
	return errors.Wrap(&persistenceError{cause: err}, msg)
}

type persistenceError struct {
	cause error
}

func (e *persistenceError) Error() string {
	return ErrPersistenceUnavailable.Error() + ": " + e.cause.Error()
}

func (e *persistenceError) Unwrap() error {
	return e.cause
}

func (e *persistenceError) Is(target error) bool {
	return target == ErrPersistenceUnavailable
}
