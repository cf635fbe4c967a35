package service

import "errors"

// Validation errors. Handlers map these to 400.
var (
	ErrNoDebts         = errors.New("no debts provided")
	ErrTooManyDebts    = errors.New("too many debts")
	ErrDuplicateDebtID = errors.New("duplicate debt id")
	ErrInvalidStrategy = errors.New("invalid strategy")
	ErrInvalidBudget   = errors.New("invalid monthly budget")
	ErrInvalidInput    = errors.New("invalid input")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNoDebts, ErrTooManyDebts, ErrDuplicateDebtID,
		ErrInvalidStrategy, ErrInvalidBudget, ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
