package repository

import (
	"context"
	"errors"

	"debt-planner/domain"
)

var ErrDebtNotFound = errors.New("debt not found")

// DebtRepository persists a user's debts. Save assigns an id when the
// record has none and returns the stored record.
type DebtRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.DebtRecord, error)
	Get(ctx context.Context, userID, debtID string) (domain.DebtRecord, error)
	Save(ctx context.Context, userID string, debt domain.DebtRecord) (domain.DebtRecord, error)
	Delete(ctx context.Context, userID, debtID string) error
}
