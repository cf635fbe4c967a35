package repository

import (
	"context"
	"sync"

	"debt-planner/domain"

	"github.com/google/uuid"
)

// DebtRepositoryMemory keeps debts per user in insertion order.
type DebtRepositoryMemory struct {
	mu    sync.RWMutex
	users map[string][]domain.DebtRecord
}

func NewDebtRepositoryMemory() *DebtRepositoryMemory {
	return &DebtRepositoryMemory{users: make(map[string][]domain.DebtRecord)}
}

func (r *DebtRepositoryMemory) ListByUser(_ context.Context, userID string) ([]domain.DebtRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	debts := r.users[userID]
	out := make([]domain.DebtRecord, len(debts))
	copy(out, debts)
	return out, nil
}

func (r *DebtRepositoryMemory) Get(_ context.Context, userID, debtID string) (domain.DebtRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.users[userID] {
		if d.ID == debtID {
			return d, nil
		}
	}
	return domain.DebtRecord{}, ErrDebtNotFound
}

func (r *DebtRepositoryMemory) Save(_ context.Context, userID string, debt domain.DebtRecord) (domain.DebtRecord, error) {
	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	debts := r.users[userID]
	for i := range debts {
		if debts[i].ID == debt.ID {
			debts[i] = debt
			return debt, nil
		}
	}
	r.users[userID] = append(debts, debt)
	return debt, nil
}

func (r *DebtRepositoryMemory) Delete(_ context.Context, userID, debtID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	debts := r.users[userID]
	for i := range debts {
		if debts[i].ID == debtID {
			r.users[userID] = append(debts[:i:i], debts[i+1:]...)
			return nil
		}
	}
	return ErrDebtNotFound
}
