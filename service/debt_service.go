package service

import (
	"context"
	"fmt"
	"strings"

	"debt-planner/domain"
	"debt-planner/repository"
)

// DebtService manages a user's stored debts.
type DebtService struct {
	repo     repository.DebtRepository
	maxDebts int
}

func NewDebtService(repo repository.DebtRepository, maxDebts int) *DebtService {
	if maxDebts <= 0 {
		maxDebts = MaxDebtsPerRequest
	}
	return &DebtService{repo: repo, maxDebts: maxDebts}
}

func (s *DebtService) List(ctx context.Context, userID string) ([]domain.DebtRecord, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *DebtService) Get(ctx context.Context, userID, debtID string) (domain.DebtRecord, error) {
	if err := checkUserID(userID); err != nil {
		return domain.DebtRecord{}, err
	}
	return s.repo.Get(ctx, userID, debtID)
}

// Save stores a debt. Stored debts must be valid as entered; clamping only
// happens at simulation time.
func (s *DebtService) Save(ctx context.Context, userID string, debt domain.DebtRecord) (domain.DebtRecord, error) {
	if err := checkUserID(userID); err != nil {
		return domain.DebtRecord{}, err
	}
	debt.Name = strings.TrimSpace(debt.Name)
	if err := checkAmount("balance", debt.Balance); err != nil {
		return domain.DebtRecord{}, err
	}
	if err := checkRate(debt.InterestRate); err != nil {
		return domain.DebtRecord{}, err
	}
	if err := checkAmount("minimumPayment", debt.MinimumPayment); err != nil {
		return domain.DebtRecord{}, err
	}

	if debt.ID == "" {
		existing, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return domain.DebtRecord{}, err
		}
		if len(existing) >= s.maxDebts {
			return domain.DebtRecord{}, fmt.Errorf("%w: a user may store at most %d debts", ErrTooManyDebts, s.maxDebts)
		}
	}
	return s.repo.Save(ctx, userID, debt)
}

func (s *DebtService) Delete(ctx context.Context, userID, debtID string) error {
	if err := checkUserID(userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, debtID)
}

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return nil
}
