package service

import (
	"context"
	"time"

	"debt-planner/domain"

	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Save(ctx context.Context, record domain.PlanRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPlanRepository) Recent(ctx context.Context, limit int) ([]domain.PlanRecord, error) {
	args := m.Called(ctx, limit)
	if records := args.Get(0); records != nil {
		return records.([]domain.PlanRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) ListByUser(ctx context.Context, userID string) ([]domain.DebtRecord, error) {
	args := m.Called(ctx, userID)
	if debts := args.Get(0); debts != nil {
		return debts.([]domain.DebtRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDebtRepository) Get(ctx context.Context, userID, debtID string) (domain.DebtRecord, error) {
	args := m.Called(ctx, userID, debtID)
	return args.Get(0).(domain.DebtRecord), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, userID string, debt domain.DebtRecord) (domain.DebtRecord, error) {
	args := m.Called(ctx, userID, debt)
	return args.Get(0).(domain.DebtRecord), args.Error(1)
}

func (m *MockDebtRepository) Delete(ctx context.Context, userID, debtID string) error {
	args := m.Called(ctx, userID, debtID)
	return args.Error(0)
}

type stubCompleter struct {
	reply  string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, _ string, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}
