package service

import (
	"context"
	"testing"

	"debt-planner/domain"
	"debt-planner/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtService_Lifecycle(t *testing.T) {
	svc := NewDebtService(repository.NewDebtRepositoryMemory(), 2)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "u1", domain.DebtRecord{Name: " Visa ", Balance: 1200, InterestRate: 19.99, MinimumPayment: 35})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Visa", saved.Name)

	got, err := svc.Get(ctx, "u1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	saved.Balance = 1100
	_, err = svc.Save(ctx, "u1", saved)
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1100.0, list[0].Balance)

	require.NoError(t, svc.Delete(ctx, "u1", saved.ID))
	_, err = svc.Get(ctx, "u1", saved.ID)
	assert.ErrorIs(t, err, repository.ErrDebtNotFound)
}

func TestDebtService_Validation(t *testing.T) {
	svc := NewDebtService(repository.NewDebtRepositoryMemory(), 1)
	ctx := context.Background()

	_, err := svc.Save(ctx, "", domain.DebtRecord{Balance: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(ctx, "u1", domain.DebtRecord{Balance: -10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(ctx, "u1", domain.DebtRecord{Balance: 10, InterestRate: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(ctx, "u1", domain.DebtRecord{Balance: 10})
	require.NoError(t, err)
	_, err = svc.Save(ctx, "u1", domain.DebtRecord{Balance: 20})
	assert.ErrorIs(t, err, ErrTooManyDebts)
}
