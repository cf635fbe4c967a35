package repository

import (
	"context"
	"testing"

	"debt-planner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtRepositoryMemory(t *testing.T) {
	repo := NewDebtRepositoryMemory()
	ctx := context.Background()

	a, err := repo.Save(ctx, "alice", domain.DebtRecord{Name: "Visa", Balance: 900, InterestRate: 21, MinimumPayment: 30})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	_, err = repo.Save(ctx, "alice", domain.DebtRecord{ID: "car", Name: "Car", Balance: 8000, InterestRate: 6, MinimumPayment: 220})
	require.NoError(t, err)
	_, err = repo.Save(ctx, "bob", domain.DebtRecord{ID: "car", Name: "Bob's car", Balance: 3000})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "car", list[1].ID)

	a.Balance = 850
	_, err = repo.Save(ctx, "alice", a)
	require.NoError(t, err)
	got, err := repo.Get(ctx, "alice", a.ID)
	require.NoError(t, err)
	assert.Equal(t, 850.0, got.Balance)

	bobCar, err := repo.Get(ctx, "bob", "car")
	require.NoError(t, err)
	assert.Equal(t, "Bob's car", bobCar.Name)

	require.NoError(t, repo.Delete(ctx, "alice", "car"))
	assert.ErrorIs(t, repo.Delete(ctx, "alice", "car"), ErrDebtNotFound)
	_, err = repo.Get(ctx, "carol", "car")
	assert.ErrorIs(t, err, ErrDebtNotFound)

	list, err = repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDebtRepositoryMemory_ListReturnsCopy(t *testing.T) {
	repo := NewDebtRepositoryMemory()
	ctx := context.Background()
	_, err := repo.Save(ctx, "u", domain.DebtRecord{ID: "x", Balance: 10})
	require.NoError(t, err)

	list, _ := repo.ListByUser(ctx, "u")
	list[0].Balance = 999

	again, _ := repo.ListByUser(ctx, "u")
	assert.Equal(t, 10.0, again[0].Balance)
}
