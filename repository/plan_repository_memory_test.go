package repository

import (
	"context"
	"fmt"
	"testing"

	"debt-planner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepositoryMemory_RecentNewestFirst(t *testing.T) {
	repo := NewPlanRepositoryMemory()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Save(ctx, domain.PlanRecord{ID: fmt.Sprintf("p%d", i)}))
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "p3", recent[0].ID)
	assert.Equal(t, "p2", recent[1].ID)

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPlanRepositoryMemory_Capacity(t *testing.T) {
	repo := NewPlanRepositoryMemory()
	repo.capacity = 2
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, domain.PlanRecord{ID: fmt.Sprintf("p%d", i)}))
	}
	all, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p5", all[0].ID)
	assert.Equal(t, "p4", all[1].ID)
}
