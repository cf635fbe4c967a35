package service

import (
	"context"
	"testing"

	"debt-planner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendBudget_FindsSmallestBudgetForTarget(t *testing.T) {
	svc := NewBudgetRecommendationService(newTestPlanService())

	res, err := svc.RecommendBudget(context.Background(), domain.BudgetRecommendationInput{
		Debts:        scenarioDebts(),
		Strategy:     domain.Avalanche,
		TargetMonths: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Avalanche, res.Strategy)
	assert.Equal(t, 150.0, res.MinimumPaymentsTotal)
	assert.InDelta(t, 634.18, res.RecommendedBudget, 0.05)
	assert.LessOrEqual(t, res.MonthsToPayoff, 12)
	assert.NotEmpty(t, res.Reason)

	// One cent less must miss the target.
	below := SimulateWithOptions(scenarioDebts(), res.RecommendedBudget-0.01, domain.Avalanche, fixedOptions())
	assert.Greater(t, below.MonthsToPayoff, 12)
}

func TestRecommendBudget_Options(t *testing.T) {
	svc := NewBudgetRecommendationService(newTestPlanService())

	res, err := svc.RecommendBudget(context.Background(), domain.BudgetRecommendationInput{
		Debts:        scenarioDebts(),
		TargetMonths: 24,
	})
	require.NoError(t, err)
	require.Len(t, res.Options, len(StandardHorizons))

	for i, opt := range res.Options {
		assert.Equal(t, StandardHorizons[i], opt.TargetMonths)
		assert.LessOrEqual(t, opt.MonthsToPayoff, opt.TargetMonths)
		assert.GreaterOrEqual(t, opt.MonthlyBudget, res.MinimumPaymentsTotal)
		if i > 0 {
			prev := res.Options[i-1]
			assert.LessOrEqual(t, opt.MonthlyBudget, prev.MonthlyBudget, "longer horizons never need more money")
			assert.GreaterOrEqual(t, opt.TotalInterest, prev.TotalInterest)
		}
	}
	assert.Equal(t, res.RecommendedBudget, res.Options[1].MonthlyBudget)
}

func TestRecommendBudget_MinimumsAlreadyEnough(t *testing.T) {
	svc := NewBudgetRecommendationService(newTestPlanService())

	res, err := svc.RecommendBudget(context.Background(), domain.BudgetRecommendationInput{
		Debts:        scenarioDebts(),
		Strategy:     domain.Snowball,
		TargetMonths: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, res.RecommendedBudget)
	assert.Contains(t, res.Reason, "minimums")
}

func TestRecommendBudget_Validation(t *testing.T) {
	svc := NewBudgetRecommendationService(newTestPlanService())
	ctx := context.Background()

	_, err := svc.RecommendBudget(ctx, domain.BudgetRecommendationInput{TargetMonths: 12})
	assert.ErrorIs(t, err, ErrNoDebts)

	_, err = svc.RecommendBudget(ctx, domain.BudgetRecommendationInput{Debts: scenarioDebts(), TargetMonths: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecommendBudget(ctx, domain.BudgetRecommendationInput{Debts: scenarioDebts(), TargetMonths: 12, Strategy: "fast"})
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}
