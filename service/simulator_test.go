package service

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"debt-planner/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

func fixedOptions() SimulationOptions {
	opts := DefaultSimulationOptions
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func scenarioDebts() []domain.DebtRecord {
	return []domain.DebtRecord{
		{ID: "A", Name: "Credit card", Balance: 5000, InterestRate: 20, MinimumPayment: 100},
		{ID: "B", Name: "Car loan", Balance: 2000, InterestRate: 10, MinimumPayment: 50},
	}
}

func snapshot(entry domain.MonthlyLedgerEntry, id string) (domain.DebtSnapshot, bool) {
	for _, s := range entry.Debts {
		if s.ID == id {
			return s, true
		}
	}
	return domain.DebtSnapshot{}, false
}

func TestSimulate_AvalancheScenario(t *testing.T) {
	plan := SimulateWithOptions(scenarioDebts(), 1000, domain.Avalanche, fixedOptions())

	assert.Equal(t, domain.Avalanche, plan.Strategy)
	assert.Equal(t, []string{"A", "B"}, plan.Order)
	assert.Equal(t, 8, plan.MonthsToPayoff)
	assert.InDelta(t, 388.91, plan.TotalInterest, 0.02)
	assert.Equal(t, 6, plan.PayoffMonth("A"))
	assert.Equal(t, 8, plan.PayoffMonth("B"))
	assert.False(t, plan.Capped)
	assert.Empty(t, plan.Issues)
	assert.Equal(t, time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC), plan.PayoffDate)
}

func TestSimulate_AvalancheBeatsSnowballOnInterest(t *testing.T) {
	avalanche := SimulateWithOptions(scenarioDebts(), 1000, domain.Avalanche, fixedOptions())
	snowball := SimulateWithOptions(scenarioDebts(), 1000, domain.Snowball, fixedOptions())

	assert.Less(t, avalanche.PayoffMonth("A"), avalanche.PayoffMonth("B"))
	assert.Less(t, avalanche.TotalInterest, snowball.TotalInterest)
	assert.InDelta(t, 476.05, snowball.TotalInterest, 0.02)
}

// Minimums cover each debt's monthly interest plus 1% of principal, so no
// plan is capped and the budget always exceeds the sum of minimums.
func TestSimulate_AvalancheNeverCostsMoreThanSnowball(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))

	for trial := 0; trial < 200; trial++ {
		debts := make([]domain.DebtRecord, 2+rng.IntN(5))
		minimums := 0.0
		for i := range debts {
			balance := RoundCents(100 + rng.Float64()*19900)
			rate := RoundCents(rng.Float64() * 35)
			minimum := RoundCents(balance*rate/1200+balance*0.01) + 1
			debts[i] = domain.DebtRecord{
				ID:             fmt.Sprintf("d%d", i),
				Balance:        balance,
				InterestRate:   rate,
				MinimumPayment: minimum,
			}
			minimums += minimum
		}
		budget := minimums + 1 + rng.Float64()*1500

		avalanche := SimulateWithOptions(debts, budget, domain.Avalanche, fixedOptions())
		snowball := SimulateWithOptions(debts, budget, domain.Snowball, fixedOptions())
		require.False(t, avalanche.Capped, "trial %d", trial)
		require.False(t, snowball.Capped, "trial %d", trial)

		assert.LessOrEqual(t, avalanche.TotalInterest, snowball.TotalInterest+0.01,
			"trial %d: debts=%+v budget=%.2f", trial, debts, budget)
	}
}

func TestSimulate_AvalancheSurplusGoesToHighestRate(t *testing.T) {
	plan := SimulateWithOptions(scenarioDebts(), 1000, domain.Avalanche, fixedOptions())
	paidOffA := plan.PayoffMonth("A")
	require.Positive(t, paidOffA)

	for _, entry := range plan.Schedule[:paidOffA-1] {
		b, ok := snapshot(entry, "B")
		require.True(t, ok)
		assert.Equal(t, 50.0, b.Payment, "month %d: B must only get its minimum while A is open", entry.Month)
	}
}

func TestSimulate_SnowballPaysSmallestFirst(t *testing.T) {
	plan := SimulateWithOptions(scenarioDebts(), 1000, domain.Snowball, fixedOptions())

	assert.Equal(t, []string{"B", "A"}, plan.Order)
	assert.LessOrEqual(t, plan.PayoffMonth("B"), plan.PayoffMonth("A"))
	assert.Equal(t, 3, plan.PayoffMonth("B"))
}

func TestSimulate_ScheduleConsistency(t *testing.T) {
	sets := [][]domain.DebtRecord{
		scenarioDebts(),
		{
			{ID: "x", Balance: 12000, InterestRate: 7.5, MinimumPayment: 240},
			{ID: "y", Balance: 350, InterestRate: 29.99, MinimumPayment: 25},
			{ID: "z", Balance: 4100, InterestRate: 0, MinimumPayment: 60},
		},
		{
			{ID: "solo", Balance: 999.99, InterestRate: 18.99, MinimumPayment: 35},
		},
	}
	for _, debts := range sets {
		for _, strategy := range domain.Strategies {
			budget := TotalMinimumPayment(debts) + 125
			plan := SimulateWithOptions(debts, budget, strategy, fixedOptions())

			require.False(t, plan.Capped, strategy)
			require.LessOrEqual(t, plan.MonthsToPayoff, SafetyCapMonths)
			require.Len(t, plan.Schedule, plan.MonthsToPayoff)
			assert.Equal(t, 0.0, plan.Schedule[len(plan.Schedule)-1].RemainingBalance)

			interest := 0.0
			prev := map[string]float64{}
			for _, d := range debts {
				prev[d.ID] = d.Balance
			}
			for i, entry := range plan.Schedule {
				assert.Equal(t, i+1, entry.Month)
				assert.GreaterOrEqual(t, entry.RemainingBalance, 0.0)
				interest += entry.InterestPaid
				for _, s := range entry.Debts {
					assert.GreaterOrEqual(t, s.Balance, 0.0)
					assert.LessOrEqual(t, s.Balance, prev[s.ID]+0.005, "balance of %s grew in month %d", s.ID, entry.Month)
					prev[s.ID] = s.Balance
				}
			}
			assert.InDelta(t, plan.TotalInterest, interest, 0.01*float64(len(plan.Schedule)))
		}
	}
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	debts := scenarioDebts()
	before := append([]domain.DebtRecord(nil), debts...)

	SimulateWithOptions(debts, 1000, domain.Snowball, fixedOptions())

	if diff := cmp.Diff(before, debts); diff != "" {
		t.Fatalf("input debts changed (-before +after):\n%s", diff)
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	first := SimulateWithOptions(scenarioDebts(), 1000, domain.Hybrid, fixedOptions())
	second := SimulateWithOptions(scenarioDebts(), 1000, domain.Hybrid, fixedOptions())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated simulation differs (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulate_CapDivergesFromClosedForm(t *testing.T) {
	debts := []domain.DebtRecord{{ID: "x", Balance: 10000, InterestRate: 24, MinimumPayment: 10}}

	plan := SimulateWithOptions(debts, 10, domain.Avalanche, fixedOptions())
	assert.True(t, plan.Capped)
	assert.Equal(t, SafetyCapMonths, plan.MonthsToPayoff)
	assert.Len(t, plan.Schedule, SafetyCapMonths)
	assert.True(t, domain.HasIssue(plan.Issues, domain.IssueSafetyCapReached))
	assert.Equal(t, 0, plan.PayoffMonth("x"))

	assert.True(t, math.IsInf(EstimateMonths(10000, 10, 24), 1))
}

func TestSimulate_ShortfallStarvesLowerPriority(t *testing.T) {
	plan := SimulateWithOptions(scenarioDebts(), 120, domain.Avalanche, fixedOptions())

	assert.True(t, domain.HasIssue(plan.Issues, domain.IssueBudgetBelowMinimums))
	first := plan.Schedule[0]
	a, _ := snapshot(first, "A")
	b, _ := snapshot(first, "B")
	assert.Equal(t, 100.0, a.Payment)
	assert.Equal(t, 20.0, b.Payment)
	assert.Equal(t, 121, plan.MonthsToPayoff)
}

func TestSimulate_ExtraCascadesWhenTopDebtCloses(t *testing.T) {
	debts := []domain.DebtRecord{
		{ID: "tiny", Balance: 100, InterestRate: 0, MinimumPayment: 10},
		{ID: "big", Balance: 1000, InterestRate: 0, MinimumPayment: 10},
	}
	plan := SimulateWithOptions(debts, 500, domain.Snowball, fixedOptions())

	first := plan.Schedule[0]
	tiny, _ := snapshot(first, "tiny")
	big, _ := snapshot(first, "big")
	assert.Equal(t, 100.0, tiny.Payment)
	assert.Equal(t, 0.0, tiny.Balance)
	assert.Equal(t, 400.0, big.Payment, "leftover after closing tiny rolls to the next debt")
	assert.Equal(t, 600.0, big.Balance)
	assert.Equal(t, 3, plan.MonthsToPayoff)
}

func TestSimulate_ClampsInvalidInput(t *testing.T) {
	debts := []domain.DebtRecord{
		{ID: "neg", Balance: -50, InterestRate: -3, MinimumPayment: -1},
		{ID: "nan", Balance: math.NaN(), InterestRate: 10, MinimumPayment: 10},
		{ID: "ok", Balance: 300, InterestRate: 0, MinimumPayment: 100},
	}
	plan := SimulateWithOptions(debts, -20, domain.Strategy("bogus"), fixedOptions())

	assert.Equal(t, domain.Avalanche, plan.Strategy)
	for _, code := range []domain.IssueCode{
		domain.IssueNegativeBalance, domain.IssueNegativeInterestRate, domain.IssueNegativeMinimumPayment,
		domain.IssueNonFiniteValue, domain.IssueNegativeBudget, domain.IssueUnknownStrategy,
		domain.IssueBudgetBelowMinimums, domain.IssueSafetyCapReached,
	} {
		assert.True(t, domain.HasIssue(plan.Issues, code), code)
	}
	assert.Equal(t, []string{"ok"}, plan.Order)
}

func TestSimulate_NothingOwed(t *testing.T) {
	plan := SimulateWithOptions([]domain.DebtRecord{{ID: "a", Balance: 0}}, 100, domain.Avalanche, fixedOptions())

	assert.Equal(t, 0, plan.MonthsToPayoff)
	assert.Empty(t, plan.Schedule)
	assert.Equal(t, 0.0, plan.TotalInterest)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), plan.PayoffDate)
}

func TestSimulate_SummaryOnlyMatchesFullRun(t *testing.T) {
	opts := fixedOptions()
	full := SimulateWithOptions(scenarioDebts(), 1000, domain.Avalanche, opts)
	opts.SummaryOnly = true
	summary := SimulateWithOptions(scenarioDebts(), 1000, domain.Avalanche, opts)

	assert.Empty(t, summary.Schedule)
	assert.Equal(t, full.Summary(), summary.Summary())
}
