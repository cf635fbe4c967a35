package service

import (
	"context"
	"fmt"

	"debt-planner/domain"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// BudgetRecommendationService finds the smallest monthly budget that clears
// a set of debts within a target horizon.
type BudgetRecommendationService struct {
	planService *PlanService
}

func NewBudgetRecommendationService(planService *PlanService) *BudgetRecommendationService {
	return &BudgetRecommendationService{planService: planService}
}

func (s *BudgetRecommendationService) RecommendBudget(
	ctx context.Context,
	input domain.BudgetRecommendationInput,
) (domain.BudgetRecommendationResult, error) {

	planInput, err := s.planService.normalize(domain.PlanInput{
		Debts:         input.Debts,
		Strategy:      input.Strategy,
		HybridWeights: input.HybridWeights,
	})
	if err != nil {
		return domain.BudgetRecommendationResult{}, err
	}
	if input.TargetMonths <= 0 || input.TargetMonths > s.planService.settings.MaxMonths {
		return domain.BudgetRecommendationResult{}, fmt.Errorf("%w: targetMonths must be between 1 and %d",
			ErrInvalidInput, s.planService.settings.MaxMonths)
	}

	opts := s.planService.options(planInput)
	opts.SummaryOnly = true
	debts, _ := sanitizeDebts(planInput.Debts)
	minimums := ceilCents(TotalMinimumPayment(debts))

	budget, plan := s.search(ctx, debts, planInput.Strategy, input.TargetMonths, minimums, opts)

	options := make([]domain.BudgetOption, 0, len(StandardHorizons))
	for _, horizon := range StandardHorizons {
		if err := ctx.Err(); err != nil {
			return domain.BudgetRecommendationResult{}, err
		}
		if horizon > s.planService.settings.MaxMonths {
			continue
		}
		b, p := s.search(ctx, debts, planInput.Strategy, horizon, minimums, opts)
		options = append(options, domain.BudgetOption{
			TargetMonths:   horizon,
			MonthlyBudget:  b,
			MonthsToPayoff: p.MonthsToPayoff,
			TotalInterest:  p.TotalInterest,
		})
	}

	log.WithFields(log.Fields{
		"strategy":     planInput.Strategy,
		"targetMonths": input.TargetMonths,
		"budget":       budget,
	}).Debug("budget recommended")

	return domain.BudgetRecommendationResult{
		Strategy:             planInput.Strategy,
		TargetMonths:         input.TargetMonths,
		RecommendedBudget:    budget,
		MinimumPaymentsTotal: minimums,
		MonthsToPayoff:       plan.MonthsToPayoff,
		TotalInterest:        plan.TotalInterest,
		Options:              options,
		Reason:               budgetReason(budget, minimums, plan, input.TargetMonths),
	}, nil
}

// search binary-searches whole cents. Budgets never drop below the sum of
// minimum payments.
func (s *BudgetRecommendationService) search(
	ctx context.Context,
	debts []domain.DebtRecord,
	strategy domain.Strategy,
	target int,
	minimums float64,
	opts SimulationOptions,
) (float64, domain.PayoffPlan) {

	fits := func(budget float64) (bool, domain.PayoffPlan) {
		p := SimulateWithOptions(debts, budget, strategy, opts)
		return !p.Capped && p.MonthsToPayoff <= target, p
	}

	if ok, p := fits(minimums); ok {
		return minimums, p
	}

	lo := decimal.NewFromFloat(minimums).Shift(2).IntPart()
	hi := decimal.NewFromFloat(payoffInOneMonth(debts)).Shift(2).Ceil().IntPart()
	if hi < lo {
		hi = lo
	}
	for lo < hi && ctx.Err() == nil {
		mid := lo + (hi-lo)/2
		if ok, _ := fits(centsToFloat(mid)); ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	budget := centsToFloat(hi)
	_, p := fits(budget)
	return budget, p
}

// payoffInOneMonth is a budget that clears every balance in the first month.
func payoffInOneMonth(debts []domain.DebtRecord) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.Balance*(1+d.InterestRate/1200) + d.MinimumPayment
	}
	return total + 0.01
}

func ceilCents(v float64) float64 {
	return decimal.NewFromFloat(v).RoundCeil(2).InexactFloat64()
}

func centsToFloat(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func budgetReason(budget, minimums float64, plan domain.PayoffPlan, target int) string {
	switch {
	case plan.MonthsToPayoff == 0:
		return "There is no outstanding balance to pay off."
	case budget <= minimums:
		return fmt.Sprintf("Paying just the minimums ($%.2f) already clears your debts in %d months, within the %d-month target.",
			minimums, plan.MonthsToPayoff, target)
	default:
		return fmt.Sprintf("A monthly budget of $%.2f ($%.2f above your minimums) clears your debts in %d months with $%.2f of interest.",
			budget, budget-minimums, plan.MonthsToPayoff, plan.TotalInterest)
	}
}
