package service

import (
	"context"
	"fmt"
	"strings"

	"debt-planner/domain"

	log "github.com/sirupsen/logrus"
)

const advisorSystemPrompt = "You are a personal finance coach. Explain debt payoff plans in plain, " +
	"encouraging language. Be specific with the numbers you are given and never invent new ones."

// Completer sends one prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// AdvisorService writes a short explanation of a plan. Without a Completer,
// or when the model call fails, it returns a deterministic summary.
type AdvisorService struct {
	completer Completer
}

func NewAdvisorService(completer Completer) *AdvisorService {
	return &AdvisorService{completer: completer}
}

func (s *AdvisorService) Enabled() bool {
	return s != nil && s.completer != nil
}

func (s *AdvisorService) ExplainPlan(ctx context.Context, plan domain.PayoffPlan, debts []domain.DebtRecord) string {
	if !s.Enabled() {
		return fallbackPlanExplanation(plan)
	}

	prompt := fmt.Sprintf(`Explain this debt payoff plan.

STRATEGY: %s
%s

SUMMARY:
- Total debt: $%.2f
- Monthly budget: $%.2f
- Total interest: $%.2f
- Months to payoff: %s

DEBTS (in payoff order):
%s
Write 3-4 sentences: how the strategy works, why the order makes sense, and one practical tip to stay on track.`,
		strategyName(plan.Strategy), strategyDescription(plan.Strategy),
		TotalDebt(debts), plan.MonthlyPayment, plan.TotalInterest, monthsText(plan),
		formatDebts(plan, debts))

	explanation, err := s.completer.Complete(ctx, advisorSystemPrompt, prompt)
	if err != nil {
		log.WithError(err).WithField("strategy", plan.Strategy).Warn("advisor call failed, using fallback explanation")
		return fallbackPlanExplanation(plan)
	}
	return strings.TrimSpace(explanation)
}

func (s *AdvisorService) ExplainComparison(ctx context.Context, cmp domain.Comparison, debts []domain.DebtRecord) string {
	if !s.Enabled() {
		return fallbackComparisonExplanation(cmp)
	}

	var lines strings.Builder
	for _, sum := range cmp.Summaries {
		fmt.Fprintf(&lines, "- %s: $%.2f interest, %d months\n", strategyName(sum.Strategy), sum.TotalInterest, sum.MonthsToPayoff)
	}

	prompt := fmt.Sprintf(`Compare these debt payoff strategies for the same debts and budget.

TOTAL DEBT: $%.2f
RESULTS:
%s
RECOMMENDED: %s, saving $%.2f and %d months versus the snowball method.

Write 3-4 sentences explaining the trade-off between paying the smallest balances first and paying the highest rates first, and why the recommended strategy fits.`,
		TotalDebt(debts), lines.String(), strategyName(cmp.Best.Strategy), cmp.InterestSaved, cmp.MonthsSaved)

	explanation, err := s.completer.Complete(ctx, advisorSystemPrompt, prompt)
	if err != nil {
		log.WithError(err).Warn("advisor call failed, using fallback comparison")
		return fallbackComparisonExplanation(cmp)
	}
	return strings.TrimSpace(explanation)
}

func fallbackPlanExplanation(plan domain.PayoffPlan) string {
	if plan.Capped {
		return fmt.Sprintf("With a monthly budget of $%.2f the %s strategy does not pay off your debts within %d years. "+
			"Your payments barely cover the interest, so increasing the budget is the most effective next step.",
			plan.MonthlyPayment, strategyName(plan.Strategy), SafetyCapMonths/12)
	}
	return fmt.Sprintf("With the %s strategy you will pay $%.2f in interest and be debt-free in %d months (%.1f years). %s",
		strategyName(plan.Strategy), plan.TotalInterest, plan.MonthsToPayoff, float64(plan.MonthsToPayoff)/12.0,
		strategyTip(plan.Strategy))
}

func fallbackComparisonExplanation(cmp domain.Comparison) string {
	if cmp.InterestSaved <= 0 && cmp.MonthsSaved <= 0 {
		return fmt.Sprintf("All strategies cost about the same for these debts. %s is a good choice.", strategyName(cmp.Best.Strategy))
	}
	return fmt.Sprintf("The %s strategy saves $%.2f in interest and %d months compared with the snowball method. %s",
		strategyName(cmp.Best.Strategy), cmp.InterestSaved, cmp.MonthsSaved, strategyTip(cmp.Best.Strategy))
}

func strategyName(s domain.Strategy) string {
	switch s {
	case domain.Snowball:
		return "Snowball"
	case domain.Hybrid:
		return "Hybrid"
	default:
		return "Avalanche"
	}
}

func strategyDescription(s domain.Strategy) string {
	switch s {
	case domain.Snowball:
		return "Pays the smallest balance first for quick wins and motivation."
	case domain.Hybrid:
		return "Blends interest rate and balance size to pick the next target."
	default:
		return "Pays the highest interest rate first, minimizing total interest."
	}
}

func strategyTip(s domain.Strategy) string {
	switch s {
	case domain.Snowball:
		return "Each closed account frees up its minimum payment for the next one, so momentum builds quickly."
	case domain.Hybrid:
		return "Revisit the plan when balances change, the best next target can shift."
	default:
		return "Stick with it even when progress feels slow at first; the interest savings compound."
	}
}

func monthsText(plan domain.PayoffPlan) string {
	if plan.Capped {
		return "never (budget does not outpace interest)"
	}
	return fmt.Sprintf("%d (%.1f years)", plan.MonthsToPayoff, float64(plan.MonthsToPayoff)/12.0)
}

func formatDebts(plan domain.PayoffPlan, debts []domain.DebtRecord) string {
	byID := make(map[string]domain.DebtRecord, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
	}
	var b strings.Builder
	for _, id := range plan.Order {
		d := byID[id]
		name := d.Name
		if name == "" {
			name = d.ID
		}
		fmt.Fprintf(&b, "- %s: $%.2f at %.2f%% APR, paid off in month %d\n", name, d.Balance, d.InterestRate, plan.PayoffMonth(id))
	}
	return b.String()
}
