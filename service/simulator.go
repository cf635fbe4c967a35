package service

import (
	"math"
	"time"

	"debt-planner/domain"
)

// dust is the per-debt residue left by float subtraction that still counts as paid.
const dust = 1e-9

type SimulationOptions struct {
	HybridWeights domain.HybridWeights
	MaxMonths     int
	Epsilon       float64
	// Now anchors PayoffDate. Only the calendar date is used.
	Now func() time.Time
	// SummaryOnly skips the schedule and per-debt payoffs. Used by searches
	// that only need MonthsToPayoff and TotalInterest.
	SummaryOnly bool
}

var DefaultSimulationOptions = SimulationOptions{
	HybridWeights: domain.DefaultHybridWeights,
	MaxMonths:     SafetyCapMonths,
	Epsilon:       BalanceEpsilon,
	Now:           time.Now,
}

// Simulate runs the month-by-month payoff with default options.
func Simulate(debts []domain.DebtRecord, monthlyBudget float64, strategy domain.Strategy) domain.PayoffPlan {
	return SimulateWithOptions(debts, monthlyBudget, strategy, DefaultSimulationOptions)
}

type workingDebt struct {
	record  domain.DebtRecord
	balance float64
	paidOff int
}

// SimulateWithOptions never mutates debts. Invalid inputs are clamped and
// reported in PayoffPlan.Issues; the result is always displayable.
func SimulateWithOptions(debts []domain.DebtRecord, monthlyBudget float64, strategy domain.Strategy, opts SimulationOptions) domain.PayoffPlan {
	opts = withDefaults(opts)

	var issues []domain.ValidationIssue
	if !strategy.Valid() {
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueUnknownStrategy, Field: "strategy"})
		strategy = domain.Avalanche
	}

	clean, debtIssues := sanitizeDebts(debts)
	issues = append(issues, debtIssues...)

	budget, budgetIssue := sanitizeBudget(monthlyBudget)
	if budgetIssue != nil {
		issues = append(issues, *budgetIssue)
	}
	if budget < TotalMinimumPayment(clean) {
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueBudgetBelowMinimums, Field: "monthlyBudget"})
	}

	ordered := OrderDebts(clean, strategy, opts.HybridWeights)
	work := make([]*workingDebt, len(ordered))
	order := make([]string, len(ordered))
	for i, d := range ordered {
		work[i] = &workingDebt{record: d, balance: d.Balance}
		order[i] = d.ID
	}

	plan := domain.PayoffPlan{
		Strategy:       strategy,
		MonthlyPayment: RoundCents(budget),
		Order:          order,
		Schedule:       []domain.MonthlyLedgerEntry{},
	}

	remaining := totalBalance(work)
	totalInterest := 0.0
	month := 0

	for remaining > 0 && month < opts.MaxMonths {
		month++
		available := budget
		monthInterest := 0.0
		monthPrincipal := 0.0
		payments := make([]float64, len(work))

		for i, w := range work {
			if w.balance <= 0 {
				continue
			}
			interest := w.balance * (w.record.InterestRate / 100 / 12)
			payment := math.Min(w.balance+interest, w.record.MinimumPayment)
			if available < payment {
				payment = available
			}
			principal := math.Max(0, payment-interest)
			if principal > w.balance {
				principal = w.balance
			}
			w.balance -= principal
			if w.balance < dust {
				w.balance = 0
			}
			available -= payment
			payments[i] += payment
			monthInterest += interest
			monthPrincipal += principal
		}

		// Remainder goes to the top-priority open debt. It only reaches the
		// next debt once the one above it is zeroed.
		for i, w := range work {
			if available <= 0 {
				break
			}
			if w.balance <= 0 {
				continue
			}
			extra := math.Min(w.balance, available)
			w.balance -= extra
			if w.balance < dust {
				w.balance = 0
			}
			available -= extra
			payments[i] += extra
			monthPrincipal += extra
		}

		remaining = totalBalance(work)
		if remaining < opts.Epsilon {
			for _, w := range work {
				w.balance = 0
			}
			remaining = 0
		}

		for _, w := range work {
			if w.paidOff == 0 && w.balance <= 0 {
				w.paidOff = month
			}
		}

		totalInterest += monthInterest
		if !opts.SummaryOnly {
			plan.Schedule = append(plan.Schedule, ledgerEntry(month, remaining, monthInterest, monthPrincipal, work, payments))
		}
	}

	plan.MonthsToPayoff = month
	plan.TotalInterest = RoundCents(totalInterest)
	plan.PayoffDate = PayoffDate(month, today(opts.Now))
	if remaining > 0 {
		plan.Capped = true
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueSafetyCapReached})
	}

	if !opts.SummaryOnly {
		plan.Payoffs = make([]domain.DebtPayoff, len(work))
		for i, w := range work {
			plan.Payoffs[i] = domain.DebtPayoff{ID: w.record.ID, Name: w.record.Name, Month: w.paidOff}
		}
	}
	plan.Issues = issues
	return plan
}

func ledgerEntry(month int, remaining, interest, principal float64, work []*workingDebt, payments []float64) domain.MonthlyLedgerEntry {
	snaps := make([]domain.DebtSnapshot, 0, len(work))
	for i, w := range work {
		if payments[i] == 0 && w.paidOff != 0 && w.paidOff < month {
			continue
		}
		snaps = append(snaps, domain.DebtSnapshot{
			ID:      w.record.ID,
			Payment: RoundCents(payments[i]),
			Balance: RoundCents(w.balance),
		})
	}
	return domain.MonthlyLedgerEntry{
		Month:            month,
		RemainingBalance: RoundCents(math.Max(0, remaining)),
		InterestPaid:     RoundCents(interest),
		PrincipalPaid:    RoundCents(principal),
		Debts:            snaps,
	}
}

func sanitizeDebts(debts []domain.DebtRecord) ([]domain.DebtRecord, []domain.ValidationIssue) {
	var issues []domain.ValidationIssue
	out := make([]domain.DebtRecord, len(debts))
	for i, d := range debts {
		d.Balance = clampNonNegative(d.Balance, "balance", d.ID, domain.IssueNegativeBalance, &issues)
		d.InterestRate = clampNonNegative(d.InterestRate, "interestRate", d.ID, domain.IssueNegativeInterestRate, &issues)
		d.MinimumPayment = clampNonNegative(d.MinimumPayment, "minimumPayment", d.ID, domain.IssueNegativeMinimumPayment, &issues)
		out[i] = d
	}
	return out, issues
}

func clampNonNegative(v float64, field, debtID string, negCode domain.IssueCode, issues *[]domain.ValidationIssue) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		*issues = append(*issues, domain.ValidationIssue{Code: domain.IssueNonFiniteValue, Field: field, DebtID: debtID})
		return 0
	case v < 0:
		*issues = append(*issues, domain.ValidationIssue{Code: negCode, Field: field, DebtID: debtID})
		return 0
	}
	return v
}

func sanitizeBudget(budget float64) (float64, *domain.ValidationIssue) {
	switch {
	case math.IsNaN(budget) || math.IsInf(budget, 0):
		return 0, &domain.ValidationIssue{Code: domain.IssueNonFiniteValue, Field: "monthlyBudget"}
	case budget < 0:
		return 0, &domain.ValidationIssue{Code: domain.IssueNegativeBudget, Field: "monthlyBudget"}
	}
	return budget, nil
}

func totalBalance(work []*workingDebt) float64 {
	total := 0.0
	for _, w := range work {
		total += w.balance
	}
	return total
}

func today(now func() time.Time) time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func withDefaults(opts SimulationOptions) SimulationOptions {
	if opts.MaxMonths <= 0 {
		opts.MaxMonths = SafetyCapMonths
	}
	if !(opts.Epsilon > 0) {
		opts.Epsilon = BalanceEpsilon
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HybridWeights == (domain.HybridWeights{}) {
		opts.HybridWeights = domain.DefaultHybridWeights
	}
	return opts
}
