package domain

import "time"

type PlanInput struct {
	Debts         []DebtRecord   `json:"debts"`
	MonthlyBudget float64        `json:"monthlyBudget"`
	Strategy      Strategy       `json:"strategy"`
	HybridWeights *HybridWeights `json:"hybridWeights,omitempty"`
	Explain       bool           `json:"explain,omitempty"`
}

// DebtSnapshot is one debt's state at the end of a simulated month.
type DebtSnapshot struct {
	ID      string  `json:"id"`
	Payment float64 `json:"payment"`
	Balance float64 `json:"balance"`
}

type MonthlyLedgerEntry struct {
	Month            int            `json:"month"`
	RemainingBalance float64        `json:"remainingBalance"`
	InterestPaid     float64        `json:"interestPaid"`
	PrincipalPaid    float64        `json:"principalPaid"`
	Debts            []DebtSnapshot `json:"debts,omitempty"`
}

// DebtPayoff records the month a debt reached zero. Month is 0 when the
// debt was still open at the end of the simulation.
type DebtPayoff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Month int    `json:"month"`
}

type PayoffPlan struct {
	Strategy       Strategy             `json:"strategy"`
	MonthlyPayment float64              `json:"monthlyPayment"`
	MonthsToPayoff int                  `json:"monthsToPayoff"`
	TotalInterest  float64              `json:"totalInterest"`
	PayoffDate     time.Time            `json:"payoffDate"`
	Schedule       []MonthlyLedgerEntry `json:"schedule"`
	Order          []string             `json:"order"`
	Payoffs        []DebtPayoff         `json:"payoffs"`
	// Capped is set when the safety cap was reached with balance remaining.
	// MonthsToPayoff then means "effectively never".
	Capped      bool              `json:"capped"`
	Issues      []ValidationIssue `json:"issues,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

// PayoffMonth returns the month the debt with the given id was paid off,
// or 0 if it never was.
func (p PayoffPlan) PayoffMonth(id string) int {
	for _, po := range p.Payoffs {
		if po.ID == id {
			return po.Month
		}
	}
	return 0
}

type StrategySummary struct {
	Strategy       Strategy  `json:"strategy"`
	TotalInterest  float64   `json:"totalInterest"`
	MonthsToPayoff int       `json:"monthsToPayoff"`
	PayoffDate     time.Time `json:"payoffDate"`
	Capped         bool      `json:"capped"`
}

func (p PayoffPlan) Summary() StrategySummary {
	return StrategySummary{
		Strategy:       p.Strategy,
		TotalInterest:  p.TotalInterest,
		MonthsToPayoff: p.MonthsToPayoff,
		PayoffDate:     p.PayoffDate,
		Capped:         p.Capped,
	}
}

// Comparison holds every strategy's outcome for the same debts and budget.
// Savings are measured against the snowball baseline.
type Comparison struct {
	Best          PayoffPlan        `json:"best"`
	Summaries     []StrategySummary `json:"summaries"`
	InterestSaved float64           `json:"interestSaved"`
	MonthsSaved   int               `json:"monthsSaved"`
	Explanation   string            `json:"explanation,omitempty"`
}

// PlanRecord is a stored summary of a simulated plan.
type PlanRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	DebtCount int             `json:"debtCount"`
	Budget    float64         `json:"monthlyBudget"`
	Summary   StrategySummary `json:"summary"`
}
