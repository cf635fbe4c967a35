package domain

// IssueCode names an input problem the engine corrected instead of failing.
type IssueCode string

const (
	IssueNegativeBalance        IssueCode = "negative_balance"
	IssueNegativeInterestRate   IssueCode = "negative_interest_rate"
	IssueNegativeMinimumPayment IssueCode = "negative_minimum_payment"
	IssueNonFiniteValue         IssueCode = "non_finite_value"
	IssueNegativeBudget         IssueCode = "negative_budget"
	IssueBudgetBelowMinimums    IssueCode = "budget_below_minimums"
	IssueUnknownStrategy        IssueCode = "unknown_strategy"
	IssueSafetyCapReached       IssueCode = "safety_cap_reached"
	IssueZeroIncome             IssueCode = "zero_income"
	IssueNegativeDebtPayments   IssueCode = "negative_debt_payments"
	IssueExpensesExceedIncome   IssueCode = "expenses_exceed_income"
)

// ValidationIssue reports a clamped or defaulted input. Field names the input
// that was adjusted; DebtID is set when the issue belongs to one debt.
type ValidationIssue struct {
	Code   IssueCode `json:"code"`
	Field  string    `json:"field,omitempty"`
	DebtID string    `json:"debtId,omitempty"`
}

func HasIssue(issues []ValidationIssue, code IssueCode) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}
