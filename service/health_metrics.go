package service

import (
	"math"

	"debt-planner/domain"
)

// DisposableIncome is income left after non-debt expenses, floored at zero.
func DisposableIncome(monthlyIncome, monthlyExpenses float64) float64 {
	d := monthlyIncome - monthlyExpenses
	if !(d > 0) {
		return 0
	}
	return d
}

// DebtToIncome classifies payments/income using the default threshold table.
func DebtToIncome(totalMonthlyDebtPayments, grossMonthlyIncome float64) domain.DTIResult {
	return DebtToIncomeWith(totalMonthlyDebtPayments, grossMonthlyIncome, domain.DefaultDTIThresholds)
}

// DebtToIncomeWith is DebtToIncome with an explicit threshold table.
// Zero (or invalid) income yields ratio 0 with status undefined.
func DebtToIncomeWith(totalMonthlyDebtPayments, grossMonthlyIncome float64, t domain.DTIThresholds) domain.DTIResult {
	var issues []domain.ValidationIssue

	payments := totalMonthlyDebtPayments
	switch {
	case math.IsNaN(payments) || math.IsInf(payments, 0):
		payments = 0
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueNonFiniteValue, Field: "totalMonthlyDebtPayments"})
	case payments < 0:
		payments = 0
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueNegativeDebtPayments, Field: "totalMonthlyDebtPayments"})
	}

	if !(grossMonthlyIncome > 0) || math.IsInf(grossMonthlyIncome, 1) {
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueZeroIncome, Field: "grossMonthlyIncome"})
		return domain.DTIResult{
			Ratio:           0,
			Status:          domain.DTIUndefined,
			Message:         dtiMessages[domain.DTIUndefined],
			Recommendations: dtiRecommendations[domain.DTIUndefined],
			Issues:          issues,
		}
	}

	ratio := payments * 100 / grossMonthlyIncome
	status := classifyDTI(ratio, t)
	return domain.DTIResult{
		Ratio:           ratio,
		Status:          status,
		Message:         dtiMessages[status],
		Recommendations: dtiRecommendations[status],
		Issues:          issues,
	}
}

func classifyDTI(ratio float64, t domain.DTIThresholds) domain.DTIStatus {
	switch {
	case ratio <= t.Healthy:
		return domain.DTIHealthy
	case ratio <= t.Manageable:
		return domain.DTIManageable
	case ratio <= t.Fair:
		return domain.DTIFair
	default:
		return domain.DTIAtRisk
	}
}

var dtiMessages = map[domain.DTIStatus]string{
	domain.DTIHealthy:    "You have a healthy debt-to-income ratio.",
	domain.DTIManageable: "Your debt-to-income ratio is manageable, but be careful with new debt.",
	domain.DTIFair:       "Your debt-to-income ratio is borderline. Consider reducing debt or increasing income.",
	domain.DTIAtRisk:     "High risk. Focus on debt reduction and financial planning.",
	domain.DTIUndefined:  "Income is zero, cannot calculate the debt-to-income ratio.",
}

var dtiRecommendations = map[domain.DTIStatus][]string{
	domain.DTIHealthy: {
		"Keep building your emergency fund.",
		"Put any surplus toward your highest-rate debt.",
	},
	domain.DTIManageable: {
		"Avoid taking on new debt.",
		"Automate payments so nothing slips.",
	},
	domain.DTIFair: {
		"Cut discretionary spending and redirect it to debt.",
		"Look for ways to increase income.",
		"Consider the avalanche strategy to minimize interest.",
	},
	domain.DTIAtRisk: {
		"Stop adding new debt immediately.",
		"Build a strict monthly budget and track every expense.",
		"Contact lenders about hardship programs or lower rates.",
	},
	domain.DTIUndefined: {
		"Enter your gross monthly income to get a ratio.",
	},
}
