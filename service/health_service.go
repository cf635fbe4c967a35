package service

import (
	"math"

	"debt-planner/domain"
)

// HealthService combines the instantaneous metrics into one snapshot.
type HealthService struct {
	thresholds domain.DTIThresholds
}

func NewHealthService(thresholds domain.DTIThresholds) *HealthService {
	if thresholds == (domain.DTIThresholds{}) {
		thresholds = domain.DefaultDTIThresholds
	}
	return &HealthService{thresholds: thresholds}
}

func (s *HealthService) DebtToIncome(totalMonthlyDebtPayments, grossMonthlyIncome float64) domain.DTIResult {
	return DebtToIncomeWith(totalMonthlyDebtPayments, grossMonthlyIncome, s.thresholds)
}

// Assess never fails; odd inputs are clamped and listed in Issues.
func (s *HealthService) Assess(input domain.HealthInput) domain.HealthSnapshot {
	var issues []domain.ValidationIssue

	income := finiteOrZero(input.MonthlyIncome, "monthlyIncome", &issues)
	expenses := finiteOrZero(input.MonthlyExpenses, "monthlyExpenses", &issues)
	totalDebt := finiteOrZero(input.TotalDebt, "totalDebt", &issues)

	if expenses > income && income > 0 {
		issues = append(issues, domain.ValidationIssue{Code: domain.IssueExpensesExceedIncome, Field: "monthlyExpenses"})
	}

	disposable := DisposableIncome(income, expenses)
	dti := s.DebtToIncome(input.MonthlyDebtPayments, income)

	return domain.HealthSnapshot{
		DisposableIncome:   RoundCents(disposable),
		DTI:                dti,
		SimplePayoffMonths: int(EstimateMonthsSimple(totalDebt, disposable)),
		Issues:             issues,
	}
}

func finiteOrZero(v float64, field string, issues *[]domain.ValidationIssue) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*issues = append(*issues, domain.ValidationIssue{Code: domain.IssueNonFiniteValue, Field: field})
		return 0
	}
	return v
}
