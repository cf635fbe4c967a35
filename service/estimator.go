package service

import (
	"math"
	"time"

	"debt-planner/domain"
)

// EstimateMonths returns the months needed to amortize totalBalance with a
// fixed payment at a monthly-compounded APR. It is an aggregate,
// single-balance approximation, not a multi-debt simulation. Returns +Inf
// when the payment does not cover the first month's interest.
func EstimateMonths(totalBalance, monthlyPayment, annualRatePercent float64) float64 {
	if !(monthlyPayment > 0) || !(totalBalance > 0) {
		return 0
	}

	r := annualRatePercent / 100 / 12
	if !(r > 0) {
		return math.Ceil(totalBalance / monthlyPayment)
	}

	if monthlyPayment <= totalBalance*r {
		return math.Inf(1)
	}

	n := -math.Log(1-r*totalBalance/monthlyPayment) / math.Log(1+r)
	return math.Ceil(n)
}

// EstimateMonthsSimple divides the balance by disposable income, ignoring
// interest. Non-positive income yields 0.
func EstimateMonthsSimple(totalBalance, disposableIncome float64) float64 {
	if !(disposableIncome > 0) || !(totalBalance > 0) {
		return 0
	}
	return math.Ceil(totalBalance / disposableIncome)
}

// RequiredPayment is the fixed monthly payment that amortizes totalBalance
// over months at the given APR.
func RequiredPayment(totalBalance, annualRatePercent float64, months int) float64 {
	if months <= 0 || !(totalBalance > 0) {
		return 0
	}

	r := annualRatePercent / 100 / 12
	n := float64(months)
	if !(r > 0) {
		return totalBalance / n
	}
	return totalBalance * (r / (1 - math.Pow(1+r, -n)))
}

func TotalDebt(debts []domain.DebtRecord) float64 {
	total := 0.0
	for _, d := range debts {
		if d.Balance > 0 {
			total += d.Balance
		}
	}
	return total
}

func TotalMinimumPayment(debts []domain.DebtRecord) float64 {
	total := 0.0
	for _, d := range debts {
		if d.MinimumPayment > 0 {
			total += d.MinimumPayment
		}
	}
	return total
}

// PayoffDate advances now by months calendar months.
func PayoffDate(months int, now time.Time) time.Time {
	return now.AddDate(0, months, 0)
}

// RoundCents rounds a currency amount to two decimals.
func RoundCents(value float64) float64 {
	return math.Round(value*100) / 100
}
