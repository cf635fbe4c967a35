package service

import (
	"fmt"
	"math"
	"time"

	"debt-planner/domain"
)

// EstimateService exposes the closed-form estimators with request validation.
type EstimateService struct {
	now func() time.Time
}

func NewEstimateService() *EstimateService {
	return &EstimateService{now: time.Now}
}

// EstimateMonths wraps EstimateMonths and replaces +Inf with Infinite.
func (s *EstimateService) EstimateMonths(input domain.EstimateInput) (domain.EstimateResult, error) {
	if err := checkAmount("totalBalance", input.TotalBalance); err != nil {
		return domain.EstimateResult{}, err
	}
	if err := checkAmount("monthlyPayment", input.MonthlyPayment); err != nil {
		return domain.EstimateResult{}, err
	}
	if err := checkRate(input.InterestRate); err != nil {
		return domain.EstimateResult{}, err
	}

	return s.result(EstimateMonths(input.TotalBalance, input.MonthlyPayment, input.InterestRate)), nil
}

func (s *EstimateService) EstimateMonthsSimple(input domain.SimpleEstimateInput) (domain.EstimateResult, error) {
	if err := checkAmount("totalBalance", input.TotalBalance); err != nil {
		return domain.EstimateResult{}, err
	}
	if math.IsNaN(input.DisposableIncome) || math.IsInf(input.DisposableIncome, 0) {
		return domain.EstimateResult{}, fmt.Errorf("%w: disposableIncome must be finite", ErrInvalidInput)
	}

	return s.result(EstimateMonthsSimple(input.TotalBalance, input.DisposableIncome)), nil
}

// RequiredPayment is the inverse of EstimateMonths: the fixed payment that
// clears the balance in the given number of months.
func (s *EstimateService) RequiredPayment(input domain.RequiredPaymentInput) (domain.RequiredPaymentResult, error) {
	if err := checkAmount("totalBalance", input.TotalBalance); err != nil {
		return domain.RequiredPaymentResult{}, err
	}
	if input.TotalBalance == 0 {
		return domain.RequiredPaymentResult{}, fmt.Errorf("%w: totalBalance must be positive", ErrInvalidInput)
	}
	if err := checkRate(input.InterestRate); err != nil {
		return domain.RequiredPaymentResult{}, err
	}
	if input.Months <= 0 || input.Months > MaxPaymentMonths {
		return domain.RequiredPaymentResult{}, fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidInput, MaxPaymentMonths)
	}

	payment := RequiredPayment(input.TotalBalance, input.InterestRate, input.Months)
	total := payment * float64(input.Months)
	return domain.RequiredPaymentResult{
		MonthlyPayment: RoundCents(payment),
		TotalPayment:   RoundCents(total),
		TotalInterest:  RoundCents(total - input.TotalBalance),
	}, nil
}

func (s *EstimateService) result(months float64) domain.EstimateResult {
	if math.IsInf(months, 1) {
		return domain.EstimateResult{Infinite: true}
	}
	n := int(months)
	date := PayoffDate(n, today(s.now))
	return domain.EstimateResult{Months: n, PayoffDate: &date}
}

func checkAmount(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, field)
	case v < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	case v > MaxDebtAmount:
		return fmt.Errorf("%w: %s exceeds the maximum of $%.2f", ErrInvalidInput, field, MaxDebtAmount)
	}
	return nil
}

func checkRate(rate float64) error {
	switch {
	case math.IsNaN(rate) || math.IsInf(rate, 0):
		return fmt.Errorf("%w: interestRate must be finite", ErrInvalidInput)
	case rate < 0:
		return fmt.Errorf("%w: interestRate must not be negative", ErrInvalidInput)
	case rate > MaxInterestRate:
		return fmt.Errorf("%w: interestRate exceeds the maximum of %.2f%%", ErrInvalidInput, MaxInterestRate)
	}
	return nil
}
