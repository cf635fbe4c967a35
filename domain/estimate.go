package domain

import "time"

type EstimateInput struct {
	TotalBalance   float64 `json:"totalBalance"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	InterestRate   float64 `json:"interestRate"`
}

type SimpleEstimateInput struct {
	TotalBalance     float64 `json:"totalBalance"`
	DisposableIncome float64 `json:"disposableIncome"`
}

// EstimateResult carries a payoff estimate. Infinite replaces a +Inf month
// count, which JSON cannot represent.
type EstimateResult struct {
	Months     int        `json:"months"`
	Infinite   bool       `json:"infinite"`
	PayoffDate *time.Time `json:"payoffDate,omitempty"`
}

type RequiredPaymentInput struct {
	TotalBalance float64 `json:"totalBalance"`
	InterestRate float64 `json:"interestRate"`
	Months       int     `json:"months"`
}

type RequiredPaymentResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}
