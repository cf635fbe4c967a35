package domain

type BudgetRecommendationInput struct {
	Debts         []DebtRecord   `json:"debts"`
	Strategy      Strategy       `json:"strategy"`
	TargetMonths  int            `json:"targetMonths"`
	HybridWeights *HybridWeights `json:"hybridWeights,omitempty"`
}

type BudgetOption struct {
	TargetMonths   int     `json:"targetMonths"`
	MonthlyBudget  float64 `json:"monthlyBudget"`
	MonthsToPayoff int     `json:"monthsToPayoff"`
	TotalInterest  float64 `json:"totalInterest"`
}

type BudgetRecommendationResult struct {
	Strategy             Strategy       `json:"strategy"`
	TargetMonths         int            `json:"targetMonths"`
	RecommendedBudget    float64        `json:"recommendedBudget"`
	MinimumPaymentsTotal float64        `json:"minimumPaymentsTotal"`
	MonthsToPayoff       int            `json:"monthsToPayoff"`
	TotalInterest        float64        `json:"totalInterest"`
	Options              []BudgetOption `json:"options"`
	Reason               string         `json:"reason"`
}
