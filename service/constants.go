package service

const (
	SafetyCapMonths    = 1200 // 100 years; guarantees termination when payoff is unreachable
	BalanceEpsilon     = 0.01 // total balance below this is treated as paid off
	MaxDebtsPerRequest = 50
	MaxDebtAmount      = 100_000_000.0
	MaxInterestRate    = 1000.0 // percent per year
	MaxPaymentMonths   = SafetyCapMonths
)

// StandardHorizons are the payoff horizons offered as budget options.
var StandardHorizons = []int{12, 24, 36, 48, 60}
