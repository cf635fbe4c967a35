package domain

import "strings"

// DebtRecord is one liability the planner operates on.
type DebtRecord struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Balance        float64 `json:"balance" yaml:"balance"`
	InterestRate   float64 `json:"interestRate" yaml:"interest_rate"` // nominal APR, 18.99 means 18.99%
	MinimumPayment float64 `json:"minimumPayment" yaml:"minimum_payment"`
}

type Strategy string

const (
	Avalanche Strategy = "avalanche" // highest APR first
	Snowball  Strategy = "snowball"  // smallest balance first
	Hybrid    Strategy = "hybrid"    // weighted blend of APR and relative size
)

// Strategies lists every supported strategy in comparison order.
var Strategies = []Strategy{Avalanche, Snowball, Hybrid}

func (s Strategy) Valid() bool {
	switch s {
	case Avalanche, Snowball, Hybrid:
		return true
	}
	return false
}

// ParseStrategy normalizes user input. An empty value selects Avalanche.
func ParseStrategy(raw string) (Strategy, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return Avalanche, true
	}
	s := Strategy(raw)
	return s, s.Valid()
}

// HybridWeights blends APR with the debt's share of the portfolio:
// score = Rate*apr + Size*(balance/total*100).
type HybridWeights struct {
	Rate float64 `json:"rate" yaml:"rate"`
	Size float64 `json:"size" yaml:"size"`
}

// DefaultHybridWeights is the 0.6/0.4 blend used by the debt breakdown view.
// The payoff planner view historically used 0.7/0.3; callers wanting that pass it explicitly.
var DefaultHybridWeights = HybridWeights{Rate: 0.6, Size: 0.4}
