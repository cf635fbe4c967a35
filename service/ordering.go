package service

import (
	"cmp"
	"slices"

	"debt-planner/domain"
)

// OrderDebts returns the debts with a positive balance in payoff priority.
// The sort is stable, so ties keep their input order. Unknown strategies
// fall back to avalanche. The input slice is not modified.
func OrderDebts(debts []domain.DebtRecord, strategy domain.Strategy, weights domain.HybridWeights) []domain.DebtRecord {
	out := make([]domain.DebtRecord, 0, len(debts))
	for _, d := range debts {
		if d.Balance > 0 {
			out = append(out, d)
		}
	}

	switch strategy {
	case domain.Snowball:
		slices.SortStableFunc(out, func(a, b domain.DebtRecord) int {
			return cmp.Compare(a.Balance, b.Balance)
		})
	case domain.Hybrid:
		total := TotalDebt(out)
		type scored struct {
			debt  domain.DebtRecord
			score float64
		}
		ss := make([]scored, len(out))
		for i, d := range out {
			ss[i] = scored{debt: d, score: HybridScore(d, total, weights)}
		}
		slices.SortStableFunc(ss, func(a, b scored) int {
			return cmp.Compare(b.score, a.score)
		})
		for i := range ss {
			out[i] = ss[i].debt
		}
	default:
		slices.SortStableFunc(out, func(a, b domain.DebtRecord) int {
			return cmp.Compare(b.InterestRate, a.InterestRate)
		})
	}
	return out
}

// HybridScore blends a debt's APR with its percentage share of the total balance.
func HybridScore(d domain.DebtRecord, totalBalance float64, w domain.HybridWeights) float64 {
	share := 0.0
	if totalBalance > 0 {
		share = d.Balance / totalBalance * 100
	}
	return w.Rate*d.InterestRate + w.Size*share
}
