package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"debt-planner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(months int) domain.PayoffPlan {
	schedule := make([]domain.MonthlyLedgerEntry, months)
	for i := range schedule {
		schedule[i] = domain.MonthlyLedgerEntry{
			Month:            i + 1,
			InterestPaid:     12.5,
			PrincipalPaid:    900,
			RemainingBalance: float64(months-i-1) * 900,
		}
	}
	return domain.PayoffPlan{
		Strategy:       domain.Avalanche,
		MonthlyPayment: 1000,
		MonthsToPayoff: months,
		TotalInterest:  388.91,
		PayoffDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Schedule:       schedule,
		Order:          []string{"A", "B"},
		Payoffs:        []domain.DebtPayoff{{ID: "A", Month: 6}, {ID: "B", Month: months}},
		Explanation:    "Pay the card first — it’s the most expensive.",
		Issues:         []domain.ValidationIssue{{Code: domain.IssueNegativeBudget}},
	}
}

func TestWritePlanPDF(t *testing.T) {
	debts := []domain.DebtRecord{
		{ID: "A", Name: "Credit card", Balance: 5000, InterestRate: 20, MinimumPayment: 100},
		{ID: "B", Name: "Car loan", Balance: 2000, InterestRate: 10, MinimumPayment: 50},
	}

	var buf bytes.Buffer
	err := WritePlanPDF(&buf, samplePlan(8), debts, Options{GeneratedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestWritePlanPDF_LongScheduleAndCapped(t *testing.T) {
	plan := samplePlan(1200)
	plan.Capped = true

	var buf bytes.Buffer
	require.NoError(t, WritePlanPDF(&buf, plan, nil, Options{MaxScheduleRows: 200}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFormatMoney(t *testing.T) {
	tests := map[float64]string{
		0:          "$0.00",
		5:          "$5.00",
		999.999:    "$1,000.00",
		1234.5:     "$1,234.50",
		1234567.89: "$1,234,567.89",
		-42.1:      "-$42.10",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(in), "%v", in)
	}
	assert.Equal(t, "n/a", FormatMoney(math.Inf(1)))
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "it's - \"fine\"", latin1("it’s — “fine”"))
	assert.Equal(t, "café ", latin1("café ✓"))
}
