package repository

import (
	"context"
	"fmt"

	"debt-planner/database"
	"debt-planner/domain"
)

type PlanRepositoryPostgres struct {
	q Queryable
}

func NewPlanRepositoryPostgres(db *database.DB) *PlanRepositoryPostgres {
	return &PlanRepositoryPostgres{q: db.Pool}
}

func (r *PlanRepositoryPostgres) Save(ctx context.Context, record domain.PlanRecord) error {
	query := `
		INSERT INTO plan_history
			(id, user_id, strategy, monthly_budget, debt_count, months_to_payoff, total_interest, payoff_date, capped, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	s := record.Summary
	_, err := r.q.Exec(ctx, query,
		record.ID, record.UserID, string(s.Strategy), record.Budget, record.DebtCount,
		s.MonthsToPayoff, s.TotalInterest, s.PayoffDate, s.Capped, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan record %s: %w", record.ID, err)
	}
	return nil
}

func (r *PlanRepositoryPostgres) Recent(ctx context.Context, limit int) ([]domain.PlanRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, strategy, monthly_budget, debt_count, months_to_payoff,
		       total_interest, payoff_date, capped, created_at
		FROM plan_history
		ORDER BY created_at DESC, id
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan history: %w", err)
	}
	defer rows.Close()

	records := []domain.PlanRecord{}
	for rows.Next() {
		var rec domain.PlanRecord
		var strategy string
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &strategy, &rec.Budget, &rec.DebtCount,
			&rec.Summary.MonthsToPayoff, &rec.Summary.TotalInterest, &rec.Summary.PayoffDate,
			&rec.Summary.Capped, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan record: %w", err)
		}
		rec.Summary.Strategy = domain.Strategy(strategy)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan history: %w", err)
	}
	return records, nil
}
