package repository

import (
	"context"
	"errors"
	"fmt"

	"debt-planner/database"
	"debt-planner/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable is satisfied by both *pgxpool.Pool and pgx.Tx.
type Queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DebtRepositoryPostgres struct {
	q Queryable
}

func NewDebtRepositoryPostgres(db *database.DB) *DebtRepositoryPostgres {
	return &DebtRepositoryPostgres{q: db.Pool}
}

func (r *DebtRepositoryPostgres) ListByUser(ctx context.Context, userID string) ([]domain.DebtRecord, error) {
	query := `
		SELECT id, name, balance, interest_rate, minimum_payment
		FROM debts
		WHERE user_id = $1
		ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts for user %s: %w", userID, err)
	}
	defer rows.Close()

	debts := []domain.DebtRecord{}
	for rows.Next() {
		var d domain.DebtRecord
		if err := rows.Scan(&d.ID, &d.Name, &d.Balance, &d.InterestRate, &d.MinimumPayment); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

func (r *DebtRepositoryPostgres) Get(ctx context.Context, userID, debtID string) (domain.DebtRecord, error) {
	query := `
		SELECT id, name, balance, interest_rate, minimum_payment
		FROM debts
		WHERE user_id = $1 AND id = $2`

	var d domain.DebtRecord
	err := r.q.QueryRow(ctx, query, userID, debtID).Scan(&d.ID, &d.Name, &d.Balance, &d.InterestRate, &d.MinimumPayment)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DebtRecord{}, ErrDebtNotFound
	}
	if err != nil {
		return domain.DebtRecord{}, fmt.Errorf("failed to get debt %s: %w", debtID, err)
	}
	return d, nil
}

// Save upserts the debt. An id owned by another user is reported as not found.
func (r *DebtRepositoryPostgres) Save(ctx context.Context, userID string, debt domain.DebtRecord) (domain.DebtRecord, error) {
	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}

	query := `
		INSERT INTO debts (id, user_id, name, balance, interest_rate, minimum_payment)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			balance = EXCLUDED.balance,
			interest_rate = EXCLUDED.interest_rate,
			minimum_payment = EXCLUDED.minimum_payment,
			updated_at = NOW()
		WHERE debts.user_id = EXCLUDED.user_id`

	tag, err := r.q.Exec(ctx, query, debt.ID, userID, debt.Name, debt.Balance, debt.InterestRate, debt.MinimumPayment)
	if err != nil {
		return domain.DebtRecord{}, fmt.Errorf("failed to save debt %s: %w", debt.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.DebtRecord{}, ErrDebtNotFound
	}
	return debt, nil
}

func (r *DebtRepositoryPostgres) Delete(ctx context.Context, userID, debtID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM debts WHERE user_id = $1 AND id = $2`, userID, debtID)
	if err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDebtNotFound
	}
	return nil
}
