package repository

import (
	"context"

	"debt-planner/domain"
)

// PlanRepository records plan summaries for history views.
type PlanRepository interface {
	Save(ctx context.Context, record domain.PlanRecord) error
	Recent(ctx context.Context, limit int) ([]domain.PlanRecord, error)
}
