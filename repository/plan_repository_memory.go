package repository

import (
	"context"
	"sync"

	"debt-planner/domain"
)

const defaultPlanHistoryCapacity = 500

// PlanRepositoryMemory keeps the most recent plan summaries in memory.
type PlanRepositoryMemory struct {
	mu       sync.Mutex
	data     []domain.PlanRecord
	capacity int
}

func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data:     []domain.PlanRecord{},
		capacity: defaultPlanHistoryCapacity,
	}
}

func (r *PlanRepositoryMemory) Save(_ context.Context, record domain.PlanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if over := len(r.data) - r.capacity; over > 0 {
		r.data = append([]domain.PlanRecord(nil), r.data[over:]...)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *PlanRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.PlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}
	out := make([]domain.PlanRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
