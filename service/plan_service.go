package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"debt-planner/domain"
	"debt-planner/repository"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type PlanSettings struct {
	HybridWeights domain.HybridWeights
	MaxDebts      int
	MaxMonths     int
	Epsilon       float64
	CacheTTL      time.Duration
	Now           func() time.Time
}

var DefaultPlanSettings = PlanSettings{
	HybridWeights: domain.DefaultHybridWeights,
	MaxDebts:      MaxDebtsPerRequest,
	MaxMonths:     SafetyCapMonths,
	Epsilon:       BalanceEpsilon,
	CacheTTL:      time.Hour,
	Now:           time.Now,
}

type PlanService struct {
	debts    repository.DebtRepository
	plans    repository.PlanRepository
	cache    repository.CacheRepository
	advisor  *AdvisorService
	settings PlanSettings
}

// NewPlanService wires the simulator to storage. plans, cache and advisor
// may be nil.
func NewPlanService(
	debts repository.DebtRepository,
	plans repository.PlanRepository,
	cache repository.CacheRepository,
	advisor *AdvisorService,
	settings PlanSettings,
) *PlanService {
	if settings.MaxDebts <= 0 {
		settings.MaxDebts = MaxDebtsPerRequest
	}
	if settings.MaxMonths <= 0 {
		settings.MaxMonths = SafetyCapMonths
	}
	if !(settings.Epsilon > 0) {
		settings.Epsilon = BalanceEpsilon
	}
	if settings.HybridWeights == (domain.HybridWeights{}) {
		settings.HybridWeights = domain.DefaultHybridWeights
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &PlanService{
		debts:    debts,
		plans:    plans,
		cache:    cache,
		advisor:  advisor,
		settings: settings,
	}
}

// Simulate validates the request, serves it from cache when possible and
// records the outcome in plan history.
func (s *PlanService) Simulate(ctx context.Context, input domain.PlanInput) (domain.PayoffPlan, error) {
	return s.simulate(ctx, "", input)
}

func (s *PlanService) simulate(ctx context.Context, userID string, input domain.PlanInput) (domain.PayoffPlan, error) {
	input, err := s.normalize(input)
	if err != nil {
		return domain.PayoffPlan{}, err
	}

	key := s.cacheKey("simulate", userID, input)
	if plan, ok := s.cachedPlan(ctx, key); ok {
		return plan, nil
	}

	plan := SimulateWithOptions(input.Debts, input.MonthlyBudget, input.Strategy, s.options(input))
	if input.Explain {
		plan.Explanation = s.advisor.ExplainPlan(ctx, plan, input.Debts)
	}

	s.storePlan(ctx, key, plan)
	s.record(ctx, userID, input, plan)
	return plan, nil
}

// Compare simulates every strategy for the same debts and budget. Best is
// the cheapest plan that finishes before the safety cap; savings are
// measured against snowball.
func (s *PlanService) Compare(ctx context.Context, input domain.PlanInput) (domain.Comparison, error) {
	input, err := s.normalize(input)
	if err != nil {
		return domain.Comparison{}, err
	}

	opts := s.options(input)
	plans := make([]domain.PayoffPlan, len(domain.Strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range domain.Strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plans[i] = SimulateWithOptions(input.Debts, input.MonthlyBudget, strategy, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Comparison{}, fmt.Errorf("compare strategies: %w", err)
	}

	cmp := buildComparison(plans)
	if input.Explain {
		cmp.Explanation = s.advisor.ExplainComparison(ctx, cmp, input.Debts)
	}
	return cmp, nil
}

// SimulateForUser runs Simulate on the user's stored debts. The debts are
// returned alongside the plan for rendering.
func (s *PlanService) SimulateForUser(ctx context.Context, userID string, input domain.PlanInput) (domain.PayoffPlan, []domain.DebtRecord, error) {
	debts, err := s.userDebts(ctx, userID)
	if err != nil {
		return domain.PayoffPlan{}, nil, err
	}
	input.Debts = debts
	plan, err := s.simulate(ctx, userID, input)
	return plan, debts, err
}

func (s *PlanService) CompareForUser(ctx context.Context, userID string, input domain.PlanInput) (domain.Comparison, error) {
	debts, err := s.userDebts(ctx, userID)
	if err != nil {
		return domain.Comparison{}, err
	}
	input.Debts = debts
	return s.Compare(ctx, input)
}

func (s *PlanService) History(ctx context.Context, limit int) ([]domain.PlanRecord, error) {
	if s.plans == nil {
		return []domain.PlanRecord{}, nil
	}
	return s.plans.Recent(ctx, limit)
}

func (s *PlanService) userDebts(ctx context.Context, userID string) ([]domain.DebtRecord, error) {
	if s.debts == nil {
		return nil, fmt.Errorf("%w: no debt store configured", ErrNoDebts)
	}
	debts, err := s.debts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load debts for user %s: %w", userID, err)
	}
	return debts, nil
}

func (s *PlanService) normalize(input domain.PlanInput) (domain.PlanInput, error) {
	if len(input.Debts) == 0 {
		return input, ErrNoDebts
	}
	if len(input.Debts) > s.settings.MaxDebts {
		return input, fmt.Errorf("%w: %d exceeds the maximum of %d", ErrTooManyDebts, len(input.Debts), s.settings.MaxDebts)
	}

	strategy, ok := domain.ParseStrategy(string(input.Strategy))
	if !ok {
		return input, fmt.Errorf("%w: %q", ErrInvalidStrategy, input.Strategy)
	}
	input.Strategy = strategy

	if math.IsNaN(input.MonthlyBudget) || math.IsInf(input.MonthlyBudget, 0) {
		return input, fmt.Errorf("%w: must be a finite number", ErrInvalidBudget)
	}
	if input.MonthlyBudget > MaxDebtAmount {
		return input, fmt.Errorf("%w: exceeds the maximum of $%.2f", ErrInvalidBudget, MaxDebtAmount)
	}

	debts := make([]domain.DebtRecord, len(input.Debts))
	seen := make(map[string]bool, len(input.Debts))
	for i, d := range input.Debts {
		if d.ID == "" {
			d.ID = fmt.Sprintf("debt-%d", i+1)
		}
		if seen[d.ID] {
			return input, fmt.Errorf("%w: %s", ErrDuplicateDebtID, d.ID)
		}
		seen[d.ID] = true
		if err := checkDebtBounds(d); err != nil {
			return input, fmt.Errorf("debt %s: %w", d.ID, err)
		}
		debts[i] = d
	}
	input.Debts = debts

	if input.HybridWeights == nil {
		w := s.settings.HybridWeights
		input.HybridWeights = &w
	}
	return input, nil
}

// checkDebtBounds rejects values the simulator cannot represent. Negative
// values pass through and are clamped and reported by the simulator.
func checkDebtBounds(d domain.DebtRecord) error {
	for _, f := range []struct {
		name  string
		value float64
		limit float64
	}{
		{"balance", d.Balance, MaxDebtAmount},
		{"interestRate", d.InterestRate, MaxInterestRate},
		{"minimumPayment", d.MinimumPayment, MaxDebtAmount},
	} {
		switch {
		case math.IsNaN(f.value) || math.IsInf(f.value, 0):
			return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, f.name)
		case f.value > f.limit:
			return fmt.Errorf("%w: %s exceeds the maximum of %.2f", ErrInvalidInput, f.name, f.limit)
		}
	}
	return nil
}

func (s *PlanService) options(input domain.PlanInput) SimulationOptions {
	return SimulationOptions{
		HybridWeights: *input.HybridWeights,
		MaxMonths:     s.settings.MaxMonths,
		Epsilon:       s.settings.Epsilon,
		Now:           s.settings.Now,
	}
}

// cacheKey includes the calendar date because PayoffDate depends on it. The
// user is part of the key since a hit skips the history record.
func (s *PlanService) cacheKey(kind, userID string, input domain.PlanInput) string {
	payload, err := json.Marshal(struct {
		Kind   string           `json:"kind"`
		UserID string           `json:"userId,omitempty"`
		Date   string           `json:"date"`
		Input  domain.PlanInput `json:"input"`
	}{kind, userID, s.settings.Now().Format(time.DateOnly), input})
	if err != nil {
		return ""
	}
	return fmt.Sprintf("plan:%016x", xxhash.Sum64(payload))
}

func (s *PlanService) cachedPlan(ctx context.Context, key string) (domain.PayoffPlan, bool) {
	if s.cache == nil || key == "" {
		return domain.PayoffPlan{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.PayoffPlan{}, false
	}
	var plan domain.PayoffPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		log.WithError(err).WithField("key", key).Warn("discarding unreadable cached plan")
		return domain.PayoffPlan{}, false
	}
	log.WithField("key", key).Debug("plan cache hit")
	return plan, true
}

func (s *PlanService) storePlan(ctx context.Context, key string, plan domain.PayoffPlan) {
	if s.cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		log.WithError(err).Warn("failed to encode plan for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.settings.CacheTTL); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to cache plan")
	}
}

func (s *PlanService) record(ctx context.Context, userID string, input domain.PlanInput, plan domain.PayoffPlan) {
	if s.plans == nil {
		return
	}
	rec := domain.PlanRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.settings.Now().UTC(),
		DebtCount: len(input.Debts),
		Budget:    plan.MonthlyPayment,
		Summary:   plan.Summary(),
	}
	if err := s.plans.Save(ctx, rec); err != nil {
		log.WithError(err).WithField("strategy", plan.Strategy).Warn("failed to record plan history")
	}
}

func buildComparison(plans []domain.PayoffPlan) domain.Comparison {
	cmp := domain.Comparison{Summaries: make([]domain.StrategySummary, len(plans))}

	best := -1
	snowball := -1
	for i, p := range plans {
		cmp.Summaries[i] = p.Summary()
		if p.Strategy == domain.Snowball {
			snowball = i
		}
		if p.Capped {
			continue
		}
		if best < 0 || p.TotalInterest < plans[best].TotalInterest {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}
	cmp.Best = plans[best]

	if snowball >= 0 {
		base := plans[snowball]
		cmp.InterestSaved = RoundCents(math.Max(0, base.TotalInterest-cmp.Best.TotalInterest))
		cmp.MonthsSaved = base.MonthsToPayoff - cmp.Best.MonthsToPayoff
	}
	return cmp
}
