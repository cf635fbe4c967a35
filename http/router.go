package http

import (
	"net/http"

	"debt-planner/service"
)

// Services are the dependencies the HTTP surface is built from.
type Services struct {
	Plans     *service.PlanService
	Budgets   *service.BudgetRecommendationService
	Estimates *service.EstimateService
	Health    *service.HealthService
	Debts     *service.DebtService
}

// NewRouter registers every route behind the rate limiter, request logging
// and panic recovery.
func NewRouter(s Services, limiter *RateLimiter) http.Handler {
	plans := NewPlanHandler(s.Plans, s.Budgets)
	estimates := NewEstimateHandler(s.Estimates)
	health := NewHealthHandler(s.Health)
	debts := NewDebtHandler(s.Debts)
	userPlans := NewUserPlanHandler(s.Plans)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /plan/simulate", plans.Simulate)
	mux.HandleFunc("POST /plan/compare", plans.Compare)
	mux.HandleFunc("POST /plan/recommend-budget", plans.RecommendBudget)
	mux.HandleFunc("GET /plan/history", plans.History)

	mux.HandleFunc("POST /estimate/months", estimates.Months)
	mux.HandleFunc("POST /estimate/simple", estimates.Simple)
	mux.HandleFunc("POST /estimate/required-payment", estimates.RequiredPayment)

	mux.HandleFunc("POST /health/assess", health.Assess)
	mux.HandleFunc("POST /health/dti", health.DTI)
	mux.HandleFunc("POST /health/disposable-income", health.DisposableIncome)

	mux.HandleFunc("GET /users/{userID}/debts", debts.List)
	mux.HandleFunc("POST /users/{userID}/debts", debts.Save)
	mux.HandleFunc("GET /users/{userID}/debts/{debtID}", debts.Get)
	mux.HandleFunc("DELETE /users/{userID}/debts/{debtID}", debts.Delete)

	mux.HandleFunc("GET /users/{userID}/plan", userPlans.Plan)
	mux.HandleFunc("GET /users/{userID}/plan/compare", userPlans.Compare)
	mux.HandleFunc("GET /users/{userID}/plan/report", userPlans.Report)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return RecoverMiddleware(LoggingMiddleware(RateLimitMiddleware(limiter, mux)))
}
