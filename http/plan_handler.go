package http

import (
	"net/http"
	"strconv"

	"debt-planner/domain"
	"debt-planner/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type PlanHandler struct {
	plans   *service.PlanService
	budgets *service.BudgetRecommendationService
}

func NewPlanHandler(plans *service.PlanService, budgets *service.BudgetRecommendationService) *PlanHandler {
	return &PlanHandler{plans: plans, budgets: budgets}
}

func (h *PlanHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.PlanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	plan, err := h.plans.Simulate(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (h *PlanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.PlanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	cmp, err := h.plans.Compare(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cmp)
}

func (h *PlanHandler) RecommendBudget(w http.ResponseWriter, r *http.Request) {
	var input domain.BudgetRecommendationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.budgets.RecommendBudget(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// History lists recently simulated plans, newest first.
func (h *PlanHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.plans.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}
