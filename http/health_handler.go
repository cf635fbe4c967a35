package http

import (
	"math"
	"net/http"

	"debt-planner/domain"
	"debt-planner/service"
)

type HealthHandler struct {
	service *service.HealthService
}

func NewHealthHandler(service *service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

type dtiRequest struct {
	MonthlyDebtPayments float64 `json:"monthlyDebtPayments"`
	MonthlyIncome       float64 `json:"monthlyIncome"`
}

type disposableIncomeRequest struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
}

type disposableIncomeResponse struct {
	DisposableIncome float64 `json:"disposableIncome"`
}

func (h *HealthHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var input domain.HealthInput
	if !decodeJSON(w, r, &input) {
		return
	}
	writeJSON(w, r, http.StatusOK, h.service.Assess(input))
}

func (h *HealthHandler) DTI(w http.ResponseWriter, r *http.Request) {
	var req dtiRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := h.service.DebtToIncome(req.MonthlyDebtPayments, req.MonthlyIncome)
	if math.IsInf(result.Ratio, 0) || math.IsNaN(result.Ratio) {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "debt-to-income ratio is out of range"})
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *HealthHandler) DisposableIncome(w http.ResponseWriter, r *http.Request) {
	var req disposableIncomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := service.DisposableIncome(req.MonthlyIncome, req.MonthlyExpenses)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "disposable income is out of range"})
		return
	}
	writeJSON(w, r, http.StatusOK, disposableIncomeResponse{DisposableIncome: v})
}
