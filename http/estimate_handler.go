package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/service"
)

type EstimateHandler struct {
	service *service.EstimateService
}

func NewEstimateHandler(service *service.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

func (h *EstimateHandler) Months(w http.ResponseWriter, r *http.Request) {
	var input domain.EstimateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.EstimateMonths(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *EstimateHandler) Simple(w http.ResponseWriter, r *http.Request) {
	var input domain.SimpleEstimateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.EstimateMonthsSimple(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *EstimateHandler) RequiredPayment(w http.ResponseWriter, r *http.Request) {
	var input domain.RequiredPaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.RequiredPayment(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
