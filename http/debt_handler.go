package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/service"
)

// DebtHandler serves a user's stored debts under /users/{userID}/debts.
type DebtHandler struct {
	service *service.DebtService
}

func NewDebtHandler(service *service.DebtService) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.service.List(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if debts == nil {
		debts = []domain.DebtRecord{}
	}
	writeJSON(w, r, http.StatusOK, debts)
}

// Save creates a debt, or replaces it when the body carries an existing id.
func (h *DebtHandler) Save(w http.ResponseWriter, r *http.Request) {
	var debt domain.DebtRecord
	if !decodeJSON(w, r, &debt) {
		return
	}

	status := http.StatusOK
	if debt.ID == "" {
		status = http.StatusCreated
	}

	saved, err := h.service.Save(r.Context(), r.PathValue("userID"), debt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, status, saved)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	debt, err := h.service.Get(r.Context(), r.PathValue("userID"), r.PathValue("debtID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, debt)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("userID"), r.PathValue("debtID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
