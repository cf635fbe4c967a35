package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"debt-planner/domain"
	"debt-planner/report"
	"debt-planner/service"

	log "github.com/sirupsen/logrus"
)

// UserPlanHandler simulates plans over a user's stored debts.
type UserPlanHandler struct {
	plans *service.PlanService
	now   func() time.Time
}

func NewUserPlanHandler(plans *service.PlanService) *UserPlanHandler {
	return &UserPlanHandler{plans: plans, now: time.Now}
}

// planQuery reads ?budget=&strategy=&explain= into a PlanInput.
func planQuery(r *http.Request) (domain.PlanInput, error) {
	q := r.URL.Query()

	raw := q.Get("budget")
	if raw == "" {
		return domain.PlanInput{}, fmt.Errorf("%w: budget query parameter is required", service.ErrInvalidBudget)
	}
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.PlanInput{}, fmt.Errorf("%w: %q is not a number", service.ErrInvalidBudget, raw)
	}

	explain, _ := strconv.ParseBool(q.Get("explain"))
	return domain.PlanInput{
		MonthlyBudget: budget,
		Strategy:      domain.Strategy(q.Get("strategy")),
		Explain:       explain,
	}, nil
}

func (h *UserPlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	input, err := planQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	plan, _, err := h.plans.SimulateForUser(r.Context(), r.PathValue("userID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (h *UserPlanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	input, err := planQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cmp, err := h.plans.CompareForUser(r.Context(), r.PathValue("userID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cmp)
}

// Report renders the user's plan as a PDF download.
func (h *UserPlanHandler) Report(w http.ResponseWriter, r *http.Request) {
	input, err := planQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	userID := r.PathValue("userID")
	plan, debts, err := h.plans.SimulateForUser(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePlanPDF(&buf, plan, debts, report.Options{GeneratedAt: h.now()}); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payoff-plan-%s.pdf"`, plan.Strategy))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.WithField("user_id", userID).Warnf("Error writing report: %v", err)
	}
}
