package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// CostHandler は演習コストと見積もりの HTTP ハンドラ
type CostHandler struct {
	svc service.CostService
}

// NewCostHandler は CostHandler を生成する
func NewCostHandler(svc service.CostService) *CostHandler {
	return &CostHandler{svc: svc}
}

// ExerciseCosts は GET /api/exercises/{id}/costs を処理する
func (h *CostHandler) ExerciseCosts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ExerciseCosts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "exercise_costs", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Estimate は POST /api/costs/estimate を処理する
func (h *CostHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.ExerciseSystemInput
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_end_date")
		return
	}

	cost, err := h.svc.Estimate(r.Context(), model.EstimateInput{
		ExerciseSystemInput: req.ExerciseSystemInput,
		StartDate:           start,
		EndDate:             end,
	})
	if err != nil {
		writeServiceError(w, r, "cost_estimate", err)
		return
	}
	writeJSON(w, http.StatusOK, cost)
}
