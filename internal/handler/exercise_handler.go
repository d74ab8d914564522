package handler

import (
	"net/http"
	"strings"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// ExerciseHandler は演習とシステム割り当ての HTTP ハンドラ
type ExerciseHandler struct {
	svc service.ExerciseService
}

// NewExerciseHandler は ExerciseHandler を生成する
func NewExerciseHandler(svc service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{svc: svc}
}

// List は GET /api/exercises?status= を処理する
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.ExerciseStatus(strings.ToUpper(r.URL.Query().Get("status")))
	exercises, err := h.svc.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, "exercise_list", err)
		return
	}
	if exercises == nil {
		exercises = []*model.Exercise{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

// Get は GET /api/exercises/{id} を処理する
func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ex, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "exercise_get", err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// Create は POST /api/exercises を処理する。日付は YYYY-MM-DD または RFC 3339
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Location    string `json:"location"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		Status      string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	start, err := optionalDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_start_date")
		return
	}
	end, err := optionalDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_end_date")
		return
	}

	ex, err := h.svc.Create(r.Context(), model.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   start,
		EndDate:     end,
		Status:      model.ExerciseStatus(strings.ToUpper(req.Status)),
	})
	if err != nil {
		writeServiceError(w, r, "exercise_create", err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

// UpdateStatus は PATCH /api/exercises/{id}/status を処理する
func (h *ExerciseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	status := model.ExerciseStatus(strings.ToUpper(req.Status))
	if err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), status); err != nil {
		writeServiceError(w, r, "exercise_status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete は DELETE /api/exercises/{id} を処理する
func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "exercise_delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AddSystem は POST /api/exercises/{id}/systems を処理する
func (h *ExerciseHandler) AddSystem(w http.ResponseWriter, r *http.Request) {
	var input model.ExerciseSystemInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.SystemID == "" {
		writeError(w, http.StatusBadRequest, "system_id_required")
		return
	}
	es, err := h.svc.AddSystem(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeServiceError(w, r, "exercise_add_system", err)
		return
	}
	writeJSON(w, http.StatusCreated, es)
}

// RemoveSystem は DELETE /api/exercises/{id}/systems/{sid} を処理する
func (h *ExerciseHandler) RemoveSystem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveSystem(r.Context(), r.PathValue("id"), r.PathValue("sid")); err != nil {
		writeServiceError(w, r, "exercise_remove_system", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
