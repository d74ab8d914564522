package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// SystemHandler はシステムカタログの HTTP ハンドラ
type SystemHandler struct {
	svc service.SystemService
}

// NewSystemHandler は SystemHandler を生成する
func NewSystemHandler(svc service.SystemService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// List は GET /api/systems を処理する
func (h *SystemHandler) List(w http.ResponseWriter, r *http.Request) {
	systems, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "system_list", err)
		return
	}
	if systems == nil {
		systems = []*model.System{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"systems": systems})
}

// Get は GET /api/systems/{id} を処理する
func (h *SystemHandler) Get(w http.ResponseWriter, r *http.Request) {
	system, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "system_get", err)
		return
	}
	writeJSON(w, http.StatusOK, system)
}

// Create は POST /api/systems を処理する
func (h *SystemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.SystemInput
	if !decodeJSON(w, r, &input) {
		return
	}
	system, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "system_create", err)
		return
	}
	writeJSON(w, http.StatusCreated, system)
}

// Delete は DELETE /api/systems/{id} を処理する
func (h *SystemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "system_delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListPresets は GET /api/systems/{id}/presets を処理する
func (h *SystemHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.svc.ListPresets(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "preset_list", err)
		return
	}
	if presets == nil {
		presets = []*model.ConsumablePreset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets})
}

// AddPreset は POST /api/systems/{id}/presets を処理する
func (h *SystemHandler) AddPreset(w http.ResponseWriter, r *http.Request) {
	var input model.ConsumablePresetInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ConsumableID == "" {
		writeError(w, http.StatusBadRequest, "consumable_id_required")
		return
	}
	preset, err := h.svc.AddPreset(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeServiceError(w, r, "preset_create", err)
		return
	}
	writeJSON(w, http.StatusCreated, preset)
}
