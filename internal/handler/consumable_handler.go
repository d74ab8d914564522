package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// ConsumableHandler は消耗品の HTTP ハンドラ
type ConsumableHandler struct {
	svc service.ConsumableService
}

// NewConsumableHandler は ConsumableHandler を生成する
func NewConsumableHandler(svc service.ConsumableService) *ConsumableHandler {
	return &ConsumableHandler{svc: svc}
}

// List は GET /api/consumables を処理する
func (h *ConsumableHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "consumable_list", err)
		return
	}
	if items == nil {
		items = []*model.Consumable{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"consumables": items})
}

// Get は GET /api/consumables/{id} を処理する
func (h *ConsumableHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "consumable_get", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create は POST /api/consumables を処理する
func (h *ConsumableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ConsumableInput
	if !decodeJSON(w, r, &input) {
		return
	}
	item, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "consumable_create", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Delete は DELETE /api/consumables/{id} を処理する
func (h *ConsumableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "consumable_delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
