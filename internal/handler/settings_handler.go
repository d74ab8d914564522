package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// SettingsHandler はエンジン設定の HTTP ハンドラ
type SettingsHandler struct {
	svc service.SettingsService
}

// NewSettingsHandler は SettingsHandler を生成する
func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get は GET /api/settings を処理する
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, "settings_get", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update は PUT /api/settings を処理する。省略したフィールドは変更しない
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	settings, err := h.svc.Update(r.Context(), patch)
	if err != nil {
		writeServiceError(w, r, "settings_update", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
