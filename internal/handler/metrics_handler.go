package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/metrics"
)

// MetricsHandler は直近のリクエスト集計を返す HTTP ハンドラ
type MetricsHandler struct {
	window *metrics.RequestWindow
}

// NewMetricsHandler は MetricsHandler を生成する
func NewMetricsHandler(window *metrics.RequestWindow) *MetricsHandler {
	return &MetricsHandler{window: window}
}

// Summary は GET /api/admin/metrics を処理する
func (h *MetricsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.window.Summary())
}
