package handler

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/model"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
)

// AnalyticsHandler はダッシュボード集計の HTTP ハンドラ
type AnalyticsHandler struct {
	svc service.AnalyticsService
}

// NewAnalyticsHandler は AnalyticsHandler を生成する
func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Get は GET /api/analytics?from=YYYY-MM-DD&to=YYYY-MM-DD&granularity=monthly を処理する。
// 省略した境界はその側を開区間とする
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDate(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_from")
		return
	}
	to, err := parseDate(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_to")
		return
	}

	data, err := h.svc.Analytics(r.Context(), model.AnalyticsQuery{
		From:        from,
		To:          to,
		Granularity: q.Get("granularity"),
	})
	if err != nil {
		writeServiceError(w, r, "analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
