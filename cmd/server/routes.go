package main

import (
	"net/http"

	"github.com/jaw1999/planning-tool-sub002/internal/handler"
)

// handlers bundles everything the router needs.
type handlers struct {
	base        *handler.Handler
	systems     *handler.SystemHandler
	consumables *handler.ConsumableHandler
	exercises   *handler.ExerciseHandler
	costs       *handler.CostHandler
	analytics   *handler.AnalyticsHandler
	settings    *handler.SettingsHandler
	adminStats  *handler.MetricsHandler
	prometheus  http.Handler
}

func newMux(h handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.base.Health)

	// システムカタログ
	mux.HandleFunc("GET /api/systems", h.systems.List)
	mux.HandleFunc("POST /api/systems", h.systems.Create)
	mux.HandleFunc("GET /api/systems/{id}", h.systems.Get)
	mux.HandleFunc("DELETE /api/systems/{id}", h.systems.Delete)
	mux.HandleFunc("GET /api/systems/{id}/presets", h.systems.ListPresets)
	mux.HandleFunc("POST /api/systems/{id}/presets", h.systems.AddPreset)

	// 消耗品
	mux.HandleFunc("GET /api/consumables", h.consumables.List)
	mux.HandleFunc("POST /api/consumables", h.consumables.Create)
	mux.HandleFunc("GET /api/consumables/{id}", h.consumables.Get)
	mux.HandleFunc("DELETE /api/consumables/{id}", h.consumables.Delete)

	// 演習と割り当て
	mux.HandleFunc("GET /api/exercises", h.exercises.List)
	mux.HandleFunc("POST /api/exercises", h.exercises.Create)
	mux.HandleFunc("GET /api/exercises/{id}", h.exercises.Get)
	mux.HandleFunc("DELETE /api/exercises/{id}", h.exercises.Delete)
	mux.HandleFunc("PATCH /api/exercises/{id}/status", h.exercises.UpdateStatus)
	mux.HandleFunc("POST /api/exercises/{id}/systems", h.exercises.AddSystem)
	mux.HandleFunc("DELETE /api/exercises/{id}/systems/{sid}", h.exercises.RemoveSystem)

	// コスト・集計
	mux.HandleFunc("GET /api/exercises/{id}/costs", h.costs.ExerciseCosts)
	mux.HandleFunc("POST /api/costs/estimate", h.costs.Estimate)
	mux.HandleFunc("GET /api/analytics", h.analytics.Get)

	mux.HandleFunc("GET /api/settings", h.settings.Get)
	mux.HandleFunc("PUT /api/settings", h.settings.Update)

	mux.HandleFunc("GET /api/admin/metrics", h.adminStats.Summary)
	if h.prometheus != nil {
		mux.Handle("GET /metrics", h.prometheus)
	}
	return mux
}

// chain wraps the router: RequestLogger → SecurityHeaders → RateLimiter → CORS → mux.
func chain(mux http.Handler, base *handler.Handler, logger *handler.RequestLogger, limiter *handler.RateLimiter) http.Handler {
	return logger.Middleware(handler.SecurityHeaders(limiter.Middleware(base.CORS(mux))))
}
