package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RouterConfig collects the handlers mounted by NewRouter.
type RouterConfig struct {
	Health         *HealthHandler
	Assessments    *AssessmentHandler
	Metrics        http.Handler
	Logger         *slog.Logger
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP handler. Probes and /metrics bypass the rate limiter.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	cfg.Assessments.RegisterRoutes(api)
	limited := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)(api)

	mux := http.NewServeMux()
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.Handle("/v1/", limited)

	return Chain(mux, RecoveryMiddleware(cfg.Logger), LoggingMiddleware(cfg.Logger))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
