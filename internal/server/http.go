package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"quizkit/internal/config"
)

// NewHTTPServer wires the service routes: health, metrics, the leaderboard
// REST surface, and the quiz WebSocket endpoint.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, quizWSHandler, leaderboardHandler http.HandlerFunc) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	if quizWSHandler != nil {
		mux.HandleFunc("/ws/quiz", quizWSHandler)
	}
	if leaderboardHandler != nil {
		mux.HandleFunc("/v1/leaderboard", leaderboardHandler)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
