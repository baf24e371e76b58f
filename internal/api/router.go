package api

import (
	"net/http"

	"github.com/feedsim/feedsim/internal/engine"
	"github.com/feedsim/feedsim/internal/storage"
	"log/slog"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, store storage.Store, scorer *engine.Scorer, controller *engine.Controller, logger *slog.Logger) {
	handler := NewHandler(store, scorer, controller, logger)

	// Feed and bot routes
	mux.HandleFunc("/api/posts", handler.GetPostsHandler)
	mux.HandleFunc("/api/bots", handler.GetBotsHandler)
	mux.HandleFunc("/api/bots/", handler.UpdateBotHandler)

	// Stats and algorithm routes
	mux.HandleFunc("/api/stats", handler.GetStatsHandler)
	mux.HandleFunc("/api/algorithm-config", handler.HandleAlgorithmConfig)

	// Simulation control
	mux.HandleFunc("/api/simulation/control", handler.ControlHandler)

	// CORS preflight
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
}
