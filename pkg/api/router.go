// Package api wires the HTTP surface.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	extracthandler "portfolio_insight/pkg/api/extract"
	queryhandler "portfolio_insight/pkg/api/query"
	"portfolio_insight/pkg/core/config"
	"portfolio_insight/pkg/core/reconcile"
	"portfolio_insight/pkg/core/store"
)

// NewRouter builds the router: health, extraction, and query endpoints.
func NewRouter(cfg *config.Config, checker *reconcile.Checker, repo store.ExtractionRepository) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	extractH := extracthandler.NewHandler(checker, repo)
	queryH := queryhandler.NewHandler(repo)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)
		r.Post("/extract", extractH.HandleExtract)
		r.Post("/query", queryH.HandleQuery)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs method, path, status and duration for every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("[HTTP] %s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
