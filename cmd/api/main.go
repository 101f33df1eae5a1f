package main

import (
	"context"
	"log"
	"net/http"

	"portfolio_insight/pkg/api"
	"portfolio_insight/pkg/core/config"
	"portfolio_insight/pkg/core/reconcile"
	"portfolio_insight/pkg/core/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}

	rates, rerr := config.LoadRates("config/rates.hjson")
	if rerr != nil {
		log.Printf("[Config] Rate table unusable, falling back to defaults: %v", rerr)
		rates = nil
	}
	checker := reconcile.NewChecker(rates, reconcile.Mode(cfg.Reconciliation.Mode))

	var repo store.ExtractionRepository
	if cfg.Database.Enabled && cfg.Database.URL != "" {
		if err := store.InitDB(context.Background(), cfg.Database.URL); err != nil {
			log.Fatalf("[DB] Connection failed: %v", err)
		}
		defer store.Close()
		repo = store.NewPGExtractionRepo()
		log.Println("[DB] Extraction persistence enabled")
	} else {
		repo = store.NewMemoryExtractionRepo()
		log.Println("[DB] Running with in-memory extraction store")
	}

	router := api.NewRouter(cfg, checker, repo)

	log.Printf("API server starting on %s...", cfg.Server.Addr)
	log.Println("  - GET  /api/health")
	log.Println("  - POST /api/extract")
	log.Println("  - POST /api/query")

	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		log.Fatalf("[FATAL] Server failed to start: %v", err)
	}
}
