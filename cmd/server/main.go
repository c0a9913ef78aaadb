package main

import (
	"log"
	"net/http"
	"time"

	"recon-insights/internal/api"
	"recon-insights/internal/config"
	"recon-insights/internal/gateway"
	"recon-insights/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// GeneratedAt is stamped per request.
	defaults, err := cfg.Request(time.Time{})
	if err != nil {
		log.Fatalf("Invalid default query: %v", err)
	}

	source := gateway.NewFileSource(cfg.Input.Dir)
	router := api.NewRouter(usecase.NewDashboardUseCase(source), defaults)

	log.Printf("Reconciliation insights server")
	log.Printf("Reading exports from %s", cfg.Input.Dir)
	log.Printf("Listening on %s", cfg.Server.Addr)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  GET    /health")
	log.Printf("  GET    /api/v1/dashboard")
	log.Printf("  GET    /api/v1/dashboard/export")
	log.Printf("  POST   /api/v1/views")

	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
