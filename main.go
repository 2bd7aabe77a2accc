package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pricelens/batch"
	"pricelens/config"
	"pricelens/database"
	"pricelens/extractor"
	"pricelens/fetcher"
	"pricelens/handlers"
	"pricelens/middleware"
	"pricelens/repository"
	"pricelens/scheduler"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Database is optional: without it the API still serves extraction and
	// comparisons, just without persistence or scheduled re-runs
	var reports *repository.ReportRepository
	if cfg.DatabaseURL != "" {
		if err := database.InitDatabase(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.CloseDatabase()

		if err := database.CreateTables(); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		reports = repository.NewReportRepository()
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	// Initialize the page fetcher
	pageFetcher, err := newFetcher(cfg)
	if err != nil {
		log.Fatalf("Failed to create fetcher: %v", err)
	}
	defer pageFetcher.Close()

	orchestrator := batch.NewOrchestrator(pageFetcher, extractor.New(), cfg.BatchWorkers, cfg.FetchTimeout, cfg.BatchDeadline)

	// Initialize handlers
	h := handlers.NewHandlers(cfg, orchestrator, reports)
	defer h.Close()

	// Scheduled re-runs need saved products, so they require the database
	if reports != nil && cfg.RescheduleEnabled {
		rescheduler := scheduler.NewRescheduler(cfg.RescheduleCron, h.RunBatch(), reports)
		if err := rescheduler.Start(); err != nil {
			log.Fatalf("Failed to start rescheduler: %v", err)
		}
		defer rescheduler.Stop()
	}

	// Setup router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))

	// Health and monitoring endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/status", h.Status).Methods("GET")

	// API v1 routes
	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/extract", h.ExtractPrices).Methods("POST")
	apiV1.HandleFunc("/compare-csv", h.CompareCSV).Methods("POST")
	apiV1.HandleFunc("/jobs/stats", h.GetJobStats).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", h.GetJobStatus).Methods("GET")
	apiV1.HandleFunc("/reports/latest", h.GetLatestReport).Methods("GET")

	// CORS configuration
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("🌐 Server starting on %s (fetch mode: %s)", cfg.Addr(), cfg.FetchMode)
	log.Printf("📋 API:")
	log.Printf("   GET  /health - Health check")
	log.Printf("   GET  /status - Detailed status")
	log.Printf("   POST /api/v1/extract - Extract prices from URLs")
	log.Printf("   POST /api/v1/compare-csv - Run comparison batch from CSV (?async=1 for background)")
	log.Printf("   GET  /api/v1/jobs/{id} - Async job status")
	log.Printf("   GET  /api/v1/jobs/stats - Job manager statistics")
	log.Printf("   GET  /api/v1/reports/latest - Latest persisted report")

	// Start server
	log.Fatal(http.ListenAndServe(cfg.Addr(), c.Handler(r)))
}

// newFetcher picks the page fetcher for the configured mode. The browser
// handles script-rendered storefronts; plain HTTP is for environments
// without Chromium.
func newFetcher(cfg *config.Config) (batch.Fetcher, error) {
	if cfg.FetchMode == config.FetchModeHTTP {
		return fetcher.NewHTTPFetcher(cfg.FetchTimeout), nil
	}
	return fetcher.NewBrowserFetcher(cfg.FetchTimeout)
}
