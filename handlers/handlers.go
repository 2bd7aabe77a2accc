// Package handlers exposes the HTTP API: ad-hoc price extraction, CSV
// comparison batches (sync and async) and job status.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pricelens/batch"
	"pricelens/config"
	"pricelens/ingest"
	"pricelens/models"
	"pricelens/repository"
	"pricelens/scheduler"
)

type Handlers struct {
	cfg          *config.Config
	orchestrator *batch.Orchestrator
	jobManager   *scheduler.JobManager
	reports      *repository.ReportRepository
	startedAt    time.Time
}

// NewHandlers wires the API handlers. reports may be nil when the service
// runs without a database; persistence is then skipped.
func NewHandlers(cfg *config.Config, orchestrator *batch.Orchestrator, reports *repository.ReportRepository) *Handlers {
	h := &Handlers{
		cfg:          cfg,
		orchestrator: orchestrator,
		reports:      reports,
		startedAt:    time.Now(),
	}

	// A comparison job already fans out over the fetch pool, so one job at
	// a time keeps the browser load bounded
	h.jobManager = scheduler.NewJobManager(h.runAndPersist, 1)

	return h
}

// runAndPersist runs a batch and saves the resulting report, so async jobs
// leave the same trail as synchronous uploads
func (h *Handlers) runAndPersist(ctx context.Context, rows []models.ProductRow, onProgress func(done, total int)) ([]models.ProductComparison, *models.BatchSummary) {
	results, summary := h.orchestrator.RunBatchWithProgress(ctx, rows, onProgress)
	h.saveReport("", summary, models.CompareResponse{Results: results, Summary: summary, Status: "completed"})
	return results, summary
}

// Close stops background workers
func (h *Handlers) Close() {
	if h.jobManager != nil {
		h.jobManager.Stop()
	}
}

// RunBatch exposes the orchestrator's batch entry point for the rescheduler
func (h *Handlers) RunBatch() scheduler.RunBatchFunc {
	return h.orchestrator.RunBatchWithProgress
}

// HealthCheck returns a simple health check response
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "pricelens",
		"version":   "1.0.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// Status reports uptime and job manager statistics
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
		"fetch_mode": h.cfg.FetchMode,
		"jobs":       h.jobManager.GetStats(),
	}
	writeJSON(w, http.StatusOK, response)
}

// ExtractPrices extracts prices from a list of URLs
func (h *Handlers) ExtractPrices(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "At least one URL is required")
		return
	}
	if len(req.URLs) > h.cfg.MaxExtractURLs {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many URLs: maximum is %d per request", h.cfg.MaxExtractURLs))
		return
	}

	results := h.orchestrator.ExtractBatch(r.Context(), req.URLs)

	response := models.ExtractResponse{Results: results, Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case models.StatusSuccess:
			response.Successful++
		case models.StatusError:
			// no_price_found and timed_out are reported per entry but are
			// not extraction failures
			response.Failed++
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// CompareCSV runs a comparison batch from an uploaded CSV. With ?async=1
// the batch runs in the background and the job handle is returned instead.
func (h *Handlers) CompareCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "CSV file is required (field name: file)")
		return
	}
	defer file.Close()

	rows, err := ingest.ParseProducts(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("📄 Parsed %s: %d products", header.Filename, len(rows))

	h.saveProducts(rows)

	if r.URL.Query().Get("async") == "1" {
		job := h.jobManager.SubmitJob(rows)
		writeJSON(w, http.StatusAccepted, job.Snapshot())
		return
	}

	results, summary := h.orchestrator.RunBatch(r.Context(), rows)
	response := models.CompareResponse{Results: results, Summary: summary, Status: "completed"}
	h.saveReport("", summary, response)

	writeJSON(w, http.StatusOK, response)
}

// GetJobStatus returns the state of an async comparison job
func (h *Handlers) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	job, exists := h.jobManager.GetJob(jobID)
	if !exists {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	// The worker may still be mutating the job; encode a consistent copy
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// GetJobStats returns job manager statistics
func (h *Handlers) GetJobStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.jobManager.GetStats())
}

// GetLatestReport returns the most recent persisted comparison report
func (h *Handlers) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, http.StatusNotFound, "Report persistence is not enabled")
		return
	}

	record, err := h.reports.GetLatestReport()
	if err != nil {
		log.Printf("❌ Failed to load latest report: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load report")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "No reports saved yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(record.Report)
}

// saveProducts persists uploaded rows for scheduled re-runs; failures are
// logged, not fatal, since the request can still be served
func (h *Handlers) saveProducts(rows []models.ProductRow) {
	if h.reports == nil {
		return
	}
	if err := h.reports.SaveProducts(rows); err != nil {
		log.Printf("❌ Failed to save uploaded products: %v", err)
	}
}

func (h *Handlers) saveReport(jobID string, summary *models.BatchSummary, response models.CompareResponse) {
	if h.reports == nil {
		return
	}
	reportJSON, err := json.Marshal(response)
	if err != nil {
		log.Printf("❌ Failed to encode report: %v", err)
		return
	}
	if err := h.reports.SaveReport(jobID, summary, reportJSON); err != nil {
		log.Printf("❌ Failed to save report: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
