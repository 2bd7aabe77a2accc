package scheduler

import (
	"context"
	"encoding/json"
	"log"

	"github.com/robfig/cron/v3"

	"pricelens/models"
	"pricelens/repository"
)

// Rescheduler re-runs the saved product list on a cron schedule so reports
// stay current without re-uploading the CSV.
type Rescheduler struct {
	cron     *cron.Cron
	spec     string
	runBatch RunBatchFunc
	reports  *repository.ReportRepository
}

// NewRescheduler creates a rescheduler with the given cron spec
func NewRescheduler(spec string, runBatch RunBatchFunc, reports *repository.ReportRepository) *Rescheduler {
	return &Rescheduler{
		cron:     cron.New(),
		spec:     spec,
		runBatch: runBatch,
		reports:  reports,
	}
}

// Start registers the cron job and starts the scheduler
func (r *Rescheduler) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.runScheduledComparison); err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("⏰ Scheduled comparison re-runs: %s", r.spec)
	return nil
}

// Stop stops the scheduler
func (r *Rescheduler) Stop() {
	r.cron.Stop()
	log.Println("🛑 Rescheduler stopped")
}

// runScheduledComparison re-runs all active saved products and persists the
// resulting report
func (r *Rescheduler) runScheduledComparison() {
	products, err := r.reports.GetActiveProducts()
	if err != nil {
		log.Printf("❌ Scheduled comparison skipped: %v", err)
		return
	}
	if len(products) == 0 {
		log.Println("⏰ Scheduled comparison skipped: no saved products")
		return
	}

	log.Printf("⏰ Running scheduled comparison for %d products", len(products))

	rows := make([]models.ProductRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, product.Row())
	}

	results, summary := r.runBatch(context.Background(), rows, nil)

	report := models.CompareResponse{Results: results, Summary: summary, Status: "completed"}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		log.Printf("❌ Failed to encode scheduled report: %v", err)
		return
	}
	if err := r.reports.SaveReport("", summary, reportJSON); err != nil {
		log.Printf("❌ Failed to save scheduled report: %v", err)
		return
	}

	log.Printf("✅ Scheduled comparison saved: %d/%d successful, status %s",
		summary.SuccessfulComparisons, summary.TotalProducts, summary.OverallStatus)
}
