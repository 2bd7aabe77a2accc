// Package scheduler runs async comparison jobs and the periodic re-run of
// saved product lists.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"pricelens/models"
)

// RunBatchFunc executes a comparison batch and returns the report
type RunBatchFunc func(ctx context.Context, rows []models.ProductRow, onProgress func(done, total int)) ([]models.ProductComparison, *models.BatchSummary)

// JobManager manages async comparison jobs
type JobManager struct {
	jobs       map[string]*models.ComparisonJob
	jobQueue   chan *models.ComparisonJob
	workers    int
	maxWorkers int
	runBatch   RunBatchFunc
	mutex      sync.RWMutex
	stopChan   chan bool
}

// NewJobManager creates a job manager. A single comparison job already
// fans out over the page-fetch pool, so maxWorkers stays small.
func NewJobManager(runBatch RunBatchFunc, maxWorkers int) *JobManager {
	jm := &JobManager{
		jobs:       make(map[string]*models.ComparisonJob),
		jobQueue:   make(chan *models.ComparisonJob, 100),
		workers:    0,
		maxWorkers: maxWorkers,
		runBatch:   runBatch,
		stopChan:   make(chan bool),
	}

	go jm.processJobs()
	log.Printf("🚀 Job manager started with %d max workers", maxWorkers)
	return jm
}

// SubmitJob queues a comparison batch and returns the job handle
func (jm *JobManager) SubmitJob(products []models.ProductRow) *models.ComparisonJob {
	job := models.NewComparisonJob(products)

	jm.mutex.Lock()
	jm.jobs[job.ID] = job
	jm.mutex.Unlock()

	select {
	case jm.jobQueue <- job:
		log.Printf("📝 Job %s submitted with %d products", job.ID, len(products))
	default:
		job.Fail("Job queue is full")
		log.Printf("❌ Failed to submit job %s - queue full", job.ID)
	}

	return job
}

// GetJob returns a job by ID
func (jm *JobManager) GetJob(jobID string) (*models.ComparisonJob, bool) {
	jm.mutex.RLock()
	defer jm.mutex.RUnlock()

	job, exists := jm.jobs[jobID]
	return job, exists
}

// GetActiveJobs returns all queued or processing jobs
func (jm *JobManager) GetActiveJobs() []*models.ComparisonJob {
	jm.mutex.RLock()
	defer jm.mutex.RUnlock()

	var activeJobs []*models.ComparisonJob
	for _, job := range jm.jobs {
		if job.IsActive() {
			activeJobs = append(activeJobs, job)
		}
	}

	return activeJobs
}

// CleanupOldJobs removes completed jobs older than maxAge
func (jm *JobManager) CleanupOldJobs(maxAge time.Duration) {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for jobID, job := range jm.jobs {
		if job.IsCompleted() && job.CreatedAt.Before(cutoff) {
			delete(jm.jobs, jobID)
			log.Printf("🧹 Cleaned up old job: %s", jobID)
		}
	}
}

// processJobs dispatches queued jobs to workers
func (jm *JobManager) processJobs() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case job := <-jm.jobQueue:
			if jm.claimWorkerSlot() {
				go jm.worker(job)
			} else {
				// Re-queue when all workers are busy
				go func() {
					time.Sleep(1 * time.Second)
					select {
					case jm.jobQueue <- job:
						log.Printf("🔄 Re-queued job %s (max workers reached)", job.ID)
					default:
						job.Fail("System overloaded, unable to process job")
						log.Printf("❌ Failed to re-queue job %s", job.ID)
					}
				}()
			}

		case <-ticker.C:
			jm.CleanupOldJobs(1 * time.Hour)

		case <-jm.stopChan:
			log.Println("🛑 Job manager stopped")
			return
		}
	}
}

// claimWorkerSlot reserves a worker slot, returning false when all are busy
func (jm *JobManager) claimWorkerSlot() bool {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()
	if jm.workers >= jm.maxWorkers {
		return false
	}
	jm.workers++
	return true
}

// releaseWorkerSlot frees a worker slot and returns the remaining count
func (jm *JobManager) releaseWorkerSlot() int {
	jm.mutex.Lock()
	defer jm.mutex.Unlock()
	jm.workers--
	return jm.workers
}

// worker runs a single comparison job to completion
func (jm *JobManager) worker(job *models.ComparisonJob) {
	defer func() {
		log.Printf("👷 Worker finished, active workers: %d", jm.releaseWorkerSlot())
	}()

	log.Printf("👷 Worker started processing job %s (%d products)", job.ID, len(job.Products))
	job.Start()

	results, summary := jm.runBatch(context.Background(), job.Products, func(done, total int) {
		progress := done * 100 / total
		job.UpdateProgress(progress, fmt.Sprintf("Compared %d of %d products", done, total))
	})

	job.Complete(results, summary)
	log.Printf("✅ Job %s completed in %v", job.ID, job.Duration())
}

// Stop stops the job manager
func (jm *JobManager) Stop() {
	close(jm.stopChan)
	log.Println("🛑 Job manager stopping...")
}

// GetStats returns job manager statistics
func (jm *JobManager) GetStats() map[string]interface{} {
	jm.mutex.RLock()
	defer jm.mutex.RUnlock()

	stats := map[string]interface{}{
		"total_jobs":     len(jm.jobs),
		"active_workers": jm.workers,
		"max_workers":    jm.maxWorkers,
		"queue_size":     len(jm.jobQueue),
	}

	statusCounts := make(map[string]int)
	for _, job := range jm.jobs {
		statusCounts[string(job.Status)]++
	}
	stats["jobs_by_status"] = statusCounts

	return stats
}
