package models

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// JobStatus represents the status of an async comparison job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ComparisonJob represents an async batch comparison run. The worker mutates
// it while status polls read it, so all access goes through the methods;
// readers wanting a consistent view take a Snapshot.
type ComparisonJob struct {
	mu *sync.RWMutex

	ID          string              `json:"id"`
	Status      JobStatus           `json:"status"`
	Progress    int                 `json:"progress"` // 0-100
	Message     string              `json:"message"`
	Products    []ProductRow        `json:"-"`
	Results     []ProductComparison `json:"results,omitempty"`
	Summary     *BatchSummary       `json:"summary,omitempty"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// NewComparisonJob creates a queued job for the given product rows
func NewComparisonJob(products []ProductRow) *ComparisonJob {
	return &ComparisonJob{
		mu:        &sync.RWMutex{},
		ID:        generateJobID(),
		Status:    JobStatusQueued,
		Progress:  0,
		Message:   "Job queued for processing",
		Products:  products,
		CreatedAt: time.Now(),
	}
}

// Snapshot returns a consistent copy of the job for encoding
func (j *ComparisonJob) Snapshot() ComparisonJob {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return *j
}

// Start marks the job as processing
func (j *ComparisonJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobStatusProcessing
	j.Progress = 0
	j.Message = "Starting comparison..."
	now := time.Now()
	j.StartedAt = &now
}

// UpdateProgress updates the job progress
func (j *ComparisonJob) UpdateProgress(progress int, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress = progress
	j.Message = message
}

// Complete marks the job as completed with its report
func (j *ComparisonJob) Complete(results []ProductComparison, summary *BatchSummary) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobStatusCompleted
	j.Progress = 100
	j.Message = "Comparison completed"
	j.Results = results
	j.Summary = summary
	now := time.Now()
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *ComparisonJob) Fail(reason string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobStatusFailed
	j.Message = "Job failed"
	j.Error = reason
	now := time.Now()
	j.CompletedAt = &now
}

// IsActive returns true if the job is queued or processing
func (j *ComparisonJob) IsActive() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status == JobStatusQueued || j.Status == JobStatusProcessing
}

// IsCompleted returns true if the job finished, successfully or not
func (j *ComparisonJob) IsCompleted() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// Duration returns how long the job ran
func (j *ComparisonJob) Duration() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.StartedAt == nil {
		return 0
	}
	if j.CompletedAt != nil {
		return j.CompletedAt.Sub(*j.StartedAt)
	}
	return time.Since(*j.StartedAt)
}

func generateJobID() string {
	return fmt.Sprintf("job_%d_%04d", time.Now().UnixNano(), rand.Intn(10000))
}
