package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelens/models"
)

func stubRunBatch(ctx context.Context, rows []models.ProductRow, onProgress func(done, total int)) ([]models.ProductComparison, *models.BatchSummary) {
	results := make([]models.ProductComparison, 0, len(rows))
	for i, row := range rows {
		results = append(results, models.ProductComparison{
			ProductName: row.ProductName,
			OurPrice:    row.OurPrice,
			Status:      models.StatusSuccess,
		})
		if onProgress != nil {
			onProgress(i+1, len(rows))
		}
	}
	return results, &models.BatchSummary{
		TotalProducts:         len(rows),
		SuccessfulComparisons: len(rows),
		OverallStatus:         "good",
	}
}

func TestJobManagerRunsSubmittedJob(t *testing.T) {
	jm := NewJobManager(stubRunBatch, 1)
	defer jm.Stop()

	rows := []models.ProductRow{
		{ProductName: "Desk", OurPrice: "£100.00", CompetitorURLs: []string{"https://rival.test/a"}},
	}
	job := jm.SubmitJob(rows)

	require.Eventually(t, job.IsCompleted, 2*time.Second, 10*time.Millisecond)

	snapshot := job.Snapshot()
	assert.Equal(t, models.JobStatusCompleted, snapshot.Status)
	assert.Equal(t, 100, snapshot.Progress)
	require.Len(t, snapshot.Results, 1)
	require.NotNil(t, snapshot.Summary)
	assert.Equal(t, "good", snapshot.Summary.OverallStatus)
}

func TestJobManagerGetJob(t *testing.T) {
	jm := NewJobManager(stubRunBatch, 1)
	defer jm.Stop()

	job := jm.SubmitJob([]models.ProductRow{{ProductName: "Lamp", OurPrice: "£20.00"}})

	found, exists := jm.GetJob(job.ID)
	require.True(t, exists)
	assert.Equal(t, job.ID, found.ID)

	_, exists = jm.GetJob("job_does_not_exist")
	assert.False(t, exists)
}

func TestJobManagerCleanupOldJobs(t *testing.T) {
	jm := NewJobManager(stubRunBatch, 1)
	defer jm.Stop()

	job := jm.SubmitJob([]models.ProductRow{{ProductName: "Vase", OurPrice: "£30.00"}})
	require.Eventually(t, job.IsCompleted, 2*time.Second, 10*time.Millisecond)

	jm.CleanupOldJobs(0)

	_, exists := jm.GetJob(job.ID)
	assert.False(t, exists)
}

func TestJobManagerStats(t *testing.T) {
	jm := NewJobManager(stubRunBatch, 2)
	defer jm.Stop()

	job := jm.SubmitJob([]models.ProductRow{{ProductName: "Desk", OurPrice: "£10.00"}})
	require.Eventually(t, job.IsCompleted, 2*time.Second, 10*time.Millisecond)

	stats := jm.GetStats()
	assert.Equal(t, 1, stats["total_jobs"])
	assert.Equal(t, 2, stats["max_workers"])
}
