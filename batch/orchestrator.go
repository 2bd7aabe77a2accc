// Package batch runs the extraction pipeline over many URLs and products:
// a bounded worker pool per batch, per-URL timeouts, an overall batch
// deadline and the competitor comparison logic that turns extracted prices
// into per-product recommendations.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pricelens/extractor"
	"pricelens/models"
)

// Defaults mirror the production tuning: three concurrent page loads keep
// the shared browser responsive without tripping rate limits.
const (
	DefaultWorkers       = 3
	DefaultURLTimeout    = 45 * time.Second
	DefaultBatchDeadline = 10 * time.Minute
)

// Fetcher turns a URL into page HTML
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	Close()
}

// Orchestrator coordinates fetching, extraction and comparison for batches
type Orchestrator struct {
	fetcher       Fetcher
	extractor     *extractor.Extractor
	workers       int
	urlTimeout    time.Duration
	batchDeadline time.Duration
}

// NewOrchestrator wires a fetcher and extractor into a batch runner.
// Non-positive settings fall back to the defaults.
func NewOrchestrator(fetcher Fetcher, ex *extractor.Extractor, workers int, urlTimeout, batchDeadline time.Duration) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if urlTimeout <= 0 {
		urlTimeout = DefaultURLTimeout
	}
	if batchDeadline <= 0 {
		batchDeadline = DefaultBatchDeadline
	}
	return &Orchestrator{
		fetcher:       fetcher,
		extractor:     ex,
		workers:       workers,
		urlTimeout:    urlTimeout,
		batchDeadline: batchDeadline,
	}
}

// ExtractURL fetches and classifies one page. Failures are captured in the
// result's status and error fields, never returned, so a bad URL cannot
// sink its siblings in a batch.
func (o *Orchestrator) ExtractURL(ctx context.Context, url string) models.ExtractResult {
	urlCtx, cancel := context.WithTimeout(ctx, o.urlTimeout)
	defer cancel()

	htmlContent, err := o.fetcher.FetchHTML(urlCtx, url)
	if err != nil {
		status := models.StatusError
		if errors.Is(err, context.DeadlineExceeded) {
			status = models.StatusTimedOut
		}
		log.Printf("Extraction failed for %s: %v", url, err)
		return models.ExtractResult{URL: url, Status: status, Error: err.Error()}
	}

	profile := o.extractor.ExtractProfile(htmlContent, url)
	if !profile.HasPrice() {
		return models.ExtractResult{
			URL:          url,
			PriceDetails: profile,
			Status:       models.StatusNoPriceFound,
		}
	}

	return models.ExtractResult{
		URL:          url,
		Price:        profile.BestPrice,
		PriceDetails: profile,
		Status:       models.StatusSuccess,
	}
}

// ExtractBatch runs the pool over a URL list. Results keep input order.
// URLs still queued when the batch deadline hits are recorded as timed_out
// rather than dropped.
func (o *Orchestrator) ExtractBatch(ctx context.Context, urls []string) []models.ExtractResult {
	batchCtx, cancel := context.WithTimeout(ctx, o.batchDeadline)
	defer cancel()

	results := make([]models.ExtractResult, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if batchCtx.Err() != nil {
					results[i] = models.ExtractResult{
						URL:    urls[i],
						Status: models.StatusTimedOut,
						Error:  "batch deadline exceeded",
					}
					continue
				}
				results[i] = o.ExtractURL(batchCtx, urls[i])
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// CompareProduct extracts every competitor URL for one product and compares
// each against our price.
func (o *Orchestrator) CompareProduct(ctx context.Context, row models.ProductRow) models.ProductComparison {
	log.Printf("🔍 Comparing %s (%d competitor URLs)", row.ProductName, len(row.CompetitorURLs))

	extractResults := o.ExtractBatch(ctx, row.CompetitorURLs)

	comparison := models.ProductComparison{
		ProductName:       row.ProductName,
		OurPrice:          row.OurPrice,
		CompetitorResults: make([]models.CompetitorResult, 0, len(extractResults)),
		Status:            models.StatusSuccess,
	}

	summary := &models.ComparisonSummary{TotalCompetitors: len(extractResults)}

	for _, res := range extractResults {
		competitor := models.CompetitorResult{
			URL:          res.URL,
			Price:        res.Price,
			PriceDetails: res.PriceDetails,
			Comparison:   models.OutcomeUnknown,
			Status:       res.Status,
			Error:        res.Error,
		}

		if res.Status == models.StatusSuccess && res.Price != "" {
			summary.SuccessfulExtractions++

			outcome := CompareOutcome(row.OurPrice, res.Price)
			competitor.Comparison = outcome
			competitor.Details = FormatDetails(outcome, row.OurPrice, res.Price)
			attachCompetitorInfo(competitor.Details, res.PriceDetails)

			switch outcome {
			case models.OutcomeLower:
				summary.LowerThanCompetitors++
			case models.OutcomeHigher:
				summary.HigherThanCompetitors++
			case models.OutcomeEqual:
				summary.EqualToCompetitors++
			}
		}

		comparison.CompetitorResults = append(comparison.CompetitorResults, competitor)
	}

	// Ties count as competitive: matching the market is not a reason to move
	if summary.LowerThanCompetitors >= summary.HigherThanCompetitors {
		summary.OverallRecommendation = models.RecommendationCompetitive
	} else {
		summary.OverallRecommendation = models.RecommendationAdjust
	}
	comparison.Summary = summary

	if summary.SuccessfulExtractions == 0 && summary.TotalCompetitors > 0 {
		comparison.Status = models.StatusError
		comparison.Error = "no competitor prices could be extracted"
	}

	return comparison
}

// attachCompetitorInfo enriches comparison details with the competitor's
// classified price so the report can explain a sale-driven undercut
func attachCompetitorInfo(details *models.ComparisonDetails, profile *models.PriceProfile) {
	if details == nil || profile == nil {
		return
	}
	details.CompetitorPriceInfo = &models.CompetitorPriceInfo{
		ActualPrice:        profile.BestPrice,
		PriceType:          profile.PriceType,
		OriginalPrice:      profile.OriginalPrice,
		DiscountPercentage: profile.DiscountPercentage,
	}
	if profile.DiscountPercentage > 0 {
		details.CompetitorDiscount = fmt.Sprintf("Competitor has %v%% discount", profile.DiscountPercentage)
	}
}

// RunBatch compares every product row and aggregates the batch summary
func (o *Orchestrator) RunBatch(ctx context.Context, rows []models.ProductRow) ([]models.ProductComparison, *models.BatchSummary) {
	return o.RunBatchWithProgress(ctx, rows, nil)
}

// RunBatchWithProgress is RunBatch with a per-product completion callback,
// used by async jobs to report progress
func (o *Orchestrator) RunBatchWithProgress(ctx context.Context, rows []models.ProductRow, onProgress func(done, total int)) ([]models.ProductComparison, *models.BatchSummary) {
	started := time.Now()
	log.Printf("🚀 Starting comparison batch: %d products", len(rows))

	results := make([]models.ProductComparison, 0, len(rows))
	for i, row := range rows {
		results = append(results, o.CompareProduct(ctx, row))
		if onProgress != nil {
			onProgress(i+1, len(rows))
		}
	}

	summary := BuildBatchSummary(results)
	log.Printf("✅ Comparison batch finished in %v: %d/%d successful, status %s",
		time.Since(started).Round(time.Millisecond), summary.SuccessfulComparisons, summary.TotalProducts, summary.OverallStatus)

	return results, summary
}

// BuildBatchSummary aggregates product comparisons into the batch rollup.
// The batch is "good" when at least half the successfully compared products
// are competitive, otherwise "needs_review"; products whose comparison
// failed outright carry no signal either way.
func BuildBatchSummary(results []models.ProductComparison) *models.BatchSummary {
	summary := &models.BatchSummary{TotalProducts: len(results)}

	for _, result := range results {
		if result.Status != models.StatusSuccess || result.Summary == nil {
			continue
		}
		summary.SuccessfulComparisons++
		if result.Summary.OverallRecommendation == models.RecommendationCompetitive {
			summary.CompetitiveProducts++
		} else {
			summary.NeedsAdjustment++
		}
	}

	if summary.CompetitiveProducts*2 >= summary.SuccessfulComparisons {
		summary.OverallStatus = "good"
	} else {
		summary.OverallStatus = "needs_review"
	}

	return summary
}
