package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"pricelens/database"
	"pricelens/models"
)

type ReportRepository struct{}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

// SaveProducts stores the uploaded product rows for scheduled re-runs.
// Existing active rows are deactivated first so the schedule always follows
// the latest upload.
func (r *ReportRepository) SaveProducts(rows []models.ProductRow) error {
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE comparison_products SET is_active = false, updated_at = NOW() WHERE is_active`); err != nil {
		return fmt.Errorf("failed to deactivate previous products: %v", err)
	}

	query := `
		INSERT INTO comparison_products (product_name, our_price, competitor_urls)
		VALUES ($1, $2, $3)
	`
	for _, row := range rows {
		if _, err := tx.Exec(query, row.ProductName, row.OurPrice, pq.Array(row.CompetitorURLs)); err != nil {
			return fmt.Errorf("failed to save product %q: %v", row.ProductName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %v", err)
	}
	return nil
}

// GetActiveProducts returns the products to re-run on schedule
func (r *ReportRepository) GetActiveProducts() ([]models.SavedProduct, error) {
	query := `
		SELECT id, product_name, our_price, competitor_urls, is_active, created_at, updated_at
		FROM comparison_products
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active products: %v", err)
	}
	defer rows.Close()

	var products []models.SavedProduct
	for rows.Next() {
		var product models.SavedProduct
		err := rows.Scan(
			&product.ID, &product.ProductName, &product.OurPrice,
			pq.Array(&product.CompetitorURLs),
			&product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// SaveReport persists a completed comparison report
func (r *ReportRepository) SaveReport(jobID string, summary *models.BatchSummary, reportJSON []byte) error {
	query := `
		INSERT INTO comparison_reports (job_id, total_products, successful_comparisons, competitive_products, needs_adjustment, overall_status, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.DB.Exec(query,
		nullableString(jobID),
		summary.TotalProducts, summary.SuccessfulComparisons,
		summary.CompetitiveProducts, summary.NeedsAdjustment,
		summary.OverallStatus, reportJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %v", err)
	}
	return nil
}

// GetLatestReport returns the most recent comparison report, or nil when
// none has been saved yet
func (r *ReportRepository) GetLatestReport() (*models.ReportRecord, error) {
	query := `
		SELECT id, COALESCE(job_id, ''), total_products, successful_comparisons, competitive_products, needs_adjustment, overall_status, report, created_at
		FROM comparison_reports
		ORDER BY created_at DESC
		LIMIT 1
	`

	record := models.ReportRecord{Summary: &models.BatchSummary{}}
	err := database.DB.QueryRow(query).Scan(
		&record.ID, &record.JobID,
		&record.Summary.TotalProducts, &record.Summary.SuccessfulComparisons,
		&record.Summary.CompetitiveProducts, &record.Summary.NeedsAdjustment,
		&record.Summary.OverallStatus, &record.Report, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %v", err)
	}

	return &record, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
