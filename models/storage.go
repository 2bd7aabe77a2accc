package models

import "time"

// SavedProduct is a persisted comparison product row
type SavedProduct struct {
	ID             int       `json:"id"`
	ProductName    string    `json:"product_name"`
	OurPrice       string    `json:"our_price"`
	CompetitorURLs []string  `json:"competitor_urls"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Row converts a saved product back to the batch input shape
func (p *SavedProduct) Row() ProductRow {
	return ProductRow{
		ProductName:    p.ProductName,
		OurPrice:       p.OurPrice,
		CompetitorURLs: p.CompetitorURLs,
	}
}

// ReportRecord is a persisted comparison report
type ReportRecord struct {
	ID        int           `json:"id"`
	JobID     string        `json:"job_id,omitempty"`
	Summary   *BatchSummary `json:"summary"`
	Report    []byte        `json:"-"` // raw JSON of the full CompareResponse
	CreatedAt time.Time     `json:"created_at"`
}
