package models

// PriceType classifies how the best price was derived
const (
	PriceTypeSale       = "sale"
	PriceTypeRegular    = "regular"
	PriceTypeDiscounted = "discounted"
	PriceTypeUncertain  = "uncertain"
	PriceTypeError      = "error"
	PriceTypeUnknown    = "unknown"
)

// Extraction statuses reported per URL
const (
	StatusSuccess      = "success"
	StatusNoPriceFound = "no_price_found"
	StatusError        = "error"
	StatusTimedOut     = "timed_out"
)

// PriceProfile is the final price information extracted from a single page.
// Prices are kept as the raw matched strings (e.g. "€476,00") so the report
// shows exactly what the page showed; numeric comparison happens separately.
type PriceProfile struct {
	CurrentPrice       string  `json:"current_price,omitempty"`
	OriginalPrice      string  `json:"original_price,omitempty"`
	SalePrice          string  `json:"sale_price,omitempty"`
	BestPrice          string  `json:"best_price,omitempty"`
	PriceType          string  `json:"price_type"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
}

// HasPrice returns true if the profile carries a usable best price
func (p *PriceProfile) HasPrice() bool {
	return p.BestPrice != ""
}

// NewErrorProfile returns a profile for a page that could not be processed
func NewErrorProfile() *PriceProfile {
	return &PriceProfile{PriceType: PriceTypeError}
}

// ComparisonOutcome is the relative ordering of our price vs a competitor's
type ComparisonOutcome string

const (
	OutcomeLower   ComparisonOutcome = "lower"  // we are cheaper
	OutcomeHigher  ComparisonOutcome = "higher" // we are more expensive
	OutcomeEqual   ComparisonOutcome = "equal"
	OutcomeUnknown ComparisonOutcome = "unknown"
)

// CompetitorPriceInfo carries the classified price details for a competitor
type CompetitorPriceInfo struct {
	ActualPrice        string  `json:"actual_price"`
	PriceType          string  `json:"price_type"`
	OriginalPrice      string  `json:"original_price,omitempty"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
}

// ComparisonDetails is the human-facing summary of a single comparison
type ComparisonDetails struct {
	Status              string               `json:"status"`
	Message             string               `json:"message"`
	Difference          string               `json:"difference"`
	Recommendation      string               `json:"recommendation"`
	CompetitorPriceInfo *CompetitorPriceInfo `json:"competitor_price_info,omitempty"`
	CompetitorDiscount  string               `json:"competitor_discount,omitempty"`
}

// ExtractResult is the per-URL entry returned by the extract endpoint
type ExtractResult struct {
	URL          string        `json:"url"`
	Price        string        `json:"price,omitempty"`
	PriceDetails *PriceProfile `json:"price_details,omitempty"`
	Status       string        `json:"status"`
	Error        string        `json:"error,omitempty"`
}

// CompetitorResult is one competitor URL's outcome within a product comparison
type CompetitorResult struct {
	URL          string             `json:"url"`
	Price        string             `json:"price,omitempty"`
	PriceDetails *PriceProfile      `json:"price_details,omitempty"`
	Comparison   ComparisonOutcome  `json:"comparison"`
	Details      *ComparisonDetails `json:"details,omitempty"`
	Status       string             `json:"status"`
	Error        string             `json:"error,omitempty"`
}

// ComparisonSummary aggregates one product's competitor results
type ComparisonSummary struct {
	TotalCompetitors      int    `json:"total_competitors"`
	SuccessfulExtractions int    `json:"successful_extractions"`
	LowerThanCompetitors  int    `json:"lower_than_competitors"`
	HigherThanCompetitors int    `json:"higher_than_competitors"`
	EqualToCompetitors    int    `json:"equal_to_competitors"`
	OverallRecommendation string `json:"overall_recommendation"`
}

// Per-product recommendation values
const (
	RecommendationCompetitive = "competitive"
	RecommendationAdjust      = "consider_adjustment"
)

// ProductComparison is the full report for one product row
type ProductComparison struct {
	ProductName       string             `json:"product_name"`
	OurPrice          string             `json:"our_price"`
	CompetitorResults []CompetitorResult `json:"competitor_results"`
	Summary           *ComparisonSummary `json:"summary,omitempty"`
	Status            string             `json:"status"`
	Error             string             `json:"error,omitempty"`
}

// BatchSummary aggregates a whole comparison batch
type BatchSummary struct {
	TotalProducts         int    `json:"total_products"`
	SuccessfulComparisons int    `json:"successful_comparisons"`
	CompetitiveProducts   int    `json:"competitive_products"`
	NeedsAdjustment       int    `json:"needs_adjustment"`
	OverallStatus         string `json:"overall_status"` // "good" or "needs_review"
}

// ProductRow is one validated row from an uploaded comparison CSV
type ProductRow struct {
	ProductName    string   `json:"product_name"`
	OurPrice       string   `json:"our_price"`
	CompetitorURLs []string `json:"competitor_urls"`
}

// ExtractRequest is the body for the extract endpoint
type ExtractRequest struct {
	URLs []string `json:"urls"`
}

// ExtractResponse wraps the per-URL results with counts
type ExtractResponse struct {
	Results    []ExtractResult `json:"results"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
}

// CompareResponse is the full response for a CSV comparison batch
type CompareResponse struct {
	Results []ProductComparison `json:"results"`
	Summary *BatchSummary       `json:"summary"`
	Status  string              `json:"status"`
}
