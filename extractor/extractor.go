// Package extractor implements the price extraction and classification
// pipeline: structured-data fast path, main-product-region detection,
// suggested-region exclusion, candidate scanning, confidence scoring and
// price reconciliation. It is a pure function of (HTML, URL); fetching,
// ingestion and batch orchestration live elsewhere.
package extractor

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricelens/models"
)

// Extractor ties the pipeline stages together
type Extractor struct {
	rules      *RuleTables
	structured *StructuredDataExtractor
	regions    *RegionDetector
	scanner    *PriceCandidateScanner
	reconciler *PriceReconciler
}

// New creates an extractor with the tuned production rule tables
func New() *Extractor {
	return NewWithRules(DefaultRuleTables())
}

// NewWithRules creates an extractor with custom rule tables, mainly for
// tuning experiments and tests
func NewWithRules(rules *RuleTables) *Extractor {
	classifier := NewSuggestionClassifier(rules)
	scorer := NewConfidenceScorer(rules, classifier)
	return &Extractor{
		rules:      rules,
		structured: &StructuredDataExtractor{},
		regions:    NewRegionDetector(rules),
		scanner:    NewPriceCandidateScanner(rules, classifier, scorer),
		reconciler: &PriceReconciler{},
	}
}

// ExtractProfile runs the full pipeline on one page. It never returns an
// error: unusable pages yield a profile with price_type "error" so batch
// callers always get one entry per URL.
func (e *Extractor) ExtractProfile(htmlContent, url string) *models.PriceProfile {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.Printf("Failed to parse HTML from %s: %v", url, err)
		return models.NewErrorProfile()
	}

	// Fast path: embedded product metadata is trusted unconditionally and
	// skips DOM detection entirely
	if profile := e.structured.Extract(doc); profile != nil && profile.HasPrice() {
		return profile
	}

	area := e.regions.Detect(doc)
	candidates := e.scanner.Scan(doc, area)
	return e.reconciler.Reconcile(candidates)
}
