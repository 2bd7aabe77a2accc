package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Region scoring constants. The weights were tuned against live retailer
// pages; they are deliberately asymmetric (a negative keyword outweighs a
// positive one) because recommendation rails reuse product-y class names.
const (
	regionPositiveKeywordScore = 15
	regionPricePointScore      = 5
	regionPriceScoreCap        = 20
	regionStructuredBonus      = 25
	regionMediumTextBonus      = 10 // text > 500 chars
	regionLargeTextBonus       = 15 // text > 1000 chars
	regionNegativeKeywordScore = -20
	regionLinkFarmPenalty      = -10 // more than 5 outbound links
	regionAcceptThreshold      = 30
)

// RegionDetector locates the sub-tree most likely to be the primary
// product's own content area, as opposed to recommendation rails.
type RegionDetector struct {
	rules *RuleTables
}

// NewRegionDetector creates a detector using the given rule tables
func NewRegionDetector(rules *RuleTables) *RegionDetector {
	return &RegionDetector{rules: rules}
}

// Detect returns the main product area of the page. When no container
// qualifies it falls back to the whole document; precision degrades but the
// scan still runs.
func (d *RegionDetector) Detect(doc *goquery.Document) *goquery.Selection {
	// Pass 1: ranked selectors for known main-product containers
	for _, selector := range d.rules.MainRegionSelectors {
		area := doc.Find(selector).First()
		if area.Length() == 0 {
			continue
		}
		// Navigation chrome can match these selectors too; require at least
		// one purchase-intent keyword before trusting the container.
		text := strings.ToLower(area.Text())
		if containsAny(text, d.rules.PurchaseIntentKeywords) {
			return area
		}
	}

	// Pass 2: score every block container that carries a class attribute
	var best *goquery.Selection
	bestScore := regionAcceptThreshold

	doc.Find("div[class], section[class], article[class], main[class]").Each(func(_ int, area *goquery.Selection) {
		if score := d.ScoreArea(area); score > bestScore {
			best = area
			bestScore = score
		}
	})
	if best != nil {
		return best
	}

	return doc.Selection
}

// ScoreArea rates a container's likelihood of being the main product area
func (d *RegionDetector) ScoreArea(area *goquery.Selection) int {
	score := 0
	classes := classAttr(area)

	for _, keyword := range d.rules.RegionPositiveKeywords {
		if strings.Contains(classes, keyword) {
			score += regionPositiveKeywordScore
		}
	}

	pricePoints := countPriceTextNodes(area) * regionPricePointScore
	if pricePoints > regionPriceScoreCap {
		pricePoints = regionPriceScoreCap
	}
	score += pricePoints

	if isProductItemtype(area) {
		score += regionStructuredBonus
	}

	textLength := len(strings.TrimSpace(area.Text()))
	if textLength > 1000 {
		score += regionLargeTextBonus
	} else if textLength > 500 {
		score += regionMediumTextBonus
	}

	for _, keyword := range d.rules.RegionNegativeKeywords {
		if strings.Contains(classes, keyword) {
			score += regionNegativeKeywordScore
		}
	}

	// Many outbound links means a listing, not a detail page
	if countLinks(area) > 5 {
		score += regionLinkFarmPenalty
	}

	return score
}
