package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PriceKind is the semantic role a scanned value is assumed to play
type PriceKind string

const (
	KindSale     PriceKind = "sale"
	KindOriginal PriceKind = "original"
	KindCurrent  PriceKind = "current"
	KindUnknown  PriceKind = "unknown"
)

// scanKinds is the scan order: sale first, general current selectors last
var scanKinds = []PriceKind{KindSale, KindOriginal, KindCurrent}

// PriceCandidate is one price-bearing element found during scanning. It is
// created by the scanner, scored once, consumed by the reconciler and then
// discarded; nothing mutates it after scoring.
type PriceCandidate struct {
	RawText    string
	Value      string // the matched price substring, e.g. "€476,00"
	Kind       PriceKind
	CrossedOut bool
	Confidence int
	Selector   string
	Element    *goquery.Selection
}

// PriceCandidateScanner walks the detected product area applying per-kind
// selector families and collecting raw price-bearing elements.
type PriceCandidateScanner struct {
	rules      *RuleTables
	classifier *SuggestionClassifier
	scorer     *ConfidenceScorer
}

// NewPriceCandidateScanner creates a scanner using the given collaborators
func NewPriceCandidateScanner(rules *RuleTables, classifier *SuggestionClassifier, scorer *ConfidenceScorer) *PriceCandidateScanner {
	return &PriceCandidateScanner{rules: rules, classifier: classifier, scorer: scorer}
}

// Scan collects scored price candidates per kind from the product area.
// When no selector yields anything, a document-wide text scan runs as a last
// resort, still filtered through suggestion and crossed-out checks.
func (s *PriceCandidateScanner) Scan(doc *goquery.Document, area *goquery.Selection) map[PriceKind][]*PriceCandidate {
	candidates := make(map[PriceKind][]*PriceCandidate)

	for _, kind := range scanKinds {
		for _, selector := range s.selectorsFor(kind) {
			area.Find(selector).Each(func(_ int, el *goquery.Selection) {
				if candidate := s.examine(el, kind, selector); candidate != nil {
					candidates[kind] = append(candidates[kind], candidate)
				}
			})
		}
	}

	if len(candidates) == 0 {
		candidates[KindCurrent] = s.textScan(doc, area)
	}

	return candidates
}

// selectorsFor returns the ordered selector family for a price kind
func (s *PriceCandidateScanner) selectorsFor(kind PriceKind) []string {
	switch kind {
	case KindSale:
		return s.rules.SaleSelectors
	case KindOriginal:
		return s.rules.OriginalSelectors
	default:
		return s.rules.CurrentSelectors
	}
}

// examine turns a matched element into a scored candidate, or nil if the
// element must be skipped
func (s *PriceCandidateScanner) examine(el *goquery.Selection, kind PriceKind, selector string) *PriceCandidate {
	if s.classifier.IsSuggested(el) {
		return nil
	}
	if isDisplayNone(el) {
		return nil
	}

	crossedOut := s.IsCrossedOut(el)

	// A crossed-out value can never be the active selling price
	if crossedOut && (kind == KindSale || kind == KindCurrent) {
		return nil
	}

	text := strings.TrimSpace(el.Text())
	value, ok := FindPrice(text)
	if !ok {
		return nil
	}

	return &PriceCandidate{
		RawText:    text,
		Value:      value,
		Kind:       kind,
		CrossedOut: crossedOut,
		Confidence: s.scorer.Score(el, kind, crossedOut),
		Selector:   selector,
		Element:    el,
	}
}

// textScan is the last-resort pass: every price-bearing text node in the
// area, scored as a current price. Crossed-out values are dropped here; the
// reconciler's final pooling step handles pages where nothing else exists.
func (s *PriceCandidateScanner) textScan(doc *goquery.Document, area *goquery.Selection) []*PriceCandidate {
	var candidates []*PriceCandidate

	for _, node := range priceTextParents(area) {
		el := doc.FindNodes(node)
		if el.Length() == 0 {
			continue
		}
		if s.classifier.IsSuggested(el) {
			continue
		}
		if s.IsCrossedOut(el) {
			continue
		}

		text := strings.TrimSpace(el.Text())
		value, ok := FindPrice(text)
		if !ok {
			continue
		}

		candidates = append(candidates, &PriceCandidate{
			RawText:    text,
			Value:      value,
			Kind:       KindCurrent,
			CrossedOut: false,
			Confidence: s.scorer.Score(el, KindCurrent, false),
			Selector:   "text-scan",
			Element:    el,
		})
	}

	return candidates
}

// IsCrossedOut reports whether an element renders its price struck through:
// explicit strikethrough tags, crossed-out indicator keywords on the element
// or its parent, or an inline line-through declaration.
func (s *PriceCandidateScanner) IsCrossedOut(el *goquery.Selection) bool {
	tag := tagName(el)
	if tag == "s" || tag == "del" || tag == "strike" {
		return true
	}
	parent := el.Parent()
	if parentTag := tagName(parent); parentTag == "s" || parentTag == "del" || parentTag == "strike" {
		return true
	}

	combined := classAttr(el) + " " + styleAttr(el) + " " + classAttr(parent) + " " + styleAttr(parent)
	if containsAny(combined, s.rules.CrossedOutIndicators) {
		return true
	}

	style := strings.ReplaceAll(styleAttr(el), " ", "")
	return strings.Contains(style, "text-decoration:line-through")
}
