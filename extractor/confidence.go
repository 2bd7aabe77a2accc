package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Confidence scoring constants. Every value here came out of empirical
// tuning against live retailer pages; they are magic numbers on purpose.
const (
	baseConfidence = 50

	crossedOutPenalty     = 30
	kindAgreementBonus    = 20
	kindConflictPenalty   = 15
	fontSizeBonus         = 10
	priceContainerBonus   = 15
	structuredAncestorMin = 20 // schema.org Product markup on any ancestor
	dataAttrMarkerMin     = 15 // data attribute naming product/main/detail/info

	// The suggestion penalty must dominate the sum of every bonus a decoy
	// can realistically collect; 70 keeps suggested-region prices from ever
	// outranking a main-area price under normal scoring variance.
	suggestionPenalty = 70

	regionWalkLevels = 7
	depthWalkCap     = 15

	shallowDepthBonus  = 15 // depth < 6
	mediumDepthBonus   = 8  // depth < 10
	deepDepthBonus     = 3  // depth < 15
	earlySiblingBonus  = 5  // among the first three siblings
	earlySiblingWindow = 3

	crowdedParentPenalty   = 20 // more than 4 price texts in the parent
	busyParentPenalty      = 10 // more than 2
	largeParentBonus       = 8  // parent text > 1000 chars
	mediumParentBonus      = 5  // parent text > 500 chars
	tinyParentPenalty      = 5  // parent text < 100 chars
	cleanSaleBonus         = 5  // non-crossed sale candidate
	cleanCurrentBonus      = 3  // non-crossed current candidate
	dataAttrProductMarkers = "product main detail info"
)

// ConfidenceScorer assigns each candidate a 0-100 estimate that it is the
// genuine target-product price.
type ConfidenceScorer struct {
	rules      *RuleTables
	classifier *SuggestionClassifier
}

// NewConfidenceScorer creates a scorer using the given rule tables
func NewConfidenceScorer(rules *RuleTables, classifier *SuggestionClassifier) *ConfidenceScorer {
	return &ConfidenceScorer{rules: rules, classifier: classifier}
}

// Score rates one price-bearing element for the asserted kind. The result
// is clamped to [0,100].
func (cs *ConfidenceScorer) Score(el *goquery.Selection, kind PriceKind, crossedOut bool) int {
	confidence := cs.scoreElement(el, kind, crossedOut)

	// Hard penalty, not a soft signal: a suggested-region price must
	// virtually never outrank a main-area price, so remaining bonuses are
	// skipped entirely.
	if cs.classifier.IsSuggested(el) {
		return clampConfidence(confidence - suggestionPenalty)
	}

	confidence += cs.regionBonus(el)
	confidence += cs.positionBonus(el)
	confidence += cs.containerAdjustment(el)

	if kind == KindSale && !crossedOut {
		confidence += cleanSaleBonus
	} else if kind == KindCurrent && !crossedOut {
		confidence += cleanCurrentBonus
	}

	return clampConfidence(confidence)
}

// scoreElement applies the textual and visual cues local to the element
func (cs *ConfidenceScorer) scoreElement(el *goquery.Selection, kind PriceKind, crossedOut bool) int {
	confidence := baseConfidence

	if crossedOut {
		confidence -= crossedOutPenalty
	}

	cues := classAttr(el) + " " + strings.ToLower(el.Text())
	hasSaleCue := containsAny(cues, cs.rules.SaleIndicators)
	hasOriginalCue := containsAny(cues, cs.rules.OriginalIndicators)

	switch kind {
	case KindSale:
		if hasSaleCue {
			confidence += kindAgreementBonus
		}
		if hasOriginalCue {
			confidence -= kindConflictPenalty
		}
	case KindOriginal:
		if hasOriginalCue {
			confidence += kindAgreementBonus
		}
		if hasSaleCue {
			confidence -= kindConflictPenalty
		}
	}

	style := styleAttr(el)
	if strings.Contains(style, "font-size") {
		if containsAny(style, []string{"large", "xl", "2em", "1.5em"}) {
			confidence += fontSizeBonus
		} else if containsAny(style, []string{"small", "xs", "0.8em", "0.9em"}) {
			confidence -= fontSizeBonus
		}
	}

	parentClasses := classAttr(el.Parent())
	if strings.Contains(parentClasses, "price-box") || strings.Contains(parentClasses, "price-container") {
		confidence += priceContainerBonus
	}

	return confidence
}

// regionBonus walks ancestors looking for main-product markers. The first
// marker matched per level sets that level's weight; the maximum across all
// levels is what gets added, so stacked wrappers don't compound.
func (cs *ConfidenceScorer) regionBonus(el *goquery.Selection) int {
	bonus := 0
	current := el

	for level := 0; level < regionWalkLevels; level++ {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		current = parent
		identity := classAttr(current) + " " + idAttr(current)

		matched := false
		for _, marker := range cs.rules.PrimaryMarkers {
			if strings.Contains(identity, marker.Pattern) {
				if marker.Weight > bonus {
					bonus = marker.Weight
				}
				matched = true
				break
			}
		}
		if !matched {
			for _, marker := range cs.rules.SecondaryMarkers {
				if strings.Contains(identity, marker.Pattern) {
					if marker.Weight > bonus {
						bonus = marker.Weight
					}
					break
				}
			}
		}

		if isProductItemtype(current) && bonus < structuredAncestorMin {
			bonus = structuredAncestorMin
		}

		for _, attr := range cs.rules.ProductDataAttrs {
			value, ok := current.Attr(attr)
			if !ok {
				continue
			}
			if containsAny(strings.ToLower(value), strings.Fields(dataAttrProductMarkers)) {
				if bonus < dataAttrMarkerMin {
					bonus = dataAttrMarkerMin
				}
				break
			}
		}
	}

	return bonus
}

// positionBonus favors shallow, early elements; main prices sit high in the
// DOM while recommendation grids nest deep
func (cs *ConfidenceScorer) positionBonus(el *goquery.Selection) int {
	bonus := 0

	depth := elementDepth(el, depthWalkCap)
	switch {
	case depth < 6:
		bonus += shallowDepthBonus
	case depth < 10:
		bonus += mediumDepthBonus
	case depth < 15:
		bonus += deepDepthBonus
	}

	if index := el.Index(); index >= 0 && index < earlySiblingWindow {
		bonus += earlySiblingBonus
	}

	return bonus
}

// containerAdjustment penalizes price-dense parents (listings) and rewards
// substantial ones (detail panels)
func (cs *ConfidenceScorer) containerAdjustment(el *goquery.Selection) int {
	parent := el.Parent()
	if parent.Length() == 0 {
		return 0
	}

	adjustment := 0

	siblingPrices := countPriceTextNodes(parent)
	if siblingPrices > 4 {
		adjustment -= crowdedParentPenalty
	} else if siblingPrices > 2 {
		adjustment -= busyParentPenalty
	}

	textLength := len(strings.TrimSpace(parent.Text()))
	switch {
	case textLength > 1000:
		adjustment += largeParentBonus
	case textLength > 500:
		adjustment += mediumParentBonus
	case textLength < 100:
		adjustment -= tinyParentPenalty
	}

	return adjustment
}

// clampConfidence bounds a score to [0,100]
func clampConfidence(confidence int) int {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
