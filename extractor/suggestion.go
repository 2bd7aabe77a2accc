package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Suggestion walk bounds. Confirmation is checked on fewer levels than
// suggestion markers: a genuine detail panel sits close to its price, while
// carousel wrappers can be several levels out.
const (
	confirmationWalkLevels = 3
	suggestionWalkLevels   = 5
	densityCheckLevels     = 2 // density heuristics only near the element
	densityLinkLimit       = 4
	densityPriceLimit      = 3
)

// SuggestionClassifier decides whether an element sits inside a
// promotional, recommendation or bundle region and must be excluded.
type SuggestionClassifier struct {
	rules *RuleTables
}

// NewSuggestionClassifier creates a classifier using the given rule tables
func NewSuggestionClassifier(rules *RuleTables) *SuggestionClassifier {
	return &SuggestionClassifier{rules: rules}
}

// IsSuggested returns true iff the element belongs to a suggested-products
// region. A confirmed main-product ancestor short-circuits to false before
// any suggestion marker is consulted, so a page-level "recommended" heading
// can never poison prices inside the genuine detail panel.
func (c *SuggestionClassifier) IsSuggested(sel *goquery.Selection) bool {
	current := sel
	for level := 0; level < confirmationWalkLevels; level++ {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		current = parent
		identity := classAttr(current) + " " + idAttr(current)
		if containsAny(identity, c.rules.MainProductConfirmations) {
			return false
		}
	}

	ownClasses := classAttr(sel)
	ownID := idAttr(sel)

	current = sel
	for level := 0; level < suggestionWalkLevels; level++ {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		current = parent

		parentClasses := classAttr(current)
		parentID := idAttr(current)
		parentText := strings.ToLower(current.Text())

		for _, phrase := range c.rules.SuggestionPhrases {
			if strings.Contains(parentText, phrase) || strings.Contains(parentClasses, phrase) ||
				strings.Contains(parentID, phrase) || strings.Contains(ownClasses, phrase) ||
				strings.Contains(ownID, phrase) {
				return true
			}
		}

		identity := parentClasses + " " + parentID + " " + ownClasses + " " + ownID
		if containsAny(identity, c.rules.SuggestionIdentifiers) {
			return true
		}

		// Close ancestors packed with links or prices are product grids,
		// whatever their class names say
		if level < densityCheckLevels {
			if countLinks(current) > densityLinkLimit || countPriceTextNodes(current) > densityPriceLimit {
				return true
			}
		}
	}

	return false
}
