package extractor

import (
	"math"
	"sort"

	"pricelens/models"
)

// PriceReconciler resolves the scored per-kind candidate lists into the
// final price profile for the page.
type PriceReconciler struct{}

// Reconcile derives the price profile from scanned candidates. Resolution
// order: sale price first, then the original ("was") price, then a current
// price if nothing better surfaced, and as a final fallback the best of
// everything pooled together. Ambiguity between comparable candidates is
// settled deterministically by confidence order, never escalated.
func (r *PriceReconciler) Reconcile(candidates map[PriceKind][]*PriceCandidate) *models.PriceProfile {
	profile := &models.PriceProfile{PriceType: models.PriceTypeUnknown}

	for _, list := range candidates {
		sortByConfidence(list)
	}

	// 1. Highest-confidence non-crossed sale price wins outright
	if sale := firstNonCrossed(candidates[KindSale]); sale != nil {
		profile.SalePrice = sale.Value
		profile.BestPrice = sale.Value
		profile.PriceType = models.PriceTypeSale
	}

	// 2. Original price: a crossed-out one is the intuitive "was" price, so
	// it is preferred over a higher-confidence plain one
	if original := pickOriginal(candidates[KindOriginal]); original != nil {
		profile.OriginalPrice = original.Value
		if profile.SalePrice != "" {
			applyDiscount(profile, profile.SalePrice, original.Value)
		}
	}

	// 3. Fall back to the best non-crossed current price
	if profile.BestPrice == "" {
		if current := firstNonCrossed(candidates[KindCurrent]); current != nil {
			profile.CurrentPrice = current.Value
			profile.BestPrice = current.Value
			profile.PriceType = models.PriceTypeRegular
			if profile.OriginalPrice != "" {
				if applyDiscount(profile, current.Value, profile.OriginalPrice) {
					profile.PriceType = models.PriceTypeDiscounted
				}
			}
		}
	}

	// 4. Only crossed-out prices anywhere: pool everything, prefer
	// non-crossed first, then confidence; a crossed winner is "uncertain"
	if profile.BestPrice == "" {
		if best := bestPooled(candidates); best != nil {
			profile.BestPrice = best.Value
			profile.CurrentPrice = best.Value
			if best.CrossedOut {
				profile.PriceType = models.PriceTypeUncertain
			} else {
				profile.PriceType = models.PriceTypeRegular
			}
		}
	}

	return profile
}

// sortByConfidence orders candidates by confidence descending, stably so
// document order breaks ties
func sortByConfidence(list []*PriceCandidate) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Confidence > list[j].Confidence
	})
}

// firstNonCrossed returns the best candidate that is not struck through
func firstNonCrossed(list []*PriceCandidate) *PriceCandidate {
	for _, candidate := range list {
		if !candidate.CrossedOut {
			return candidate
		}
	}
	return nil
}

// pickOriginal prefers a crossed-out candidate over the confidence leader
func pickOriginal(list []*PriceCandidate) *PriceCandidate {
	for _, candidate := range list {
		if candidate.CrossedOut {
			return candidate
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return nil
}

// bestPooled flattens every kind and returns the top candidate, non-crossed
// candidates ranking ahead of crossed ones regardless of confidence
func bestPooled(candidates map[PriceKind][]*PriceCandidate) *PriceCandidate {
	var pool []*PriceCandidate
	for _, kind := range scanKinds {
		pool = append(pool, candidates[kind]...)
	}
	if len(pool) == 0 {
		return nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].CrossedOut != pool[j].CrossedOut {
			return !pool[i].CrossedOut
		}
		return pool[i].Confidence > pool[j].Confidence
	})
	return pool[0]
}

// applyDiscount sets the discount percentage when both values parse and the
// original is genuinely higher. Returns true when a discount was recorded.
func applyDiscount(profile *models.PriceProfile, selling, original string) bool {
	sellVal, okSell := ParsePriceValue(selling)
	origVal, okOrig := ParsePriceValue(original)
	if !okSell || !okOrig || origVal <= sellVal {
		return false
	}
	discount := (origVal - sellVal) / origVal * 100
	profile.DiscountPercentage = math.Round(discount*10) / 10
	return true
}
