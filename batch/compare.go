package batch

import (
	"fmt"
	"math"

	"pricelens/extractor"
	"pricelens/models"
)

// CompareOutcome orders our price against a competitor's. Currency symbols
// and separators are stripped before the numeric comparison; either side
// failing to parse yields "unknown".
func CompareOutcome(ourPrice, competitorPrice string) models.ComparisonOutcome {
	ourVal, okOurs := extractor.ParsePriceValue(ourPrice)
	compVal, okComp := extractor.ParsePriceValue(competitorPrice)

	if !okOurs || !okComp {
		return models.OutcomeUnknown
	}

	switch {
	case ourVal < compVal:
		return models.OutcomeLower
	case ourVal > compVal:
		return models.OutcomeHigher
	default:
		return models.OutcomeEqual
	}
}

// FormatDetails builds the human-facing comparison summary. The percentage
// base switches sides deliberately: a cheaper position is measured against
// the competitor's price, a costlier one against ours.
func FormatDetails(outcome models.ComparisonOutcome, ourPrice, competitorPrice string) *models.ComparisonDetails {
	ourVal, okOurs := extractor.ParsePriceValue(ourPrice)
	compVal, okComp := extractor.ParsePriceValue(competitorPrice)

	if !okOurs || !okComp {
		return &models.ComparisonDetails{
			Status:         "unknown",
			Message:        "Unable to compare prices",
			Difference:     "N/A",
			Recommendation: "Check price formats",
		}
	}

	switch outcome {
	case models.OutcomeLower:
		difference := compVal - ourVal
		percentage := round2(difference / compVal * 100)
		return &models.ComparisonDetails{
			Status:         "competitive",
			Message:        fmt.Sprintf("Our price is %v%% lower than competitor", percentage),
			Difference:     fmt.Sprintf("+%.2f", difference),
			Recommendation: "Good position - we are cheaper",
		}
	case models.OutcomeHigher:
		difference := ourVal - compVal
		percentage := round2(difference / ourVal * 100)
		return &models.ComparisonDetails{
			Status:         "expensive",
			Message:        fmt.Sprintf("Our price is %v%% higher than competitor", percentage),
			Difference:     fmt.Sprintf("-%.2f", difference),
			Recommendation: "Consider price adjustment to be more competitive",
		}
	case models.OutcomeEqual:
		return &models.ComparisonDetails{
			Status:         "equal",
			Message:        "Prices are equal",
			Difference:     "0.00",
			Recommendation: "Consider slight reduction to gain competitive edge",
		}
	default:
		return &models.ComparisonDetails{
			Status:         "unknown",
			Message:        "Unable to compare prices",
			Difference:     "N/A",
			Recommendation: "Check price formats",
		}
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
