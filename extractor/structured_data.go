package extractor

import (
	"encoding/json"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"pricelens/models"
)

// StructuredDataExtractor pulls prices out of embedded JSON-LD product
// metadata. When a page carries machine-readable offer data it is trusted
// unconditionally and the DOM pipeline is skipped entirely, even though the
// metadata may describe a different variant or bundle than the one shown.
type StructuredDataExtractor struct{}

// structuredPrices holds the raw price fields found on an offer object
type structuredPrices struct {
	current  string
	original string
	sale     string
}

// Extract returns a profile from JSON-LD metadata, or nil when the page has
// no usable Product/Offer blocks. Malformed blocks are skipped silently.
func (e *StructuredDataExtractor) Extract(doc *goquery.Document) *models.PriceProfile {
	var found *structuredPrices

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			return true // malformed block, keep scanning
		}
		if prices := findStructuredPrices(data); prices != nil {
			found = prices
			return false
		}
		return true
	})

	if found == nil {
		return nil
	}

	profile := &models.PriceProfile{
		CurrentPrice:  found.current,
		OriginalPrice: found.original,
		SalePrice:     found.sale,
		PriceType:     models.PriceTypeUnknown,
	}

	// Sale price wins over the plain current price
	switch {
	case found.sale != "":
		profile.BestPrice = found.sale
		profile.PriceType = models.PriceTypeSale
	case found.current != "":
		profile.BestPrice = found.current
		profile.PriceType = models.PriceTypeRegular
	default:
		// A lone highPrice is not a selling price; let the DOM pipeline run
		return nil
	}

	return profile
}

// findStructuredPrices walks a decoded JSON-LD value looking for the first
// Product/Offer/AggregateOffer node with price fields. The traversal uses an
// explicit worklist over the decoded tree so malformed, deeply nested input
// cannot blow the stack.
func findStructuredPrices(data interface{}) *structuredPrices {
	stack := []interface{}{data}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := item.(type) {
		case []interface{}:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}

		case map[string]interface{}:
			if graph, ok := v["@graph"].([]interface{}); ok {
				for i := len(graph) - 1; i >= 0; i-- {
					stack = append(stack, graph[i])
				}
			}

			if !isProductLikeType(v["@type"]) {
				continue
			}

			if offers, ok := unwrapOffers(v["offers"]); ok {
				prices := &structuredPrices{
					current:  jsonFieldString(offers, "price"),
					original: jsonFieldString(offers, "highPrice"),
					sale:     jsonFieldString(offers, "lowPrice"),
				}
				if prices.current != "" || prices.original != "" || prices.sale != "" {
					return prices
				}
			}

			// Offer objects can carry the price directly
			if price := jsonFieldString(v, "price"); price != "" {
				return &structuredPrices{current: price}
			}
		}
	}

	return nil
}

// isProductLikeType reports whether a JSON-LD @type names a product or offer
func isProductLikeType(value interface{}) bool {
	typeName, ok := value.(string)
	if !ok {
		return false
	}
	return typeName == "Product" || typeName == "Offer" || typeName == "AggregateOffer"
}

// unwrapOffers resolves an offers field, taking the first entry of an array
func unwrapOffers(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case []interface{}:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]interface{}); ok {
				return first, true
			}
		}
	}
	return nil, false
}

// jsonFieldString renders a JSON-LD price field as a string; prices appear
// both as strings ("476.00") and as bare numbers (476)
func jsonFieldString(obj map[string]interface{}, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
