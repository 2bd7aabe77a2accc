package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRankedSelector(t *testing.T) {
	doc := mustDoc(t, `
		<html><body>
		<div id="centerCol"><span>£25.00</span><button>Add to cart</button></div>
		<div class="rail"><span>£5.00</span></div>
		</body></html>
	`)
	detector := NewRegionDetector(DefaultRuleTables())

	area := detector.Detect(doc)
	id, _ := area.Attr("id")
	assert.Equal(t, "centerCol", id)
}

func TestDetectRequiresPurchaseIntent(t *testing.T) {
	// A matching container without any purchase-intent wording is navigation
	// chrome; detection must not stop there.
	doc := mustDoc(t, `
		<html><body>
		<div class="product-main"><a href="/home">Home</a></div>
		<div class="product-detail-info">
			<h1>Vase</h1>
			<span>£34.50</span>
			<button>Buy now</button>
		</div>
		</body></html>
	`)
	detector := NewRegionDetector(DefaultRuleTables())

	area := detector.Detect(doc)
	assert.Contains(t, classAttr(area), "product-detail-info")
}

func TestDetectFallsBackToDocument(t *testing.T) {
	doc := mustDoc(t, `<html><body><p>Nothing here</p></body></html>`)
	detector := NewRegionDetector(DefaultRuleTables())

	area := detector.Detect(doc)
	require.NotNil(t, area)
	assert.Equal(t, doc.Selection, area)
}

func TestScoreAreaPenalizesRecommendationRails(t *testing.T) {
	doc := mustDoc(t, `
		<html><body>
		<div class="product-overview"><span>£30.00</span></div>
		<div class="related-products">
			<a href="/1">a</a><a href="/2">b</a><a href="/3">c</a>
			<a href="/4">d</a><a href="/5">e</a><a href="/6">f</a>
			<span>£9.99</span>
		</div>
		</body></html>
	`)
	detector := NewRegionDetector(DefaultRuleTables())

	main := detector.ScoreArea(doc.Find(".product-overview").First())
	rail := detector.ScoreArea(doc.Find(".related-products").First())
	assert.Greater(t, main, rail)
}
