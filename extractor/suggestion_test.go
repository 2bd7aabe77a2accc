package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestIsSuggestedByHeadingPhrase(t *testing.T) {
	doc := mustDoc(t, `
		<div class="rail">
			<h2>Frequently bought together</h2>
			<div><span class="item-price">£5.99</span></div>
		</div>
	`)
	classifier := NewSuggestionClassifier(DefaultRuleTables())

	el := doc.Find(".item-price").First()
	require.Equal(t, 1, el.Length())
	require.True(t, classifier.IsSuggested(el))
}

func TestIsSuggestedByAncestorClass(t *testing.T) {
	doc := mustDoc(t, `
		<div class="product-carousel">
			<div class="tile"><span class="item-price">£12.00</span></div>
		</div>
	`)
	classifier := NewSuggestionClassifier(DefaultRuleTables())

	el := doc.Find(".item-price").First()
	require.True(t, classifier.IsSuggested(el))
}

func TestIsSuggestedByLinkDensity(t *testing.T) {
	doc := mustDoc(t, `
		<div class="widget">
			<a href="/a">one</a><a href="/b">two</a><a href="/c">three</a>
			<a href="/d">four</a><a href="/e">five</a>
			<span class="item-price">£3.00</span>
		</div>
	`)
	classifier := NewSuggestionClassifier(DefaultRuleTables())

	el := doc.Find(".item-price").First()
	require.True(t, classifier.IsSuggested(el))
}

func TestMainProductConfirmationShortCircuits(t *testing.T) {
	// A confirmed main-product ancestor wins even when the page carries
	// recommendation wording further up the tree.
	doc := mustDoc(t, `
		<div class="recommended-section">
			<div id="centerCol">
				<div class="price-row"><span class="item-price">£89.00</span></div>
			</div>
		</div>
	`)
	classifier := NewSuggestionClassifier(DefaultRuleTables())

	el := doc.Find(".item-price").First()
	require.False(t, classifier.IsSuggested(el))
}

func TestPlainDetailPanelNotSuggested(t *testing.T) {
	doc := mustDoc(t, `
		<div class="product-main">
			<h1>Walnut desk</h1>
			<span class="item-price">£249.00</span>
		</div>
	`)
	classifier := NewSuggestionClassifier(DefaultRuleTables())

	el := doc.Find(".item-price").First()
	require.False(t, classifier.IsSuggested(el))
}
