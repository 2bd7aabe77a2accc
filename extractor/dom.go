package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// classAttr returns the element's class attribute, lowercased
func classAttr(sel *goquery.Selection) string {
	class, _ := sel.Attr("class")
	return strings.ToLower(class)
}

// idAttr returns the element's id attribute, lowercased
func idAttr(sel *goquery.Selection) string {
	id, _ := sel.Attr("id")
	return strings.ToLower(id)
}

// styleAttr returns the element's inline style, lowercased
func styleAttr(sel *goquery.Selection) string {
	style, _ := sel.Attr("style")
	return strings.ToLower(style)
}

// tagName returns the element's tag name, or "" for non-element selections
func tagName(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	node := sel.Get(0)
	if node.Type != html.ElementNode {
		return ""
	}
	return node.Data
}

// isProductItemtype reports whether the element carries schema.org Product markup
func isProductItemtype(sel *goquery.Selection) bool {
	itemtype, ok := sel.Attr("itemtype")
	return ok && strings.Contains(itemtype, "Product")
}

// countPriceTextNodes counts text nodes under sel whose content matches the
// price pattern. Counting nodes rather than regex hits keeps a single element
// holding "was €595,00 now €476,00" from looking like a product grid.
func countPriceTextNodes(sel *goquery.Selection) int {
	count := 0
	for _, node := range sel.Nodes {
		walkTextNodes(node, func(text string) {
			if priceRE.MatchString(text) {
				count++
			}
		})
	}
	return count
}

// walkTextNodes visits every text node under root, scripts and styles excluded
func walkTextNodes(root *html.Node, visit func(string)) {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			visit(child.Data)
		case html.ElementNode:
			if child.Data == "script" || child.Data == "style" {
				continue
			}
			walkTextNodes(child, visit)
		}
	}
}

// priceTextParents collects the parent elements of price-bearing text nodes
// under sel, in document order.
func priceTextParents(sel *goquery.Selection) []*html.Node {
	var parents []*html.Node
	seen := make(map[*html.Node]bool)
	for _, node := range sel.Nodes {
		collectPriceParents(node, seen, &parents)
	}
	return parents
}

func collectPriceParents(root *html.Node, seen map[*html.Node]bool, out *[]*html.Node) {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if priceRE.MatchString(child.Data) && child.Parent != nil && !seen[child.Parent] {
				seen[child.Parent] = true
				*out = append(*out, child.Parent)
			}
		case html.ElementNode:
			if child.Data == "script" || child.Data == "style" {
				continue
			}
			collectPriceParents(child, seen, out)
		}
	}
}

// countLinks counts anchor descendants that carry an href
func countLinks(sel *goquery.Selection) int {
	return sel.Find("a[href]").Length()
}

// elementDepth returns the element's distance from the document root, capped
func elementDepth(sel *goquery.Selection, max int) int {
	depth := 0
	current := sel
	for depth < max {
		parent := current.Parent()
		if parent.Length() == 0 {
			break
		}
		depth++
		current = parent
	}
	return depth
}

// isDisplayNone reports whether the element is hidden via an inline style
func isDisplayNone(sel *goquery.Selection) bool {
	style := strings.ReplaceAll(styleAttr(sel), " ", "")
	return strings.Contains(style, "display:none")
}

// containsAny reports whether text contains any of the given substrings
func containsAny(text string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
