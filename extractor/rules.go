package extractor

// WeightedMarker is one entry of an ordered (pattern, weight) rule table
type WeightedMarker struct {
	Pattern string
	Weight  int
}

// RuleTables holds every keyword/selector table the pipeline consults.
// The tables are data, not logic: they can be swapped out wholesale for
// tuning or testing without touching the detection and scoring code.
type RuleTables struct {
	// Ranked selectors for known main-product containers
	MainRegionSelectors []string

	// A candidate main region must contain at least one of these
	PurchaseIntentKeywords []string

	// Fallback region scoring keyword tables
	RegionPositiveKeywords []string
	RegionNegativeKeywords []string

	// Per-kind price selectors, tried in order
	SaleSelectors     []string
	OriginalSelectors []string
	CurrentSelectors  []string

	// Suggested/promotional region detection
	SuggestionPhrases        []string
	SuggestionIdentifiers    []string
	MainProductConfirmations []string

	// Crossed-out ("was" price) detection
	CrossedOutIndicators []string

	// Confidence scoring keyword families
	SaleIndicators     []string
	OriginalIndicators []string

	// Weighted main-product markers for the ancestor region bonus
	PrimaryMarkers   []WeightedMarker
	SecondaryMarkers []WeightedMarker

	// Data attributes whose value can mark a main-product ancestor
	ProductDataAttrs []string
}

// DefaultRuleTables returns the tuned production tables. The entries and
// weights come from iterating against live retailer pages; resist the urge
// to tidy them.
func DefaultRuleTables() *RuleTables {
	return &RuleTables{
		MainRegionSelectors: []string{
			// Amazon main product area
			"#dp-container", "#feature-bullets", "#apex_desktop", "#centerCol",
			`.a-section[data-feature-name="detailBullets"]`, "#productDetails_feature_div",
			"#ppd", "#dp", "#detail-main", "#detail-bullets",

			// Generic main product containers
			".product-main", ".product-detail", ".product-info", ".main-product",
			".product-container", ".product-wrapper", ".pd-wrap", ".pdp-container",
			".product-details-main", ".product-page-main", ".item-details",
			".product-content", ".product-summary", ".product-overview",

			// E-commerce specific patterns
			`[data-testid="product-container"]`, `[data-testid="main-product"]`,
			`[data-automation-id="product-main"]`, ".js-product-container",
			`[data-module="ProductDetails"]`, `[data-component="ProductInfo"]`,

			// Department-store and fashion platforms
			".product-hero", ".pdp-product-overview", ".product-information-wrapper",
			".product-details-container", ".product-info-main",
			".pdp-product", ".product-detail-wrapper",
			".product-information", ".product-details-wrapper",

			// eBay patterns
			".x-buybox", "#mainContent", ".vim",

			// Shopify patterns
			".product-single", ".product-form",
			".shopify-section", `[data-section-type="product"]`,

			// WooCommerce patterns
			".woocommerce-product-details", ".single-product",

			// Schema.org product containers
			`[itemtype*="Product"]`,

			// Common content areas
			"#content", "#main-content", ".main-content", ".content-main",
			".page-content", ".container-main", "#primary-content",
		},

		PurchaseIntentKeywords: []string{
			"price", "buy", "add to cart", "purchase", "description",
		},

		RegionPositiveKeywords: []string{
			"product", "item", "detail", "main", "primary", "hero", "overview",
			"summary", "information", "description", "specification",
		},

		RegionNegativeKeywords: []string{
			"suggest", "recommend", "related", "similar", "also", "bought",
			"viewed", "cross-sell", "upsell", "bundle", "accessory",
		},

		SaleSelectors: []string{
			// Common sale price selectors
			".sale-price", ".price-sale", ".discounted-price", ".offer-price",
			".deal-price", ".reduced-price", ".special-price", ".promo-price",
			".price-now", ".price-current", ".current-price", ".final-price",
			".price-reduced", ".price-special", ".price-discount",

			// Specific e-commerce patterns
			".price-box .price:not(.was-price)", ".price-container .price:not(.original)",
			".product-price .current", ".sale .price", ".discount .price",
			".offer .price", ".special .price",

			// Data attributes and test IDs
			`[data-testid*="sale"]`, `[data-testid*="current"]`, `[data-testid*="offer"]`,
			`[data-price-type="sale"]`, `[data-price-type="current"]`,
			`[data-automation-id*="price-current"]`,

			// Additional common patterns
			".price-value:not(.was)", ".main-price:not(.original)",
			".product-price-value:not(.crossed)", ".price-primary",
			".price-big", ".price-large", ".price-main",
		},

		OriginalSelectors: []string{
			// Original/was price selectors
			".original-price", ".regular-price", ".was-price", ".old-price",
			".price-was", ".price-original", ".price-regular", ".list-price",
			".msrp", ".rrp", ".crossed-price", ".strike-price",
			".price-strike", ".price-crossed", ".price-before", ".price-old",
			".rrp-price", ".before-price", ".prev-price", ".previous-price",

			// Crossed-out markup
			"del .price", "s .price", ".strikethrough .price",
			".line-through .price", ".text-decoration-line-through .price",
			"del", "s",

			// Data attributes
			`[data-testid*="was"]`, `[data-testid*="original"]`, `[data-testid*="regular"]`,
			`[data-price-type="was"]`, `[data-price-type="original"]`,
			`[data-automation-id*="price-was"]`, `[data-automation-id*="price-original"]`,
		},

		CurrentSelectors: []string{
			// General price selectors (fallback)
			".price", ".product-price", ".woocommerce-Price-amount", ".amount",
			`[itemprop="price"]`, "[data-price]", ".price-current",
			".product-price-value", ".price-box .price", ".final-price",
			".price-display", ".price-value", ".product-price-amount",
		},

		SuggestionPhrases: []string{
			"customers who bought", "also bought", "you might like", "you may also like",
			"recommended", "related products", "similar items", "similar products",
			"frequently bought together", "customers also viewed", "people also bought",
			"inspired by your", "because you viewed", "suggestions", "recommended for you",
			"cross-sell", "upsell", "bundle", "add-on", "accessory", "accessories",
			"complete your look", "goes well with", "pair with", "bundle deals",
			"other customers", "shoppers also", "more like this", "you might also need",
			"trending now", "best sellers", "top picks", "featured products",
			"sponsored", "advertisement", "ad ", "promoted", "compare with similar",
			"alternative products", "other options", "more choices", "explore similar",
			"recently viewed", "your history", "continue shopping", "shop more",
		},

		SuggestionIdentifiers: []string{
			"recommend", "suggest", "related", "similar", "also-bought",
			"cross-sell", "upsell", "bundle", "accessory", "addon", "add-on",
			"carousel", "slider", "grid-item", "card-grid",
			"recently-viewed", "trending", "featured", "sponsored", "ad-",
			"promotion", "promo", "sale-grid", "product-grid",
			"listing", "catalog", "search-result", "filter-result",
			"sidebar", "footer-products", "header-products",
		},

		MainProductConfirmations: []string{
			"centercol", "dp-container", "feature-bullets", "product-main",
			"main-product", "product-detail", "buybox", "product-summary",
		},

		CrossedOutIndicators: []string{
			"strike", "strikethrough", "line-through", "text-decoration-line-through",
			"crossed", "was-price", "old-price", "original-price", "regular-price",
			"rrp", "msrp", "list-price", "before-price",
		},

		SaleIndicators: []string{
			"sale", "discount", "offer", "special", "deal", "reduced", "now",
		},

		OriginalIndicators: []string{
			"was", "orig", "regular", "list", "rrp", "msrp",
		},

		PrimaryMarkers: []WeightedMarker{
			{"centercol", 30}, {"dp-container", 30},
			{"product-main", 25}, {"main-product", 25}, {"feature-bullets", 25},
			{"product-summary", 22}, {"pdp-container", 22},
			{"product-detail", 20}, {"product-info", 20}, {"product-overview", 20},
			{"product-container", 18},
		},

		SecondaryMarkers: []WeightedMarker{
			{"buybox", 25},
			{"product-hero", 20},
			{"product-content", 18}, {"product-form", 18},
			{"product-wrapper", 15}, {"pd-wrap", 15}, {"item-details", 15},
			{"primary-content", 15},
			{"main-content", 12},
		},

		ProductDataAttrs: []string{
			"data-testid", "data-automation-id", "data-component", "data-module",
		},
	}
}
