// Package fetcher turns a URL into HTML for the extraction pipeline. It
// owns browser lifecycle, stealth setup and bot-wall detection; the
// extractor itself never touches the network.
package fetcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// stealthScript masks the obvious automation fingerprints before page
// scripts run; Shopify and the bigger platforms check all of these.
const stealthScript = `
	Object.defineProperty(navigator, 'userAgent', {
		get: function () { return 'Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36'; }
	});
	Object.defineProperty(navigator, 'webdriver', {
		get: () => undefined,
	});
	Object.defineProperty(navigator, 'plugins', {
		get: () => [1, 2, 3, 4, 5],
	});
	Object.defineProperty(navigator, 'languages', {
		get: () => ['en-US', 'en'],
	});
	Object.defineProperty(navigator, 'platform', {
		get: () => 'Win32',
	});
	window.chrome = { runtime: {} };
`

// BrowserFetcher fetches pages through a shared headless browser
type BrowserFetcher struct {
	browser  *rod.Browser
	detector *BotDetector
	timeout  time.Duration
}

// NewBrowserFetcher launches the headless browser. Uses system Chromium in
// Docker, auto-detects locally.
func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
		l = l.Bin("/usr/bin/chromium-browser")
		log.Printf("Using system Chromium in Docker environment")
	} else {
		log.Printf("Using auto-detected Chromium (local environment)")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %v", err)
	}

	return &BrowserFetcher{
		browser:  browser,
		detector: NewBotDetector(),
		timeout:  timeout,
	}, nil
}

// Close shuts the browser down
func (f *BrowserFetcher) Close() {
	if f.browser != nil {
		f.browser.MustClose()
	}
}

// FetchHTML loads the URL and returns the settled page HTML. The page is
// closed on every exit path so the browser never accumulates tabs across
// worker slots.
func (f *BrowserFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var htmlContent string
	err := rod.Try(func() {
		page := f.browser.Context(ctx).MustPage()
		defer page.MustClose()

		page.MustEvalOnNewDocument(stealthScript)
		page.MustSetViewport(1920, 1080, 1.0, false)
		page.MustNavigate(url)
		page.MustWaitLoad()

		// Dynamic storefronts render prices after load; wait for the DOM to
		// settle before snapshotting
		page.MustWaitStable()

		htmlContent = page.MustHTML()
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to fetch %s: %v", url, err)
	}

	if reason, blocked := f.detector.Detect(htmlContent); blocked {
		return "", fmt.Errorf("fetch blocked for %s: %s", url, reason)
	}

	return htmlContent, nil
}
