package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// HTTPFetcher fetches pages with a plain HTTP client. Cheaper than the
// browser and good enough for server-rendered storefronts; script-heavy
// sites need the BrowserFetcher.
type HTTPFetcher struct {
	client   *http.Client
	detector *BotDetector
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		detector: NewBotDetector(),
	}
}

// Close is a no-op; the HTTP client holds no resources needing teardown
func (f *HTTPFetcher) Close() {}

// FetchHTML downloads the URL following redirects
func (f *HTTPFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %v", url, err)
	}

	htmlContent := string(body)
	if reason, blocked := f.detector.Detect(htmlContent); blocked {
		return "", fmt.Errorf("fetch blocked for %s: %s", url, reason)
	}

	return htmlContent, nil
}
