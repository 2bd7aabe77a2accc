package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelens/batch"
	"pricelens/config"
	"pricelens/extractor"
	"pricelens/models"
)

type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("failed to fetch %s: connection refused", url)
	}
	return page, nil
}

func (f *stubFetcher) Close() {}

func productPage(price string) string {
	return fmt.Sprintf(`<html><body><div class="product-main"><span class="price">%s</span><button>Add to cart</button></div></body></html>`, price)
}

func newTestHandlers(t *testing.T, pages map[string]string) (*Handlers, *mux.Router) {
	t.Helper()

	cfg := config.Load()
	orchestrator := batch.NewOrchestrator(&stubFetcher{pages: pages}, extractor.New(), 2, time.Second, 5*time.Second)
	h := NewHandlers(cfg, orchestrator, nil)
	t.Cleanup(h.Close)

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/status", h.Status).Methods("GET")
	r.HandleFunc("/api/v1/extract", h.ExtractPrices).Methods("POST")
	r.HandleFunc("/api/v1/compare-csv", h.CompareCSV).Methods("POST")
	r.HandleFunc("/api/v1/jobs/stats", h.GetJobStats).Methods("GET")
	r.HandleFunc("/api/v1/jobs/{id}", h.GetJobStatus).Methods("GET")
	r.HandleFunc("/api/v1/reports/latest", h.GetLatestReport).Methods("GET")

	return h, r
}

func TestHealthCheck(t *testing.T) {
	_, r := newTestHandlers(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestExtractPrices(t *testing.T) {
	_, r := newTestHandlers(t, map[string]string{
		"https://shop.test/a":       productPage("£42.00"),
		"https://shop.test/nostock": `<html><body><div class="product-main"><h1>Sold out</h1></div></body></html>`,
	})

	payload := `{"urls": ["https://shop.test/a", "https://shop.test/missing", "https://shop.test/nostock"]}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/extract", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Successful)
	// A page without a price is reported per entry but is not a failure;
	// only the unreachable URL counts
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, "£42.00", resp.Results[0].Price)
	assert.Equal(t, models.StatusNoPriceFound, resp.Results[2].Status)
}

func TestExtractPricesValidation(t *testing.T) {
	_, r := newTestHandlers(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/extract", strings.NewReader(`{"urls": []}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Over the per-request URL cap
	urls := make([]string, 11)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://shop.test/%d", i)
	}
	payload, _ := json.Marshal(models.ExtractRequest{URLs: urls})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/extract", bytes.NewReader(payload)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/extract", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func csvUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCompareCSVSync(t *testing.T) {
	_, r := newTestHandlers(t, map[string]string{
		"https://rival.test/desk": productPage("£120.00"),
	})

	body, contentType := csvUpload(t, "product_name,our_price,competitor_url\nDesk,£100.00,https://rival.test/desk\n")
	req := httptest.NewRequest("POST", "/api/v1/compare-csv", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.RecommendationCompetitive, resp.Results[0].Summary.OverallRecommendation)
	assert.Equal(t, "good", resp.Summary.OverallStatus)
}

func TestCompareCSVAsync(t *testing.T) {
	_, r := newTestHandlers(t, map[string]string{
		"https://rival.test/desk": productPage("£120.00"),
	})

	body, contentType := csvUpload(t, "product_name,our_price,competitor_url\nDesk,£100.00,https://rival.test/desk\n")
	req := httptest.NewRequest("POST", "/api/v1/compare-csv?async=1", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var job models.ComparisonJob
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	require.NotEmpty(t, job.ID)

	// Poll the job endpoint until the background run finishes
	require.Eventually(t, func() bool {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/jobs/"+job.ID, nil))
		if w.Code != http.StatusOK {
			return false
		}
		var polled models.ComparisonJob
		if err := json.Unmarshal(w.Body.Bytes(), &polled); err != nil {
			return false
		}
		return polled.Status == models.JobStatusCompleted
	}, 3*time.Second, 20*time.Millisecond)
}

func TestCompareCSVBadUpload(t *testing.T) {
	_, r := newTestHandlers(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/compare-csv", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, contentType := csvUpload(t, "wrong,headers\na,b\n")
	req = httptest.NewRequest("POST", "/api/v1/compare-csv", body)
	req.Header.Set("Content-Type", contentType)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJobStatusNotFound(t *testing.T) {
	_, r := newTestHandlers(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/jobs/job_nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLatestReportWithoutPersistence(t *testing.T) {
	_, r := newTestHandlers(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/reports/latest", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
