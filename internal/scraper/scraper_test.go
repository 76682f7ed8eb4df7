package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPageHTML = `<!DOCTYPE html>
<html>
<head><title>head title</title></head>
<body>
<h1>  Machine Learning in Retail  </h1>
<nav><p>Skip this navigation text</p></nav>
<article>
<p>Retailers use demand forecasting to cut inventory costs.</p>
<p>   </p>
<h2>Use Cases</h2>
<p>Recommendation engines drive basket size.</p>
<ul>
<li>Churn prediction</li>
<li>Dynamic pricing</li>
<li>  </li>
</ul>
<h3>Results</h3>
<p>One chain reported 30% cost savings after deployment.</p>
<ol><li>Pilot first</li></ol>
<p>Further reading below.</p>
</article>
</body>
</html>`

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		UserAgent:  "consultd-test/1.0",
		Timeout:    config.Duration(5 * time.Second),
		Delay:      config.Duration(time.Millisecond),
		MaxRetries: 3,
	}
}

func testSource() Source {
	return Source{
		Name:     "Test Source",
		Category: "retail",
		Strategy: StrategyStatic,
		URLs:     []string{"http://example.com/ml"},
	}
}

func TestScraper_Parse(t *testing.T) {
	s := New(testScraperConfig(), zap.NewNop())

	src := testSource()
	page, err := s.Parse(testPageHTML, src, "http://example.com/ml")
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/ml", page.URL)
	assert.Equal(t, "Test Source", page.Source)
	assert.Equal(t, "retail", page.Category)
	assert.Equal(t, "Machine Learning in Retail", page.Title)
	assert.NotEmpty(t, page.Timestamp)

	// Paragraphs come from the content selector only, blanks dropped.
	require.Len(t, page.Paragraphs, 4)
	assert.Equal(t, "Retailers use demand forecasting to cut inventory costs.", page.Paragraphs[0])
	assert.NotContains(t, page.Paragraphs, "Skip this navigation text")

	require.Len(t, page.Sections, 2)
	assert.Equal(t, "Use Cases", page.Sections[0].Heading)
	assert.Equal(t, []string{
		"Recommendation engines drive basket size.",
		"Churn prediction",
		"Dynamic pricing",
	}, page.Sections[0].Content)

	assert.Equal(t, "Results", page.Sections[1].Heading)
	assert.Equal(t, []string{
		"One chain reported 30% cost savings after deployment.",
		"Pilot first",
		"Further reading below.",
	}, page.Sections[1].Content)
}

func TestScraper_ParseCustomSelectors(t *testing.T) {
	s := New(testScraperConfig(), zap.NewNop())

	html := `<html><body>
<h1>Wrong Title</h1>
<div class="headline">Right Title</div>
<div class="post"><p>Body text here.</p></div>
</body></html>`

	src := testSource()
	src.Selectors = Selectors{Title: ".headline", Content: ".post"}

	page, err := s.Parse(html, src, "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "Right Title", page.Title)
	assert.Equal(t, []string{"Body text here."}, page.Paragraphs)
}

func TestScraper_ParsePatterns(t *testing.T) {
	s := New(testScraperConfig(), zap.NewNop())

	src := testSource()
	src.Patterns = map[string][]string{
		"outcomes": {"cost savings", "missing keyword"},
	}

	page, err := s.Parse(testPageHTML, src, "http://example.com/ml")
	require.NoError(t, err)

	matches := page.Patterns["outcomes"]
	require.Len(t, matches, 1)
	assert.Equal(t, "cost savings", matches[0].Keyword)
	assert.Contains(t, matches[0].Context, "30% cost savings")
	assert.Equal(t, strings.ToLower(matches[0].Context), matches[0].Context)
}

func TestExtractPatterns_ContextWindow(t *testing.T) {
	text := strings.Repeat("x", 500) + " TARGET " + strings.Repeat("y", 500)

	matches := extractPatterns(text, map[string][]string{"t": {"target"}})
	require.Len(t, matches["t"], 1)

	// Context is capped at 200 runes on each side of the match start.
	assert.LessOrEqual(t, len([]rune(matches["t"][0].Context)), 2*patternContextRunes)
	assert.Contains(t, matches["t"][0].Context, "target")
}

func TestScraper_Fetch(t *testing.T) {
	var gotUA atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	s := New(testScraperConfig(), zap.NewNop())

	body, err := s.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, body, "ok")
	assert.Equal(t, "consultd-test/1.0", gotUA.Load())
}

func TestScraper_FetchRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	s := New(testScraperConfig(), zap.NewNop())

	body, err := s.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestScraper_FetchRetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := New(testScraperConfig(), zap.NewNop())

	_, err := s.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestScraper_ScrapeSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good":
			w.Write([]byte(testPageHTML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := New(testScraperConfig(), zap.NewNop())

	src := testSource()
	src.URLs = []string{server.URL + "/good", server.URL + "/missing"}

	// The failing URL is skipped, not fatal.
	pages, err := s.ScrapeSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, server.URL+"/good", pages[0].URL)
	assert.Equal(t, "Machine Learning in Retail", pages[0].Title)
}

func TestScraper_SaveAndLoadPages(t *testing.T) {
	dir := t.TempDir()
	s := New(testScraperConfig(), zap.NewNop())

	page := ScrapedPage{
		URL:        "http://example.com/ml",
		Source:     "Test Source",
		Category:   "retail",
		Timestamp:  "20260830_120000",
		Title:      "Machine Learning in Retail",
		Paragraphs: []string{"Retailers use demand forecasting."},
		Sections:   []Section{{Heading: "Use Cases", Content: []string{"Churn prediction"}}},
	}

	path, err := s.SavePage(page, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Test_Source", "Test_Source_20260830_120000.json"), path)

	loaded, err := LoadPages(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, page, loaded[0])
}

func TestScraper_FetchAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"name": "case study"}]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	s := New(testScraperConfig(), zap.NewNop())

	src := Source{
		Name:        "API Source",
		Category:    "research",
		Strategy:    StrategyAPI,
		APIEndpoint: server.URL + "/v1/cases",
	}

	require.NoError(t, s.FetchAPI(context.Background(), src, dir))

	data, err := os.ReadFile(filepath.Join(dir, "API_Source", apiCaptureFile))
	require.NoError(t, err)

	var capture apiCapture
	require.NoError(t, json.Unmarshal(data, &capture))
	assert.Equal(t, "API Source", capture.Source)
	assert.Equal(t, "research", capture.Category)
	assert.Contains(t, string(capture.APIResponse), "case study")

	// API captures are excluded from the page loader.
	loaded, err := LoadPages(dir)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestScraper_ScrapeAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" {
			w.Write([]byte(`{"ok": true}`))
			return
		}
		w.Write([]byte(testPageHTML))
	}))
	defer server.Close()

	dir := t.TempDir()
	s := New(testScraperConfig(), zap.NewNop())

	sources := []Source{
		{Name: "Static One", Category: "retail", Strategy: StrategyStatic, URLs: []string{server.URL + "/page"}},
		{Name: "API One", Category: "research", Strategy: StrategyAPI, APIEndpoint: server.URL + "/api"},
	}

	require.NoError(t, s.ScrapeAll(context.Background(), sources, dir))

	loaded, err := LoadPages(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Static One", loaded[0].Source)

	_, err = os.Stat(filepath.Join(dir, "API_One", apiCaptureFile))
	require.NoError(t, err)
}
