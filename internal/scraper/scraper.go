package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"
	"github.com/fyrsmithlabs/consultd/internal/config"
	"go.uber.org/zap"
)

const (
	defaultTitleSelector   = "h1"
	defaultContentSelector = "article, main"

	// patternContextRunes is how much surrounding text a keyword match keeps.
	patternContextRunes = 200

	timestampLayout = "20060102_150405"

	apiCaptureFile = "api_data.json"
)

// timeNow is stubbed in tests for stable timestamps.
var timeNow = time.Now

// Scraper fetches and parses pages from configured sources.
type Scraper struct {
	cfg        config.ScraperConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Scraper from the configuration.
func New(cfg config.ScraperConfig, logger *zap.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration()},
		logger:     logger,
	}
}

// Fetch retrieves a URL with retry and exponential backoff.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	var body string

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", s.cfg.UserAgent)

			resp, err := s.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			body = string(data)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.cfg.MaxRetries)),
		retry.Delay(s.cfg.Delay.Duration()),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	return body, nil
}

// Parse extracts a ScrapedPage from HTML using the source's selectors.
func (s *Scraper) Parse(html string, src Source, url string) (*ScrapedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	page := &ScrapedPage{
		URL:       url,
		Source:    src.Name,
		Category:  src.Category,
		Timestamp: timeNow().Format(timestampLayout),
	}

	titleSel := src.Selectors.Title
	if titleSel == "" {
		titleSel = defaultTitleSelector
	}
	page.Title = strings.TrimSpace(doc.Find(titleSel).First().Text())

	contentSel := src.Selectors.Content
	if contentSel == "" {
		contentSel = defaultContentSelector
	}
	content := doc.Find(contentSel).First()

	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			page.Paragraphs = append(page.Paragraphs, text)
		}
	})

	// Heading-delimited sections: everything between one h2/h3 and the next.
	content.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
		section := Section{Heading: strings.TrimSpace(h.Text())}

		h.NextUntil("h2, h3").Each(func(_ int, sib *goquery.Selection) {
			switch goquery.NodeName(sib) {
			case "p":
				if text := strings.TrimSpace(sib.Text()); text != "" {
					section.Content = append(section.Content, text)
				}
			case "ul", "ol":
				sib.Find("li").Each(func(_ int, li *goquery.Selection) {
					if text := strings.TrimSpace(li.Text()); text != "" {
						section.Content = append(section.Content, text)
					}
				})
			}
		})

		page.Sections = append(page.Sections, section)
	})

	if len(src.Patterns) > 0 {
		page.Patterns = extractPatterns(doc.Text(), src.Patterns)
	}

	return page, nil
}

// extractPatterns finds each keyword in the page text and captures the
// surrounding context.
func extractPatterns(text string, patterns map[string][]string) map[string][]PatternMatch {
	lower := strings.ToLower(text)
	runes := []rune(lower)

	out := make(map[string][]PatternMatch, len(patterns))
	for patternType, keywords := range patterns {
		matches := []PatternMatch{}
		for _, keyword := range keywords {
			idx := strings.Index(lower, strings.ToLower(keyword))
			if idx < 0 {
				continue
			}

			runeIdx := len([]rune(lower[:idx]))
			start := runeIdx - patternContextRunes
			if start < 0 {
				start = 0
			}
			end := runeIdx + patternContextRunes
			if end > len(runes) {
				end = len(runes)
			}

			matches = append(matches, PatternMatch{
				Keyword: keyword,
				Context: strings.TrimSpace(string(runes[start:end])),
			})
		}
		out[patternType] = matches
	}

	return out
}

// ScrapeSource fetches and parses every URL of a static source. Failing
// URLs are logged and skipped.
func (s *Scraper) ScrapeSource(ctx context.Context, src Source) ([]ScrapedPage, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	pages := make([]ScrapedPage, 0, len(src.URLs))
	for _, url := range src.URLs {
		s.logger.Info("fetching page",
			zap.String("source", src.Name),
			zap.String("url", url))

		html, err := s.Fetch(ctx, url)
		if err != nil {
			s.logger.Warn("fetch failed, skipping",
				zap.String("url", url),
				zap.Error(err))
			continue
		}

		page, err := s.Parse(html, src, url)
		if err != nil {
			s.logger.Warn("parse failed, skipping",
				zap.String("url", url),
				zap.Error(err))
			continue
		}
		pages = append(pages, *page)

		// Politeness delay between requests to the same source.
		if delay := s.cfg.Delay.Duration(); delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return pages, ctx.Err()
			}
		}
	}

	return pages, nil
}

// apiCapture is the persisted form of an API source response.
type apiCapture struct {
	Source      string          `json:"source"`
	Category    string          `json:"category"`
	APIResponse json.RawMessage `json:"api_response"`
}

// FetchAPI retrieves an API source and persists the raw JSON response.
func (s *Scraper) FetchAPI(ctx context.Context, src Source, outputDir string) error {
	if err := src.Validate(); err != nil {
		return err
	}

	body, err := s.Fetch(ctx, src.APIEndpoint)
	if err != nil {
		return err
	}

	capture := apiCapture{
		Source:      src.Name,
		Category:    src.Category,
		APIResponse: json.RawMessage(body),
	}

	dir := filepath.Join(outputDir, sourceDirName(src.Name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(capture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling API capture: %w", err)
	}

	path := filepath.Join(dir, apiCaptureFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing API capture: %w", err)
	}

	s.logger.Info("saved API data",
		zap.String("source", src.Name),
		zap.String("path", path))
	return nil
}

// SavePage persists one page as {source}_{timestamp}.json under a
// per-source directory. Returns the written path.
func (s *Scraper) SavePage(page ScrapedPage, outputDir string) (string, error) {
	dir := filepath.Join(outputDir, sourceDirName(page.Source))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling page: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", sourceDirName(page.Source), page.Timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing page: %w", err)
	}

	return path, nil
}

// ScrapeAll runs every source by strategy, persisting results under
// outputDir. Per-source failures are logged and do not stop the run.
func (s *Scraper) ScrapeAll(ctx context.Context, sources []Source, outputDir string) error {
	for _, src := range sources {
		s.logger.Info("scraping source",
			zap.String("source", src.Name),
			zap.String("strategy", src.Strategy))

		switch src.Strategy {
		case StrategyAPI:
			if err := s.FetchAPI(ctx, src, outputDir); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("API source failed", zap.String("source", src.Name), zap.Error(err))
			}
		default:
			pages, err := s.ScrapeSource(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("source failed", zap.String("source", src.Name), zap.Error(err))
				continue
			}
			for _, page := range pages {
				if _, err := s.SavePage(page, outputDir); err != nil {
					s.logger.Warn("save failed", zap.String("source", src.Name), zap.Error(err))
				}
			}
		}
	}
	return nil
}

// LoadPages reads previously saved pages from outputDir, skipping API
// captures. Used by the pipeline's skip-scrape mode.
func LoadPages(outputDir string) ([]ScrapedPage, error) {
	var pages []ScrapedPage

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" || d.Name() == apiCaptureFile {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var page ScrapedPage
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}

	return pages, nil
}

func sourceDirName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
