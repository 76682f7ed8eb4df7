package scraper

// Section is a heading-delimited block of page content.
type Section struct {
	Heading string   `json:"heading"`
	Content []string `json:"content"`
}

// PatternMatch is a keyword hit with its surrounding context.
type PatternMatch struct {
	Keyword string `json:"keyword"`
	Context string `json:"context"`
}

// ScrapedPage is one scraped document, persisted as JSON under the raw
// data directory.
type ScrapedPage struct {
	URL        string                    `json:"url"`
	Source     string                    `json:"source"`
	Category   string                    `json:"category"`
	Timestamp  string                    `json:"timestamp"`
	Title      string                    `json:"title"`
	Paragraphs []string                  `json:"paragraphs"`
	Sections   []Section                 `json:"sections"`
	Patterns   map[string][]PatternMatch `json:"extracted_patterns,omitempty"`
}
