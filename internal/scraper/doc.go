// Package scraper fetches and parses AI/ML use-case articles from a
// configured list of sources.
//
// Sources are declared in a YAML file (name, category, strategy, URLs,
// CSS selectors, keyword patterns). Static pages are fetched with retry
// and parsed with goquery; API sources are fetched as raw JSON. Results
// are persisted as ScrapedPage JSON records for the processing stage.
package scraper
