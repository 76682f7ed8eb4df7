package scraper

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Scraping strategies.
const (
	StrategyStatic = "static"
	StrategyAPI    = "api"
)

var (
	// ErrNoSources indicates an empty or missing sources file.
	ErrNoSources = errors.New("no sources configured")

	// ErrInvalidSource indicates a malformed source entry.
	ErrInvalidSource = errors.New("invalid source")
)

// Selectors are the CSS selectors used to pull content out of a page.
type Selectors struct {
	// Title selects the page title. Defaults to h1.
	Title string `koanf:"title"`

	// Content selects the main content element. Defaults to "article, main".
	Content string `koanf:"content"`
}

// Source describes one scrape target.
type Source struct {
	Name        string              `koanf:"name"`
	Category    string              `koanf:"category"`
	Strategy    string              `koanf:"strategy"`
	URLs        []string            `koanf:"urls"`
	APIEndpoint string              `koanf:"api_endpoint"`
	Selectors   Selectors           `koanf:"selectors"`
	Patterns    map[string][]string `koanf:"extract_patterns"`
}

// Validate checks a source entry for the fields its strategy needs.
func (s Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidSource)
	}
	switch s.Strategy {
	case StrategyStatic, "":
		if len(s.URLs) == 0 {
			return fmt.Errorf("%w: %s: urls required for static strategy", ErrInvalidSource, s.Name)
		}
	case StrategyAPI:
		if s.APIEndpoint == "" {
			return fmt.Errorf("%w: %s: api_endpoint required for api strategy", ErrInvalidSource, s.Name)
		}
	default:
		return fmt.Errorf("%w: %s: unknown strategy %q", ErrInvalidSource, s.Name, s.Strategy)
	}
	return nil
}

// SourceList is the parsed sources file. Priority sources form the minimal
// corpus; extended sources are scraped with --all.
type SourceList struct {
	Priority []Source `koanf:"priority_sources"`
	Extended []Source `koanf:"extended_sources"`
}

// All returns priority plus extended sources.
func (l SourceList) All() []Source {
	out := make([]Source, 0, len(l.Priority)+len(l.Extended))
	out = append(out, l.Priority...)
	out = append(out, l.Extended...)
	return out
}

// LoadSources reads and validates the YAML sources file.
func LoadSources(path string) (*SourceList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	var list SourceList
	if err := k.Unmarshal("", &list); err != nil {
		return nil, fmt.Errorf("unmarshaling sources: %w", err)
	}

	if len(list.Priority) == 0 && len(list.Extended) == 0 {
		return nil, ErrNoSources
	}

	for _, src := range list.All() {
		if err := src.Validate(); err != nil {
			return nil, err
		}
	}

	return &list, nil
}
