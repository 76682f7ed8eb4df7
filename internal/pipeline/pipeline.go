// Package pipeline orchestrates the offline ingestion flow: scrape raw
// pages, process them into use cases, chunk the use cases, and store the
// chunks in the vector store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/fyrsmithlabs/consultd/internal/processor"
	"github.com/fyrsmithlabs/consultd/internal/scraper"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
	"go.uber.org/zap"
)

// Scrape modes.
const (
	ModePriority = "priority"
	ModeAll      = "all"
)

// addBatchSize is how many chunks go to the store per AddDocuments call.
const addBatchSize = 100

var (
	// ErrNoData indicates no raw pages were found to process.
	ErrNoData = errors.New("no raw data found")

	// ErrInvalidOptions indicates missing pipeline dependencies.
	ErrInvalidOptions = errors.New("invalid pipeline options")
)

// DocumentStore is the slice of the vector store the pipeline needs.
type DocumentStore interface {
	AddDocuments(ctx context.Context, docs []vectorstore.Document) ([]string, error)
}

// Stats summarizes one pipeline run.
type Stats struct {
	Pages    int `json:"pages"`
	UseCases int `json:"use_cases"`
	Chunks   int `json:"chunks"`
	Stored   int `json:"stored"`
}

// Options configure a Pipeline.
type Options struct {
	Scraper       *scraper.Scraper
	Processor     *processor.Processor
	Store         DocumentStore
	ScraperConfig config.ScraperConfig
	Config        config.PipelineConfig
	Logger        *zap.Logger
}

// Pipeline runs the ingestion stages in order.
type Pipeline struct {
	scraper   *scraper.Scraper
	processor *processor.Processor
	store     DocumentStore
	scrapeCfg config.ScraperConfig
	cfg       config.PipelineConfig
	logger    *zap.Logger
}

// New creates a Pipeline. The scraper may be nil when skip-scrape mode
// is configured.
func New(opts Options) (*Pipeline, error) {
	if opts.Processor == nil {
		return nil, fmt.Errorf("%w: processor required", ErrInvalidOptions)
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store required", ErrInvalidOptions)
	}
	if opts.Scraper == nil && !opts.Config.SkipScrape {
		return nil, fmt.Errorf("%w: scraper required unless skip_scrape is set", ErrInvalidOptions)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Pipeline{
		scraper:   opts.Scraper,
		processor: opts.Processor,
		store:     opts.Store,
		scrapeCfg: opts.ScraperConfig,
		cfg:       opts.Config,
		logger:    opts.Logger,
	}, nil
}

// Run executes scrape, process, chunk, and store. In skip-scrape mode
// the scrape stage is replaced by loading previously saved raw pages.
func (p *Pipeline) Run(ctx context.Context, mode string) (*Stats, error) {
	rawDir := p.rawDir()

	if p.cfg.SkipScrape {
		p.logger.Info("skipping scrape stage, using existing raw data",
			zap.String("raw_dir", rawDir))
	} else {
		if err := p.scrape(ctx, mode, rawDir); err != nil {
			return nil, err
		}
	}

	pages, err := scraper.LoadPages(rawDir)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, rawDir)
	}

	cases := p.processor.Process(pages)

	processedDir := filepath.Join(p.cfg.DataDir, "processed")
	if err := processor.SaveUseCases(cases, processedDir); err != nil {
		return nil, err
	}
	p.logger.Info("processing stage complete",
		zap.Int("pages", len(pages)),
		zap.Int("use_cases", len(cases)),
		zap.String("output_dir", processedDir))

	docs := processor.ChunkUseCases(cases)

	stored, err := p.storeChunks(ctx, docs)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Pages:    len(pages),
		UseCases: len(cases),
		Chunks:   len(docs),
		Stored:   stored,
	}
	p.logger.Info("pipeline complete",
		zap.Int("pages", stats.Pages),
		zap.Int("use_cases", stats.UseCases),
		zap.Int("chunks", stats.Chunks),
		zap.Int("stored", stats.Stored))
	return stats, nil
}

func (p *Pipeline) scrape(ctx context.Context, mode string, rawDir string) error {
	list, err := scraper.LoadSources(p.scrapeCfg.SourcesFile)
	if err != nil {
		return err
	}

	sources := list.Priority
	if mode == ModeAll {
		sources = list.All()
	}

	p.logger.Info("scrape stage starting",
		zap.String("mode", mode),
		zap.Int("sources", len(sources)))
	return p.scraper.ScrapeAll(ctx, sources, rawDir)
}

func (p *Pipeline) storeChunks(ctx context.Context, docs []vectorstore.Document) (int, error) {
	stored := 0
	for start := 0; start < len(docs); start += addBatchSize {
		end := start + addBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		ids, err := p.store.AddDocuments(ctx, docs[start:end])
		if err != nil {
			return stored, fmt.Errorf("storing chunks %d-%d: %w", start, end, err)
		}
		stored += len(ids)
	}
	return stored, nil
}

// rawDir is where raw pages live: the scraper's output dir when set,
// otherwise <data_dir>/raw.
func (p *Pipeline) rawDir() string {
	if p.scrapeCfg.OutputDir != "" {
		return p.scrapeCfg.OutputDir
	}
	return filepath.Join(p.cfg.DataDir, "raw")
}
