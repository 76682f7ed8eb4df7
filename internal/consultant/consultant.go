package consultant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/fyrsmithlabs/consultd/internal/generator"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
	"go.uber.org/zap"
)

// ErrEmptyProblem indicates a suggestion request without a problem statement.
var ErrEmptyProblem = errors.New("problem description required")

// Confidence levels derived from retrieval similarity.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Searcher is the subset of the vector store the consultant needs.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]vectorstore.SearchResult, error)
}

// SuggestRequest describes one consultation.
type SuggestRequest struct {
	// Problem is the business problem description.
	Problem string

	// Context is optional additional context (industry, scale, constraints).
	Context string

	// Industry and CompanySize feed the impact analysis when enabled.
	Industry    string
	CompanySize string

	// IncludeImpact requests a business-impact analysis pass.
	IncludeImpact bool

	// K overrides the configured number of similar cases to retrieve.
	K int
}

// Recommendation is the consultation result.
type Recommendation struct {
	Problem         string                     `json:"problem"`
	Recommendations string                     `json:"recommendations"`
	SimilarCases    []vectorstore.SearchResult `json:"similar_cases"`
	Confidence      string                     `json:"confidence"`
	Impact          *BusinessImpact            `json:"business_impact,omitempty"`
}

// Consultant answers consulting questions with retrieval-augmented generation.
type Consultant struct {
	store    Searcher
	client   generator.Client
	analyzer *Analyzer
	logger   *zap.Logger
	topK     int
}

// New creates a Consultant. The analyzer may be nil, in which case impact
// analysis is skipped regardless of the request.
func New(store Searcher, client generator.Client, analyzer *Analyzer, cfg config.ConsultantConfig, logger *zap.Logger) *Consultant {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &Consultant{
		store:    store,
		client:   client,
		analyzer: analyzer,
		logger:   logger,
		topK:     topK,
	}
}

// Suggest retrieves similar use cases, generates a recommendation, and
// optionally attaches a business-impact analysis.
//
// Impact-analysis failure degrades to a recommendation without impact;
// retrieval or generation failure is returned as an error.
func (c *Consultant) Suggest(ctx context.Context, req SuggestRequest) (*Recommendation, error) {
	if strings.TrimSpace(req.Problem) == "" {
		return nil, ErrEmptyProblem
	}

	k := req.K
	if k <= 0 {
		k = c.topK
	}

	cases, err := c.store.Search(ctx, req.Problem, k)
	if err != nil {
		return nil, fmt.Errorf("searching similar cases: %w", err)
	}

	c.logger.Debug("retrieved similar cases",
		zap.Int("count", len(cases)),
		zap.Int("k", k))

	prompt := consultationPrompt(req.Problem, req.Context, formatRetrievedContext(cases))

	response, err := c.client.Complete(ctx, generator.Request{
		System:    consultationSystemPrompt,
		Prompt:    prompt,
		MaxTokens: consultationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating recommendation: %w", err)
	}

	rec := &Recommendation{
		Problem:         req.Problem,
		Recommendations: response,
		SimilarCases:    cases,
		Confidence:      confidence(cases),
	}

	if req.IncludeImpact && c.analyzer != nil {
		impact, err := c.analyzer.Analyze(ctx, ImpactRequest{
			Problem:     req.Problem,
			Solution:    response,
			Industry:    req.Industry,
			CompanySize: req.CompanySize,
		})
		if err != nil {
			c.logger.Warn("impact analysis failed", zap.Error(err))
		} else {
			rec.Impact = impact
		}
	}

	return rec, nil
}

// confidence grades the retrieval quality from the mean similarity score.
func confidence(cases []vectorstore.SearchResult) string {
	if len(cases) == 0 {
		return ConfidenceLow
	}

	var sum float32
	for _, c := range cases {
		sum += c.Score
	}
	mean := sum / float32(len(cases))

	switch {
	case mean > 0.8:
		return ConfidenceHigh
	case mean > 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
