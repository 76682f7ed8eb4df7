// Package integration exercises the full consultd flow: scrape, process,
// store, and serve consultations over HTTP. Tests here avoid external
// services by stubbing the embedder and the language model client.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"hash/fnv"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/consultd/internal/config"
	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/generator"
	apihttp "github.com/fyrsmithlabs/consultd/internal/http"
	"github.com/fyrsmithlabs/consultd/internal/pipeline"
	"github.com/fyrsmithlabs/consultd/internal/processor"
	"github.com/fyrsmithlabs/consultd/internal/scraper"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

const embedDim = 16

// hashEmbedder is a deterministic bag-of-words embedder. Texts sharing
// words land near each other, which is all similarity search needs here.
type hashEmbedder struct{}

func embedText(text string) []float32 {
	vec := make([]float32, embedDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[h.Sum32()%embedDim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}

func (hashEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = embedText(t)
	}
	return out, nil
}

func (hashEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return embedText(text), nil
}

// stubGenerator answers the consultation and impact prompts with canned
// markdown, keyed off the system prompt.
type stubGenerator struct{}

func (stubGenerator) Complete(_ context.Context, req generator.Request) (string, error) {
	if strings.Contains(req.System, "business impact") {
		return impactMarkdown, nil
	}
	return "Start with a Random Forest churn model on billing history.", nil
}

const impactMarkdown = `### 1. COST SAVINGS
Retention offers targeted by the model cut save-desk spend by 30%.

### 2. ROI ESTIMATE
Payback within 12 months.

### 9. KEY METRICS
- Monthly churn rate
- Save-desk conversion rate
`

const articleHTML = `<!DOCTYPE html>
<html><body>
<article>
  <h1>Churn Scoring at a Telecom</h1>
  <p>A telecom operator watched subscription churn climb month over month.</p>
  <h2>Use Case: Churn Scoring</h2>
  <p>The team used machine learning on tabular billing data and shipped a
  Random Forest model. This approach worked because churn is costly and the
  model surfaced at-risk accounts weeks ahead of cancellation.</p>
</article>
</body></html>`

func TestConsultd_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := zap.NewNop()
	tmp := t.TempDir()

	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer content.Close()

	sourcesFile := filepath.Join(tmp, "sources.yaml")
	sourcesYAML := `priority_sources:
  - name: Telecom Cases
    category: telecom
    strategy: static
    urls:
      - ` + content.URL + `/churn
`
	require.NoError(t, os.WriteFile(sourcesFile, []byte(sourcesYAML), 0o600))

	cfg := &config.Config{}
	cfg.VectorStore.Provider = "chromem"
	cfg.VectorStore.Chromem.Path = filepath.Join(tmp, "vectorstore")
	cfg.VectorStore.Chromem.Collection = "ai_use_cases"
	cfg.VectorStore.Chromem.VectorSize = embedDim
	cfg.Scraper = config.ScraperConfig{
		SourcesFile: sourcesFile,
		OutputDir:   filepath.Join(tmp, "raw"),
		UserAgent:   "consultd-integration",
		Timeout:     config.Duration(5 * time.Second),
		Delay:       config.Duration(time.Millisecond),
		MaxRetries:  1,
	}
	cfg.Pipeline.DataDir = tmp

	store, err := vectorstore.NewStore(cfg, hashEmbedder{}, logger)
	require.NoError(t, err)
	defer store.Close()

	// Ingest: scrape the fixture site, classify, chunk, store.
	p, err := pipeline.New(pipeline.Options{
		Scraper:       scraper.New(cfg.Scraper, logger),
		Processor:     processor.New(logger),
		Store:         store,
		ScraperConfig: cfg.Scraper,
		Config:        cfg.Pipeline,
		Logger:        logger,
	})
	require.NoError(t, err)

	stats, err := p.Run(ctx, pipeline.ModePriority)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pages)
	require.GreaterOrEqual(t, stats.UseCases, 1)
	assert.Equal(t, stats.UseCases*3, stats.Chunks)
	assert.Equal(t, stats.Chunks, stats.Stored)

	// The corpus is searchable directly.
	results, err := store.Search(ctx, "subscription churn scoring", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Metadata, "chunk_type")

	// Serve consultations over HTTP against the ingested corpus.
	client := stubGenerator{}
	analyzer := consultant.NewAnalyzer(client, logger)
	svc := consultant.New(store, client, analyzer, config.ConsultantConfig{TopK: 3}, logger)

	srv, err := apihttp.NewServer(svc, analyzer, store, logger, &apihttp.Config{Host: "localhost", Port: 0})
	require.NoError(t, err)

	api := httptest.NewServer(srv.Handler())
	defer api.Close()

	body := `{"problem": "Subscription churn is rising", "industry": "telecom", "include_impact": true}`
	resp, err := http.Post(api.URL+"/api/v1/consult", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var consultResp struct {
		Recommendations string                     `json:"recommendations"`
		Confidence      string                     `json:"confidence"`
		SimilarCases    []vectorstore.SearchResult `json:"similar_cases"`
		BusinessImpact  *consultant.BusinessImpact `json:"businessImpact"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&consultResp))

	assert.Contains(t, consultResp.Recommendations, "Random Forest")
	assert.NotEmpty(t, consultResp.Confidence)
	assert.NotEmpty(t, consultResp.SimilarCases)

	require.NotNil(t, consultResp.BusinessImpact)
	assert.Contains(t, consultResp.BusinessImpact.CostSavings, "30%")
	assert.Contains(t, consultResp.BusinessImpact.KeyMetrics, "Monthly churn rate")

	// Stats reflect the stored chunks.
	statsResp, err := http.Get(api.URL + "/api/v1/stats")
	require.NoError(t, err)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var statsBody struct {
		TotalPoints int `json:"total_points"`
	}
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&statsBody))
	assert.Equal(t, stats.Stored, statsBody.TotalPoints)
}
