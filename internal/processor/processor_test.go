package processor

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fyrsmithlabs/consultd/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPage() scraper.ScrapedPage {
	return scraper.ScrapedPage{
		URL:      "http://example.com/ml",
		Source:   "Test Source",
		Category: "retail",
		Title:    "Machine Learning in Retail",
		Sections: []scraper.Section{
			{
				Heading: "Use Case: Churn Scoring",
				Content: []string{
					"We applied machine learning because churn is costly.",
					"A random forest model proved effective in production.",
				},
			},
			{
				Heading: "About the Author",
				Content: []string{"Machine learning consultant."},
			},
		},
	}
}

func TestProcessor_Process(t *testing.T) {
	p := New(zap.NewNop())

	cases := p.Process([]scraper.ScrapedPage{testPage()})
	require.Len(t, cases, 1)

	uc := cases[0]
	assert.NotEmpty(t, uc.ID)
	assert.Equal(t, "Use Case: Churn Scoring", uc.BusinessProblem)
	assert.Equal(t, []string{"ML"}, uc.RecommendedTech)
	assert.Equal(t, []string{"Random Forest"}, uc.Models)
	assert.Contains(t, uc.Reasoning, "because churn is costly")
	assert.Equal(t, "retail", uc.Industry)
	assert.Equal(t, "Test Source", uc.Source)
	assert.Equal(t, "http://example.com/ml", uc.URL)
}

func TestProcessor_SkipsNonUseCaseSections(t *testing.T) {
	p := New(zap.NewNop())

	page := testPage()
	page.Sections = page.Sections[1:]

	assert.Empty(t, p.Process([]scraper.ScrapedPage{page}))
}

func TestProcessor_SkipsSectionsWithoutTech(t *testing.T) {
	p := New(zap.NewNop())

	page := scraper.ScrapedPage{
		Sections: []scraper.Section{{
			Heading: "Problem Overview",
			Content: []string{"Margins shrank last year."},
		}},
	}

	assert.Empty(t, p.Process([]scraper.ScrapedPage{page}))
}

func TestProcessor_PatternPairs(t *testing.T) {
	p := New(zap.NewNop())

	page := scraper.ScrapedPage{
		URL:    "http://example.com",
		Source: "Test Source",
		Patterns: map[string][]scraper.PatternMatch{
			"problem": {
				{Keyword: "churn", Context: "customer churn was rising every quarter"},
				{Keyword: "fraud", Context: "unmatched problem with no solution entry"},
			},
			"solution": {
				{Keyword: "machine learning", Context: "a random forest classifier cut attrition because it caught the warning signs"},
			},
		},
	}

	cases := p.Process([]scraper.ScrapedPage{page})
	require.Len(t, cases, 1)
	assert.Equal(t, "churn", cases[0].BusinessProblem)
	assert.Equal(t, []string{"ML"}, cases[0].RecommendedTech)
	assert.Contains(t, cases[0].Reasoning, "because it caught the warning signs")
}

func TestProcessor_SplitsLongSections(t *testing.T) {
	p := New(zap.NewNop())

	sentence := "Machine learning with a random forest is effective for churn scoring. "
	long := strings.Repeat(sentence, 80)
	require.Greater(t, len(long), maxSectionChars)

	page := scraper.ScrapedPage{
		Sections: []scraper.Section{{
			Heading: "Use Case: Churn Scoring",
			Content: []string{long},
		}},
	}

	cases := p.Process([]scraper.ScrapedPage{page})
	assert.GreaterOrEqual(t, len(cases), 2)
	for _, uc := range cases {
		assert.Equal(t, []string{"ML"}, uc.RecommendedTech)
	}
}

func TestSaveAndLoadUseCases(t *testing.T) {
	dir := t.TempDir()

	cases := []UseCase{
		{
			ID:              "uc-1",
			BusinessProblem: "Churn scoring",
			DataType:        "tabular",
			RecommendedTech: []string{"ML"},
			Models:          []string{"Random Forest"},
			Reasoning:       "Handles tabular data well",
			Source:          "Test Source",
		},
		{
			ID:              "uc-2",
			BusinessProblem: "Invoice OCR",
			DataType:        "image",
			RecommendedTech: []string{"DL"},
			Models:          []string{"CNN"},
			Reasoning:       "Vision task",
		},
	}

	require.NoError(t, SaveUseCases(cases, dir))

	loaded, err := LoadUseCases(dir)
	require.NoError(t, err)
	assert.Equal(t, cases, loaded)

	// JSONL carries one use case per line.
	f, err := os.Open(filepath.Join(dir, useCasesJSONL))
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 2, lines)
}

func TestLoadUseCases_Missing(t *testing.T) {
	_, err := LoadUseCases(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading use cases")
}
