package processor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/scraper"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
)

const (
	// maxSectionChars is the length above which a section is split
	// before classification.
	maxSectionChars = 2000

	sectionChunkOverlap = 200

	useCasesFile  = "use_cases.json"
	useCasesJSONL = "use_cases.jsonl"
)

// UseCase is a structured problem-to-solution mapping extracted from
// scraped content.
type UseCase struct {
	ID              string   `json:"id"`
	BusinessProblem string   `json:"business_problem"`
	DataType        string   `json:"data_type"`
	RecommendedTech []string `json:"recommended_tech"`
	Models          []string `json:"models"`
	Reasoning       string   `json:"reasoning"`
	Industry        string   `json:"industry,omitempty"`
	Source          string   `json:"source,omitempty"`
	URL             string   `json:"url,omitempty"`
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Processor turns scraped pages into use cases.
type Processor struct {
	classifier *Classifier
	splitter   textsplitter.RecursiveCharacter
	logger     *zap.Logger
}

// New creates a Processor with the default rule tables.
func New(logger *zap.Logger) *Processor {
	return &Processor{
		classifier: NewClassifier(nil, nil),
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(maxSectionChars),
			textsplitter.WithChunkOverlap(sectionChunkOverlap),
		),
		logger: logger,
	}
}

// Process extracts use cases from every page. Sections whose headings do
// not look like use cases are skipped; keyword pattern matches yield
// additional problem/solution pairs.
func (p *Processor) Process(pages []scraper.ScrapedPage) []UseCase {
	var cases []UseCase

	for _, page := range pages {
		before := len(cases)

		for _, section := range page.Sections {
			if !isUseCaseSection(section.Heading) {
				continue
			}
			cases = append(cases, p.sectionUseCases(section, page)...)
		}

		cases = append(cases, p.patternUseCases(page)...)

		p.logger.Debug("processed page",
			zap.String("url", page.URL),
			zap.Int("use_cases", len(cases)-before))
	}

	p.logger.Info("processing complete",
		zap.Int("pages", len(pages)),
		zap.Int("use_cases", len(cases)))
	return cases
}

// sectionUseCases classifies one section, splitting it first when it is
// too long for a single classification pass.
func (p *Processor) sectionUseCases(section scraper.Section, page scraper.ScrapedPage) []UseCase {
	body := strings.Join(section.Content, "\n")
	if len(body) <= maxSectionChars {
		if uc := p.createUseCase(section.Heading, section.Content, page); uc != nil {
			return []UseCase{*uc}
		}
		return nil
	}

	parts, err := p.splitter.SplitText(body)
	if err != nil {
		p.logger.Warn("section split failed",
			zap.String("heading", section.Heading),
			zap.Error(err))
		parts = []string{body}
	}

	var cases []UseCase
	for _, part := range parts {
		if uc := p.createUseCase(section.Heading, []string{part}, page); uc != nil {
			cases = append(cases, *uc)
		}
	}
	return cases
}

// patternUseCases pairs problem keyword matches with solution matches.
func (p *Processor) patternUseCases(page scraper.ScrapedPage) []UseCase {
	problems := page.Patterns["problem"]
	solutions := page.Patterns["solution"]

	var cases []UseCase
	for i, problem := range problems {
		if i >= len(solutions) {
			break
		}
		uc := p.createUseCase(problem.Keyword, []string{problem.Context, solutions[i].Context}, page)
		if uc != nil {
			cases = append(cases, *uc)
		}
	}
	return cases
}

// createUseCase classifies one candidate. Returns nil when the text names
// no technology or model worth recommending.
func (p *Processor) createUseCase(heading string, content []string, page scraper.ScrapedPage) *UseCase {
	fullText := heading + "\n" + strings.Join(content, "\n")
	lower := strings.ToLower(fullText)

	problem := heading
	if problem == "" {
		if len(content) > 0 {
			problem = content[0]
		} else {
			problem = "Unknown problem"
		}
	}

	dataTypes := p.classifier.DataTypes(fullText)
	dataType := "unstructured"
	if len(dataTypes) > 0 {
		dataType = strings.Join(dataTypes, ", ")
	}

	tech := p.classifier.TechCategories(fullText)
	if len(tech) == 0 {
		if strings.Contains(lower, "artificial intelligence") || strings.Contains(lower, "ai") {
			tech = []string{"ML"}
		}
	}

	models := p.classifier.ModelNames(fullText)
	if len(tech) == 0 && len(models) == 0 {
		return nil
	}

	return &UseCase{
		ID:              uuid.NewString(),
		BusinessProblem: problem,
		DataType:        dataType,
		RecommendedTech: tech,
		Models:          models,
		Reasoning:       extractReasoning(content),
		Industry:        page.Category,
		Source:          page.Source,
		URL:             page.URL,
	}
}

func isUseCaseSection(heading string) bool {
	lower := strings.ToLower(heading)
	for _, indicator := range useCaseIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// extractReasoning keeps up to three sentences that explain why the
// approach works.
func extractReasoning(content []string) string {
	var sentences []string

	for _, paragraph := range content {
		for _, sentence := range sentenceSplit.Split(paragraph, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			lower := strings.ToLower(sentence)
			for _, kw := range reasoningKeywords {
				if strings.Contains(lower, kw) {
					sentences = append(sentences, sentence)
					break
				}
			}
			if len(sentences) == 3 {
				return strings.Join(sentences, " ")
			}
		}
	}

	if len(sentences) == 0 {
		return "Appropriate for this use case"
	}
	return strings.Join(sentences, " ")
}

// SaveUseCases writes the use cases as a JSON array plus a JSONL file for
// streaming consumers.
func SaveUseCases(cases []UseCase, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling use cases: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, useCasesFile), data, 0644); err != nil {
		return fmt.Errorf("writing use cases: %w", err)
	}

	f, err := os.Create(filepath.Join(outputDir, useCasesJSONL))
	if err != nil {
		return fmt.Errorf("creating JSONL file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, uc := range cases {
		if err := enc.Encode(uc); err != nil {
			return fmt.Errorf("encoding use case: %w", err)
		}
	}
	return w.Flush()
}

// LoadUseCases reads a previously saved use-case file.
func LoadUseCases(outputDir string) ([]UseCase, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, useCasesFile))
	if err != nil {
		return nil, fmt.Errorf("reading use cases: %w", err)
	}

	var cases []UseCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing use cases: %w", err)
	}
	return cases, nil
}
