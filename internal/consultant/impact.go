package consultant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/extraction"
	"github.com/fyrsmithlabs/consultd/internal/generator"
	"go.uber.org/zap"
)

// ErrMissingInput indicates a required request field is empty.
var ErrMissingInput = errors.New("missing required input")

// BusinessImpact is the structured impact analysis of an AI solution.
type BusinessImpact struct {
	CostSavings            string   `json:"cost_savings"`
	RevenuePotential       string   `json:"revenue_potential"`
	TimeSavings            string   `json:"time_savings"`
	ROIEstimate            string   `json:"roi_estimate"`
	RiskReduction          string   `json:"risk_reduction"`
	CompetitiveAdvantage   string   `json:"competitive_advantage"`
	ImplementationTimeline string   `json:"implementation_timeline"`
	ResourceRequirements   string   `json:"resource_requirements"`
	KeyMetrics             []string `json:"key_metrics"`
	SuccessFactors         []string `json:"success_factors"`
	PotentialChallenges    []string `json:"potential_challenges"`
}

// impactFields is the fixed extraction schema. Names match the section
// headings the analysis prompt asks the generator to produce.
var impactFields = []extraction.FieldSpec{
	{Name: "COST SAVINGS", Kind: extraction.Prose},
	{Name: "REVENUE POTENTIAL", Kind: extraction.Prose},
	{Name: "TIME SAVINGS", Kind: extraction.Prose},
	{Name: "ROI ESTIMATE", Kind: extraction.Prose},
	{Name: "RISK REDUCTION", Kind: extraction.Prose},
	{Name: "COMPETITIVE ADVANTAGE", Kind: extraction.Prose},
	{Name: "IMPLEMENTATION TIMELINE", Kind: extraction.Prose},
	{Name: "RESOURCE REQUIREMENTS", Kind: extraction.Prose},
	{Name: "KEY METRICS", Kind: extraction.List},
	{Name: "SUCCESS FACTORS", Kind: extraction.List},
	{Name: "POTENTIAL CHALLENGES", Kind: extraction.List},
}

// ImpactRequest describes one impact analysis.
type ImpactRequest struct {
	// Problem is the business problem.
	Problem string

	// Solution is the proposed AI solution.
	Solution string

	// Industry is optional industry context.
	Industry string

	// CompanySize is optional sizing context (startup, SMB, enterprise).
	CompanySize string
}

// Analyzer produces structured business-impact records from generator output.
type Analyzer struct {
	client generator.Client
	engine *extraction.Engine
	logger *zap.Logger
}

// NewAnalyzer creates an impact analyzer using the given generator client.
func NewAnalyzer(client generator.Client, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		engine: extraction.NewEngine(extraction.Markers{}),
		logger: logger,
	}
}

// Analyze asks the generator for an impact narrative and extracts it into
// a BusinessImpact. Generator failure is returned as an error; extraction
// itself never fails, missing sections degrade to sentinel values.
func (a *Analyzer) Analyze(ctx context.Context, req ImpactRequest) (*BusinessImpact, error) {
	if strings.TrimSpace(req.Problem) == "" {
		return nil, fmt.Errorf("%w: problem", ErrMissingInput)
	}
	if strings.TrimSpace(req.Solution) == "" {
		return nil, fmt.Errorf("%w: solution", ErrMissingInput)
	}

	a.logger.Debug("analyzing business impact",
		zap.String("industry", req.Industry),
		zap.String("company_size", req.CompanySize))

	raw, err := a.client.Complete(ctx, generator.Request{
		System:    impactSystemPrompt,
		Prompt:    impactPrompt(req),
		MaxTokens: impactMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating impact analysis: %w", err)
	}

	res := a.engine.Extract(raw, impactFields)
	return impactFromResult(res), nil
}

func impactFromResult(res extraction.Result) *BusinessImpact {
	return &BusinessImpact{
		CostSavings:            res.Prose["COST SAVINGS"],
		RevenuePotential:       res.Prose["REVENUE POTENTIAL"],
		TimeSavings:            res.Prose["TIME SAVINGS"],
		ROIEstimate:            res.Prose["ROI ESTIMATE"],
		RiskReduction:          res.Prose["RISK REDUCTION"],
		CompetitiveAdvantage:   res.Prose["COMPETITIVE ADVANTAGE"],
		ImplementationTimeline: res.Prose["IMPLEMENTATION TIMELINE"],
		ResourceRequirements:   res.Prose["RESOURCE REQUIREMENTS"],
		KeyMetrics:             res.Lists["KEY METRICS"],
		SuccessFactors:         res.Lists["SUCCESS FACTORS"],
		PotentialChallenges:    res.Lists["POTENTIAL CHALLENGES"],
	}
}
