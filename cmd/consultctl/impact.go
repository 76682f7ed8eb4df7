package main

import (
	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/spf13/cobra"
)

var (
	impactProblem     string
	impactSolution    string
	impactIndustry    string
	impactCompanySize string
)

func init() {
	rootCmd.AddCommand(impactCmd)
	impactCmd.Flags().StringVar(&impactProblem, "problem", "", "business problem (required)")
	impactCmd.Flags().StringVar(&impactSolution, "solution", "", "proposed AI solution (required)")
	impactCmd.Flags().StringVar(&impactIndustry, "industry", "", "industry the problem belongs to")
	impactCmd.Flags().StringVar(&impactCompanySize, "company-size", "", "company size, e.g. 50-200")
	_ = impactCmd.MarkFlagRequired("problem")
	_ = impactCmd.MarkFlagRequired("solution")
}

// impactCmd runs a standalone business-impact analysis
var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Run a standalone business-impact analysis",
	Long: `Run a business-impact analysis for a problem and a proposed AI solution
without the retrieval step.

Examples:
  consultctl impact \
    --problem "Support tickets take 2 days to resolve" \
    --solution "RAG assistant over the internal knowledge base" \
    --industry saas --company-size 50-200`,
	RunE: runImpact,
}

// ImpactRequest matches internal/http ImpactRequest
type ImpactRequest struct {
	Problem     string `json:"problem"`
	AISolution  string `json:"ai_solution"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
}

// runImpact handles the impact command
func runImpact(cmd *cobra.Command, args []string) error {
	req := ImpactRequest{
		Problem:     impactProblem,
		AISolution:  impactSolution,
		Industry:    impactIndustry,
		CompanySize: impactCompanySize,
	}

	var impact consultant.BusinessImpact
	if err := postJSON("/api/v1/impact", req, &impact); err != nil {
		return err
	}

	cmd.Println(impact.FormatReport())
	return nil
}
