package main

import (
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/consultant"
	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
	"github.com/spf13/cobra"
)

var (
	consultIndustry    string
	consultCompanySize string
	consultContext     string
	consultImpact      bool
	consultK           int
)

func init() {
	rootCmd.AddCommand(consultCmd)
	consultCmd.Flags().StringVar(&consultIndustry, "industry", "", "industry the problem belongs to")
	consultCmd.Flags().StringVar(&consultCompanySize, "company-size", "", "company size, e.g. 50-200")
	consultCmd.Flags().StringVar(&consultContext, "context", "", "additional context for the recommendation")
	consultCmd.Flags().BoolVar(&consultImpact, "impact", false, "include business-impact analysis")
	consultCmd.Flags().IntVar(&consultK, "k", 0, "number of similar cases to retrieve (server default when 0)")
}

// consultCmd requests a full consultation
var consultCmd = &cobra.Command{
	Use:   "consult <problem>",
	Short: "Request an AI/ML consultation for a business problem",
	Long: `Request a consultation: the server retrieves similar prior use cases,
asks the language model for recommendations, and optionally adds a
business-impact analysis.

Examples:
  # Basic consultation
  consultctl consult "Customer churn is rising and support can't keep up"

  # With industry context and impact analysis
  consultctl consult --industry telecom --company-size 200-500 --impact \
    "Customer churn is rising"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConsult,
}

// ConsultRequest matches internal/http ConsultRequest
type ConsultRequest struct {
	Problem       string `json:"problem"`
	Context       string `json:"context,omitempty"`
	Industry      string `json:"industry,omitempty"`
	CompanySize   string `json:"company_size,omitempty"`
	IncludeImpact bool   `json:"include_impact"`
	K             int    `json:"k,omitempty"`
}

// ConsultResponse matches internal/http ConsultResponse
type ConsultResponse struct {
	Recommendations string                     `json:"recommendations"`
	Confidence      string                     `json:"confidence"`
	SimilarCases    []vectorstore.SearchResult `json:"similar_cases"`
	BusinessImpact  *consultant.BusinessImpact `json:"businessImpact"`
}

// runConsult handles the consult command
func runConsult(cmd *cobra.Command, args []string) error {
	req := ConsultRequest{
		Problem:       strings.Join(args, " "),
		Context:       consultContext,
		Industry:      consultIndustry,
		CompanySize:   consultCompanySize,
		IncludeImpact: consultImpact,
		K:             consultK,
	}

	var resp ConsultResponse
	if err := postJSON("/api/v1/consult", req, &resp); err != nil {
		return err
	}

	cmd.Printf("Confidence: %s (based on %d similar cases)\n\n", resp.Confidence, len(resp.SimilarCases))
	cmd.Println(resp.Recommendations)

	if resp.BusinessImpact != nil {
		cmd.Println()
		cmd.Println(resp.BusinessImpact.FormatReport())
	}
	return nil
}
