package consultant

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/consultd/internal/vectorstore"
)

const (
	consultationSystemPrompt = "You are an expert AI/ML consultant."
	impactSystemPrompt       = "You are a business impact analyst with expertise in AI/ML ROI and implementation."

	consultationMaxTokens = 2000
	impactMaxTokens       = 3000
)

// formatRetrievedContext renders the retrieved cases into the knowledge-base
// section of the consultation prompt.
func formatRetrievedContext(cases []vectorstore.SearchResult) string {
	var b strings.Builder
	for i, c := range cases {
		source := "Unknown"
		if s, ok := c.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		fmt.Fprintf(&b, "\nExample %d:\n%s\n\nSource: %s\nRelevance Score: %.2f\n", i+1, c.Content, source, c.Score)
	}
	return b.String()
}

// consultationPrompt builds the recommendation prompt from the problem,
// optional extra context, and the formatted retrieved cases.
func consultationPrompt(problem, extra, retrievedCases string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert AI/ML consultant. A client has described a business problem, and you need to recommend appropriate AI/ML/DL/RL techniques and approaches.

CLIENT'S PROBLEM:
%s
`, problem)

	if extra != "" {
		fmt.Fprintf(&b, `
ADDITIONAL CONTEXT:
%s
`, extra)
	}

	fmt.Fprintf(&b, `
SIMILAR USE CASES FROM KNOWLEDGE BASE:
%s

Based on the client's problem and similar use cases, provide a structured recommendation:

1. PROBLEM ANALYSIS
   - Restate the problem in technical terms
   - Identify the type of problem (classification, regression, generation, optimization, etc.)
   - Identify the data types involved

2. RECOMMENDED APPROACH
   - Should this use ML, DL, RL, or a combination?
   - Why is this approach appropriate?
   - What are the key requirements (data, compute, expertise)?

3. SPECIFIC TECHNIQUES & MODELS
   - List specific algorithms, architectures, or models
   - For each, explain why it's suitable
   - Mention any proven alternatives

4. IMPLEMENTATION CONSIDERATIONS
   - Data requirements (quantity, quality, labeling)
   - Potential challenges or limitations
   - ROI and feasibility factors

5. SIMILAR SUCCESS STORIES
   - Reference the most relevant example from the knowledge base
   - Explain how it relates to this problem

BE SPECIFIC AND PRACTICAL. Don't just say "use deep learning" - explain which architecture and why.
If the problem is NOT suitable for AI/ML, say so and explain why a traditional approach might be better.
`, retrievedCases)

	return b.String()
}

// impactPrompt builds the business-impact analysis prompt. The numbered
// section headings double as the extraction schema, so changes here must
// stay in sync with impactFields.
func impactPrompt(req ImpactRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business Problem: %s\n\n", req.Problem)
	fmt.Fprintf(&b, "Proposed AI Solution: %s\n\n", req.Solution)
	if req.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n\n", req.Industry)
	}
	if req.CompanySize != "" {
		fmt.Fprintf(&b, "Company Size: %s\n\n", req.CompanySize)
	}

	return fmt.Sprintf(`You are a business impact analyst specializing in AI/ML implementations.

%s
Provide a comprehensive business impact analysis covering:

1. COST SAVINGS: Quantify potential cost reductions (labor, operations, errors, etc.). Use specific percentages and examples.

2. REVENUE POTENTIAL: Identify new revenue opportunities or growth potential. Be specific about mechanisms.

3. TIME SAVINGS: Estimate time saved in processes, decision-making, or operations. Use concrete numbers.

4. ROI ESTIMATE: Provide realistic ROI timeline and percentage. Consider implementation costs.

5. RISK REDUCTION: Explain how AI reduces business risks (compliance, errors, fraud, etc.).

6. COMPETITIVE ADVANTAGE: Describe strategic advantages gained through AI adoption.

7. IMPLEMENTATION TIMELINE: Realistic timeline from planning to full deployment (weeks/months).

8. RESOURCE REQUIREMENTS: Team size, skills needed, infrastructure, budget estimates.

9. KEY METRICS: List 5-7 specific KPIs to track success.

10. SUCCESS FACTORS: List 4-6 critical factors for successful implementation.

11. POTENTIAL CHALLENGES: List 4-6 realistic challenges and risks to consider.

Format your response as structured sections with clear headings. Be specific, quantitative where possible, and realistic.`, b.String())
}
