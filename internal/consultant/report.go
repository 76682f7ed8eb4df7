package consultant

import (
	"fmt"
	"strings"
)

const reportBanner = "================================================================================"

// FormatReport renders the impact analysis as a readable text report.
func (b *BusinessImpact) FormatReport() string {
	var r strings.Builder

	r.WriteString("\n" + reportBanner + "\n")
	r.WriteString("📊 BUSINESS IMPACT ANALYSIS\n")
	r.WriteString(reportBanner + "\n\n")

	sections := []struct {
		heading string
		body    string
	}{
		{"💰 COST SAVINGS", b.CostSavings},
		{"📈 REVENUE POTENTIAL", b.RevenuePotential},
		{"⏱️ TIME SAVINGS", b.TimeSavings},
		{"💵 ROI ESTIMATE", b.ROIEstimate},
		{"🛡️ RISK REDUCTION", b.RiskReduction},
		{"🚀 COMPETITIVE ADVANTAGE", b.CompetitiveAdvantage},
		{"📅 IMPLEMENTATION TIMELINE", b.ImplementationTimeline},
		{"👥 RESOURCE REQUIREMENTS", b.ResourceRequirements},
	}
	for _, s := range sections {
		fmt.Fprintf(&r, "%s\n%s\n\n", s.heading, s.body)
	}

	lists := []struct {
		heading string
		items   []string
	}{
		{"📊 KEY METRICS TO TRACK", b.KeyMetrics},
		{"✅ SUCCESS FACTORS", b.SuccessFactors},
		{"⚠️ POTENTIAL CHALLENGES", b.PotentialChallenges},
	}
	for _, l := range lists {
		r.WriteString(l.heading + "\n")
		for _, item := range l.items {
			fmt.Fprintf(&r, "  • %s\n", item)
		}
		r.WriteString("\n")
	}

	r.WriteString(reportBanner + "\n")

	return r.String()
}
