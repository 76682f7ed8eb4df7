package extraction

import (
	"regexp"
	"sort"
	"strings"
)

// Markers is the recognized-marker configuration for list segmentation.
// The tables are data, not control flow: extending the recognized glyph
// or phrase set requires no change to the segmenter itself.
type Markers struct {
	// Bullets are single-glyph bullet markers recognized at item start.
	Bullets []string `json:"bullets"`

	// Emoji is the closed set of emoji glyphs the producing model uses
	// as bullets.
	Emoji []string `json:"emoji"`

	// PreamblePhrases mark a pre-list introductory sentence. A line
	// containing one of these (or ending with a colon) before the first
	// item is discarded as section preamble.
	PreamblePhrases []string `json:"preamble_phrases"`
}

// DefaultMarkers returns the marker set observed in generator output.
func DefaultMarkers() Markers {
	return Markers{
		Bullets: []string{"-", "*", "•"},
		Emoji:   []string{"⚠️", "⚠", "⚡", "✅"},
		PreamblePhrases: []string{
			"metrics are",
			"factors are",
		},
	}
}

// applyDefaults fills empty tables from DefaultMarkers.
func (m *Markers) applyDefaults() {
	def := DefaultMarkers()
	if len(m.Bullets) == 0 {
		m.Bullets = def.Bullets
	}
	if len(m.Emoji) == 0 {
		m.Emoji = def.Emoji
	}
	if len(m.PreamblePhrases) == 0 {
		m.PreamblePhrases = def.PreamblePhrases
	}
}

// alternation builds a regexp alternation from literal glyphs, longest
// first so multi-rune glyphs (variation selectors) win over their prefix.
func alternation(glyphs ...[]string) string {
	var all []string
	for _, g := range glyphs {
		all = append(all, g...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return len(all[i]) > len(all[j])
	})
	quoted := make([]string, len(all))
	for i, g := range all {
		quoted[i] = regexp.QuoteMeta(g)
	}
	return strings.Join(quoted, "|")
}
