package extraction

import (
	"fmt"
	"regexp"
)

// Engine extracts schema fields from raw generator markdown. An Engine
// is immutable after construction and safe for concurrent use.
type Engine struct {
	markers Markers

	leadingBulletRe *regexp.Regexp
	inlineBulletRe  *regexp.Regexp
	itemMarkerRe    *regexp.Regexp
	boldRe          *regexp.Regexp
	noiseRe         *regexp.Regexp
	sentenceRe      *regexp.Regexp
}

// NewEngine compiles the marker-derived patterns once. Marker glyphs are
// quoted before compilation, so construction cannot fail on user input.
func NewEngine(markers Markers) *Engine {
	markers.applyDefaults()

	bullets := alternation(markers.Bullets)
	emoji := alternation(markers.Emoji)
	glyphs := alternation(markers.Bullets, markers.Emoji)

	return &Engine{
		markers:         markers,
		leadingBulletRe: regexp.MustCompile(fmt.Sprintf(`^(?:%s)\s*`, bullets)),
		inlineBulletRe:  regexp.MustCompile(fmt.Sprintf(`(\s+)(%s)(\s+)`, glyphs)),
		itemMarkerRe:    regexp.MustCompile(fmt.Sprintf(`^(?:%s|\d+[.)])\s+`, glyphs)),
		boldRe:          regexp.MustCompile(`\*\*([^*]+)\*\*`),
		noiseRe:         regexp.MustCompile(fmt.Sprintf(`^(?:[[:punct:]]|\s|%s)+$`, emoji)),
		sentenceRe:      regexp.MustCompile(`[.;]`),
	}
}

// Extract pulls every field in the schema out of the raw text. It never
// returns an error: fields that cannot be located degrade to their
// sentinel values.
func (e *Engine) Extract(raw string, fields []FieldSpec) Result {
	res := Result{
		Prose: make(map[string]string),
		Lists: make(map[string][]string),
	}
	for _, f := range fields {
		switch f.Kind {
		case List:
			res.Lists[f.Name] = e.SegmentList(raw, f.Name)
		default:
			res.Prose[f.Name] = e.LocateSection(raw, f.Name)
		}
	}
	return res
}
