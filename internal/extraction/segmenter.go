package extraction

import (
	"strings"
	"unicode/utf8"
)

// walkState is the line-walk accumulator state. The preamble-suppression
// rule is only active in stateBetweenItems: a continuation line that
// merely ends in a colon mid-list must not be discarded.
type walkState int

const (
	stateBetweenItems walkState = iota
	stateInsideItem
)

// Segmentation limits for the sentence-splitting fallback.
const (
	minFragmentLen   = 20
	maxFallbackItems = 5
	minItemLen       = 3
)

// SegmentList returns the ordered items of the list section headed by
// the given field name. The recovery chain is structured bullets, then
// inline-bullet normalization, then sentence splitting, then the fixed
// placeholder; the returned slice is never empty.
func (e *Engine) SegmentList(raw, field string) []string {
	section := e.LocateSection(raw, field)
	if section == ProseUnavailable {
		return []string{ListPlaceholder}
	}

	// The generator sometimes emits several bullets on one physical
	// line. Break each whitespace-preceded glyph onto its own line
	// before walking so every logical item starts a line.
	normalized := e.inlineBulletRe.ReplaceAllString(section, "\n$2$3")

	items := e.walkLines(normalized)
	items = e.filterNoise(items)

	if len(items) == 0 {
		items = e.splitSentences(normalized)
	}
	if len(items) == 0 {
		items = []string{ListPlaceholder}
	}
	return items
}

// walkLines runs the two-state accumulator over the normalized section.
func (e *Engine) walkLines(text string) []string {
	var items []string
	var current strings.Builder
	state := stateBetweenItems

	flush := func() {
		item := strings.TrimSpace(current.String())
		if item != "" {
			items = append(items, item)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if e.itemMarkerRe.MatchString(line) {
			// Marker detected: the one transition trigger.
			if state == stateInsideItem {
				flush()
			}
			seed := e.itemMarkerRe.ReplaceAllString(line, "")
			seed = e.boldRe.ReplaceAllString(seed, "$1")
			current.WriteString(seed)
			state = stateInsideItem
			continue
		}

		switch state {
		case stateBetweenItems:
			if e.isPreamble(line) {
				continue
			}
			// Unbulleted list content: seed an item directly when the
			// line has non-trivial length.
			if utf8.RuneCountInString(line) > minItemLen && !e.noiseRe.MatchString(line) {
				current.WriteString(line)
				state = stateInsideItem
			}
		case stateInsideItem:
			current.WriteString(" ")
			current.WriteString(line)
		}
	}
	flush()

	return items
}

// isPreamble reports whether a pre-list line is an introductory sentence
// rather than list content. The heuristic (trailing colon or a stock
// phrase) is a known precision trade-off: a genuine first item ending in
// a colon before any marker is misclassified. Kept as-is.
func (e *Engine) isPreamble(line string) bool {
	if strings.HasSuffix(line, ":") {
		return true
	}
	lower := strings.ToLower(line)
	for _, phrase := range e.markers.PreamblePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// filterNoise drops items too short to be content or consisting solely
// of punctuation and emoji glyphs.
func (e *Engine) filterNoise(items []string) []string {
	kept := items[:0]
	for _, item := range items {
		if utf8.RuneCountInString(item) <= minItemLen {
			continue
		}
		if e.noiseRe.MatchString(item) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// splitSentences is the last recovery tier before the placeholder:
// split the section on sentence terminators and keep up to
// maxFallbackItems fragments of non-trivial length.
func (e *Engine) splitSentences(text string) []string {
	var items []string
	for _, frag := range e.sentenceRe.Split(text, -1) {
		frag = strings.TrimSpace(frag)
		if utf8.RuneCountInString(frag) <= minFragmentLen {
			continue
		}
		items = append(items, frag)
		if len(items) == maxFallbackItems {
			break
		}
	}
	return items
}
