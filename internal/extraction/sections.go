package extraction

import (
	"fmt"
	"regexp"
	"strings"
)

// headingStyle is one entry in the ordered heading-pattern table. The
// template receives the quoted field name; the capture group is the
// section body, ending at the next heading of equal-or-higher weight or
// at end of text.
type headingStyle struct {
	name     string
	template string
}

// headingStyles is ordered most specific first: heavier markup is less
// likely to false-positive inside unrelated prose, so it wins. The first
// style yielding a non-empty body is taken.
var headingStyles = []headingStyle{
	{"numbered-h3", `(?is)###\s*\d+\.\s*%s[:\s]*\n(.*?)(?:\n###|\n##|\z)`},
	{"h2", `(?is)##\s*%s[:\s]*\n(.*?)(?:\n###|\n##|\z)`},
	{"h3", `(?is)###\s*%s[:\s]*\n(.*?)(?:\n###|\n##|\z)`},
	{"bold-label", `(?is)\*\*%s\*\*[:\s]*\n(.*?)(?:\n\*\*|\n##|\n###|\z)`},
	{"plain-colon", `(?is)%s\s*(?::|\n)[:\s]*(.*?)(?:\n\n[A-Z]|\n##|\n###|\z)`},
}

// LocateSection returns the trimmed body of the section headed by the
// given field name, trying each heading style in precedence order.
// Matching is case-insensitive. A single leading bullet marker is
// stripped from the body (the model sometimes opens a prose section with
// a bullet). Returns ProseUnavailable when no style matches; a missing
// section is policy, not an error.
func (e *Engine) LocateSection(raw, field string) string {
	quoted := regexp.QuoteMeta(field)
	for _, style := range headingStyles {
		re := regexp.MustCompile(fmt.Sprintf(style.template, quoted))
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[1])
		if body == "" {
			continue
		}
		body = e.leadingBulletRe.ReplaceAllString(body, "")
		return strings.TrimSpace(body)
	}
	return ProseUnavailable
}
