package extraction

// Sentinel values substituted when extraction finds nothing. Callers must
// treat these as data-absence, not as processing errors.
const (
	// ProseUnavailable is returned for a prose field whose section could
	// not be located in the raw text.
	ProseUnavailable = "Analysis not available"

	// ListPlaceholder is the single entry of a list field for which no
	// items could be recovered.
	ListPlaceholder = "To be determined during detailed analysis"
)

// FieldKind distinguishes prose fields from list fields.
type FieldKind int

const (
	// Prose fields extract to a single trimmed string.
	Prose FieldKind = iota
	// List fields extract to an ordered, never-empty sequence of items.
	List
)

// FieldSpec names one field the caller expects in the result. Name is
// matched case-insensitively against headings in the raw text. Specs are
// supplied per call; the engine keeps no schema state of its own.
type FieldSpec struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// Result maps requested field names to their extracted values. Every
// requested field is present: prose fields in Prose (sentinel on
// failure), list fields in Lists (placeholder entry on failure).
type Result struct {
	Prose map[string]string   `json:"prose"`
	Lists map[string][]string `json:"lists"`
}
