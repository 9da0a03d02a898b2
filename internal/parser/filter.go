package parser

import "regexp"

// Tag filter modes for NewFilter. TagFilterEdges drops only edges whose
// target is the default-tags variable; TagFilterAll drops any line that
// mentions it.
const (
	TagFilterEdges = "edges"
	TagFilterAll   = "all"
)

// Bookkeeping noise terraform graph emits that has no place in the
// rendered picture. All rules match at the start of the trimmed line.
var (
	providerEdge  = regexp.MustCompile(`^.* -> "\[[^\]]*\] provider\.`)
	tagVarEdge    = regexp.MustCompile(`^.* -> "\[[^\]]*\] var\.default_tags`)
	tagVarAny     = regexp.MustCompile(`var\.default_tags`)
	providerClose = regexp.MustCompile(`^.*\] provider\.[^"]* \(close\)`)
	countBoundary = regexp.MustCompile(`^.*\] meta\.count-boundary \(EachMode fixup\)`)
	rootEdge      = regexp.MustCompile(`^.*\] root" -> `)
)

// Filter rejects unwanted lines before classification is attempted. A
// line can match the raw shape of an edge or node and still be noise,
// so filtering runs first.
type Filter struct {
	unwanted []*regexp.Regexp
}

// NewFilter builds the filter for the given tag mode. Any value other
// than TagFilterAll selects the edge-only rule.
func NewFilter(tags string) *Filter {
	tagRule := tagVarEdge
	if tags == TagFilterAll {
		tagRule = tagVarAny
	}
	return &Filter{
		unwanted: []*regexp.Regexp{
			providerEdge,
			tagRule,
			providerClose,
			countBoundary,
			rootEdge,
		},
	}
}

// Wanted reports whether the line should proceed to classification. It
// is stateless: re-filtering already-filtered lines changes nothing.
func (f *Filter) Wanted(line string) bool {
	for _, re := range f.unwanted {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}
