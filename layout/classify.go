package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// ListType represents the kind of marker that opens a list item
type ListType int

const (
	ListTypeUnknown  ListType = iota
	ListTypeBullet            // •, -, *
	ListTypeNumbered          // 1. 1) (1)
	ListTypeLettered          // a. a) (a)
	ListTypeRoman             // iv. IV)
)

// String returns a string representation of the list type
func (t ListType) String() string {
	switch t {
	case ListTypeBullet:
		return "bullet"
	case ListTypeNumbered:
		return "numbered"
	case ListTypeLettered:
		return "lettered"
	case ListTypeRoman:
		return "roman"
	default:
		return "unknown"
	}
}

// Classification is the outcome of a line classifier
type Classification struct {
	Role   BlockRole
	Marker string
	List   ListType
}

// Classifier tags a script line with a block role. Classifiers are tried
// in order and the first match wins; unmatched lines are body text.
type Classifier interface {
	Name() string
	Classify(sl *ScriptLine, commonSize float64) (Classification, bool)
}

// HeaderClassifier matches lines set larger than the body size in bold
type HeaderClassifier struct {
	// SizeRatio is the minimum size relative to the commonest size
	SizeRatio float64
}

// Name returns the classifier name
func (c HeaderClassifier) Name() string { return "header" }

// Classify matches when the main size exceeds commonSize*SizeRatio and
// every real glyph is bold
func (c HeaderClassifier) Classify(sl *ScriptLine, commonSize float64) (Classification, bool) {
	if commonSize <= 0 || sl.FontSize() <= commonSize*c.SizeRatio {
		return Classification{}, false
	}

	n := 0
	for _, sg := range sl.Sequence {
		if sg.Glyph.IsSpace() {
			continue
		}
		if !sg.Glyph.Bold {
			return Classification{}, false
		}
		n++
	}
	if n == 0 {
		return Classification{}, false
	}
	return Classification{Role: BlockHeader}, true
}

// ListMarkerClassifier matches lines that open with a list marker
type ListMarkerClassifier struct {
	patterns []*regexp.Regexp
}

// NewListMarkerClassifier compiles marker patterns. A marker must be
// followed by whitespace or end the line. Invalid patterns are skipped;
// Config.Validate reports them.
func NewListMarkerClassifier(patterns []string) *ListMarkerClassifier {
	c := &ListMarkerClassifier{}
	for _, p := range patterns {
		re, err := compileMarker(p)
		if err != nil {
			continue
		}
		c.patterns = append(c.patterns, re)
	}
	return c
}

func compileMarker(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)(?:\s|$)`)
}

// Name returns the classifier name
func (c *ListMarkerClassifier) Name() string { return "list-marker" }

// Classify matches the line text against the marker patterns
func (c *ListMarkerClassifier) Classify(sl *ScriptLine, _ float64) (Classification, bool) {
	txt := strings.TrimLeftFunc(sl.Text(), unicode.IsSpace)
	for _, re := range c.patterns {
		if m := re.FindString(txt); m != "" {
			marker := strings.TrimSpace(m)
			return Classification{
				Role:   BlockListItem,
				Marker: marker,
				List:   markerType(marker),
			}, true
		}
	}
	return Classification{}, false
}

var romanNumeral = regexp.MustCompile(`^([ivxlcdm]+|[IVXLCDM]+)$`)

// markerType infers the list type from the marker text. A lone "i" or "I"
// is read as a roman numeral.
func markerType(marker string) ListType {
	body := strings.TrimRight(strings.TrimLeft(marker, "("), ".)")
	if body == "" {
		return ListTypeBullet
	}
	r := []rune(body)
	switch {
	case unicode.IsDigit(r[0]):
		return ListTypeNumbered
	case romanNumeral.MatchString(body) && (len(r) > 1 || r[0] == 'i' || r[0] == 'I'):
		return ListTypeRoman
	case len(r) == 1 && unicode.IsLetter(r[0]):
		return ListTypeLettered
	default:
		return ListTypeBullet
	}
}

// DefaultClassifiers returns the header and list marker classifiers in
// precedence order
func DefaultClassifiers(config ParagraphConfig) []Classifier {
	classifiers := []Classifier{HeaderClassifier{SizeRatio: config.HeaderSizeRatio}}
	if len(config.ListMarkerPatterns) > 0 {
		classifiers = append(classifiers, NewListMarkerClassifier(config.ListMarkerPatterns))
	}
	return classifiers
}

// classify returns the first matching classification, or body
func classify(classifiers []Classifier, sl *ScriptLine, commonSize float64) Classification {
	for _, c := range classifiers {
		if cl, ok := c.Classify(sl, commonSize); ok {
			return cl
		}
	}
	return Classification{Role: BlockBody}
}
