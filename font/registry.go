package font

import (
	"strings"
	"sync"
)

// Style selects a variant of a family
type Style struct {
	Bold   bool
	Italic bool
}

func (s Style) key() string {
	switch {
	case s.Bold && s.Italic:
		return "bi"
	case s.Bold:
		return "b"
	case s.Italic:
		return "i"
	}
	return "r"
}

// Registry resolves font family names to width tables.
// Register tables before sharing a Registry; lookups never modify it and
// are safe for concurrent use.
type Registry struct {
	tables   map[string]*WidthTable
	aliases  map[string]string
	fallback string
}

// NewRegistry creates an empty registry with no fallback family
func NewRegistry() *Registry {
	return &Registry{
		tables:  make(map[string]*WidthTable),
		aliases: make(map[string]string),
	}
}

// DefaultRegistry returns a registry with the Standard 14 tables, the Go
// font tables and the usual aliases. Unknown families resolve to Helvetica.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("Helvetica", Style{}, NewWidthTable("Helvetica", helveticaWidths))
	r.Register("Helvetica", Style{Bold: true}, NewWidthTable("Helvetica-Bold", helveticaBoldWidths))
	r.Register("Times", Style{}, NewWidthTable("Times-Roman", timesWidths))
	r.Register("Times", Style{Bold: true}, NewWidthTable("Times-Bold", timesBoldWidths))
	r.Register("Courier", Style{}, NewWidthTable("Courier", courierWidths))
	r.Register("Symbol", Style{}, NewWidthTable("Symbol", symbolWidths))
	r.Register("ZapfDingbats", Style{}, NewWidthTable("ZapfDingbats", zapfDingbatsWidths))

	for _, gt := range goFontTables() {
		r.Register(gt.family, gt.style, gt.table)
	}

	r.Alias("Arial", "Helvetica")
	r.Alias("ArialNarrow", "Helvetica")
	r.Alias("Liberation Sans", "Helvetica")
	r.Alias("Nimbus Sans", "Helvetica")
	r.Alias("Times New Roman", "Times")
	r.Alias("Liberation Serif", "Times")
	r.Alias("Nimbus Roman", "Times")
	r.Alias("Courier New", "Courier")
	r.Alias("Liberation Mono", "Courier")
	r.Alias("Nimbus Mono", "Courier")

	r.SetFallback("Helvetica")
	return r
}

// Register adds a table for a family and style, replacing any existing one
func (r *Registry) Register(family string, style Style, t *WidthTable) {
	key, _ := familyKey(family)
	r.tables[key+"/"+style.key()] = t
}

// Alias makes alias resolve to the tables of family
func (r *Registry) Alias(alias, family string) {
	a, _ := familyKey(alias)
	f, _ := familyKey(family)
	r.aliases[a] = f
}

// SetFallback sets the family used when a name cannot be resolved.
// An empty family disables the fallback.
func (r *Registry) SetFallback(family string) {
	if family == "" {
		r.fallback = ""
		return
	}
	r.fallback, _ = familyKey(family)
}

// Lookup returns the table for a family and style. Style words in the
// family name are honoured in addition to the explicit style. Missing
// variants degrade to the bold, then regular table of the same family.
func (r *Registry) Lookup(family string, style Style) (*WidthTable, bool) {
	key, named := familyKey(family)
	style.Bold = style.Bold || named.Bold
	style.Italic = style.Italic || named.Italic

	if t, ok := r.lookupKey(key, style); ok {
		return t, true
	}
	if r.fallback != "" {
		return r.lookupKey(r.fallback, style)
	}
	return nil, false
}

func (r *Registry) lookupKey(key string, style Style) (*WidthTable, bool) {
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	candidates := []Style{
		style,
		{Bold: style.Bold},
		{Italic: style.Italic},
		{},
	}
	for _, s := range candidates {
		if t, ok := r.tables[key+"/"+s.key()]; ok {
			return t, true
		}
	}
	return nil, false
}

// Width returns the advance of s in 1000ths of an em for the given font
func (r *Registry) Width(family string, bold, italic bool, s string) (float64, error) {
	t, ok := r.Lookup(family, Style{Bold: bold, Italic: italic})
	if !ok {
		return 0, &FontMetricsMissingError{Family: family, Text: s}
	}
	w, ok := t.StringWidth(s)
	if !ok {
		return 0, &FontMetricsMissingError{Family: family, Text: s}
	}
	return w, nil
}

var styleWords = []string{"bolditalic", "boldoblique", "bold", "italic", "oblique", "regular"}

// familyKey reduces a font name to its lookup key and the style implied by
// the name: "ABCDEF+Arial-BoldMT" → ("arial", bold).
func familyKey(name string) (string, Style) {
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	s := strings.ToLower(strings.TrimSpace(name))

	style := Style{
		Bold:   strings.Contains(s, "bold") || strings.Contains(s, "black") || strings.Contains(s, "heavy"),
		Italic: strings.Contains(s, "italic") || strings.Contains(s, "oblique"),
	}

	if i := strings.IndexAny(s, "-,"); i > 0 {
		s = s[:i]
	}
	s = strings.NewReplacer(" ", "", "_", "").Replace(s)
	for _, suffix := range []string{"psmt", "mt", "ps"} {
		s = strings.TrimSuffix(s, suffix)
	}
	for _, w := range styleWords {
		if strings.HasSuffix(s, w) && len(s) > len(w) {
			s = strings.TrimSuffix(s, w)
			break
		}
	}
	return s, style
}

var (
	goTablesOnce sync.Once
	goTables     []goFontTable
)

type goFontTable struct {
	family string
	style  Style
	table  *WidthTable
}

// goFontTables parses the bundled Go fonts once. The tables are immutable
// and shared by every registry.
func goFontTables() []goFontTable {
	goTablesOnce.Do(func() {
		for _, f := range goFonts {
			t, err := NewSFNTTable(f.name, f.data)
			if err != nil {
				continue
			}
			goTables = append(goTables, goFontTable{family: f.family, style: f.style, table: t})
		}
	})
	return goTables
}
