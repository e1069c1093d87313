package font

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestWidthTable(t *testing.T) {
	table := NewWidthTable("test", map[rune]float64{'a': 500, 'e': 400, 'f': 300, 'i': 200})

	if w, ok := table.Width('a'); !ok || w != 500 {
		t.Errorf("Width('a') = %v, %v", w, ok)
	}
	if _, ok := table.Width('z'); ok {
		t.Error("Width('z') should be missing")
	}

	tests := []struct {
		name string
		s    string
		want float64
	}{
		{"single", "a", 500},
		{"sum", "ai", 700},
		{"unknown uses e", "z", 400},
		{"ligature folded", "ﬁ", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.StringWidth(tt.s)
			if !ok || got != tt.want {
				t.Errorf("StringWidth(%q) = %v, %v, want %v", tt.s, got, ok, tt.want)
			}
		})
	}
}

func TestWidthTable_NoFallback(t *testing.T) {
	table := NewWidthTable("nofallback", map[rune]float64{'a': 500})
	if _, ok := table.StringWidth("b"); ok {
		t.Error("Expected failure without fallback entry")
	}
}

func TestNewWidthTableCopies(t *testing.T) {
	src := map[rune]float64{'e': 500}
	table := NewWidthTable("copy", src)
	src['e'] = 1

	if w, _ := table.Width('e'); w != 500 {
		t.Errorf("Table should not alias the source map, got %v", w)
	}
}

func TestScale(t *testing.T) {
	if got := Scale(500, 12); got != 6 {
		t.Errorf("Scale(500, 12) = %v, want 6", got)
	}
}

func TestFamilyKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		style Style
	}{
		{"plain", "Helvetica", "helvetica", Style{}},
		{"bold suffix", "Helvetica-Bold", "helvetica", Style{Bold: true}},
		{"subset prefix", "ABCDEF+Arial-BoldMT", "arial", Style{Bold: true}},
		{"postscript suffix", "TimesNewRomanPSMT", "timesnewroman", Style{}},
		{"comma style", "Arial,BoldItalic", "arial", Style{Bold: true, Italic: true}},
		{"spaces", "Courier New", "couriernew", Style{}},
		{"oblique", "Helvetica-Oblique", "helvetica", Style{Italic: true}},
		{"joined style word", "ArialBold", "arial", Style{Bold: true}},
		{"short prefix kept", "AB+Font", "ab+font", Style{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, style := familyKey(tt.input)
			if key != tt.key || style != tt.style {
				t.Errorf("familyKey(%q) = %q, %+v, want %q, %+v", tt.input, key, style, tt.key, tt.style)
			}
		})
	}
}

func TestDefaultRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name   string
		family string
		style  Style
		want   string
	}{
		{"standard", "Helvetica", Style{}, "Helvetica"},
		{"bold flag", "Helvetica", Style{Bold: true}, "Helvetica-Bold"},
		{"bold in name", "Helvetica-Bold", Style{}, "Helvetica-Bold"},
		{"italic degrades to regular", "Times-Italic", Style{}, "Times-Roman"},
		{"bold italic degrades to bold", "Times", Style{Bold: true, Italic: true}, "Times-Bold"},
		{"alias", "ArialMT", Style{}, "Helvetica"},
		{"alias bold", "ABCDEF+Arial-BoldMT", Style{}, "Helvetica-Bold"},
		{"times new roman", "TimesNewRomanPSMT", Style{}, "Times-Roman"},
		{"courier new", "Courier New", Style{}, "Courier"},
		{"go font", "Go", Style{Italic: true}, "Go-Italic"},
		{"go mono", "GoMono", Style{}, "Go-Mono"},
		{"unknown falls back", "NoSuchFont", Style{}, "Helvetica"},
		{"empty family falls back", "", Style{}, "Helvetica"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, ok := reg.Lookup(tt.family, tt.style)
			if !ok {
				t.Fatalf("Lookup(%q) found nothing", tt.family)
			}
			if table.Name != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.family, table.Name, tt.want)
			}
		})
	}
}

func TestRegistryWidth(t *testing.T) {
	reg := DefaultRegistry()

	w, err := reg.Width("Helvetica", false, false, "e")
	if err != nil {
		t.Fatalf("Width failed: %v", err)
	}
	if w != 556 {
		t.Errorf("Helvetica 'e' = %v, want 556", w)
	}

	w, err = reg.Width("Courier", false, false, "abc")
	if err != nil || w != 1800 {
		t.Errorf("Courier 'abc' = %v, %v, want 1800", w, err)
	}
}

func TestRegistryWidth_Missing(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Width("Unknown", false, false, "x")
	var mErr *FontMetricsMissingError
	if !errors.As(err, &mErr) {
		t.Fatalf("Expected FontMetricsMissingError, got %v", err)
	}
	if mErr.Family != "Unknown" || mErr.Text != "x" {
		t.Errorf("Unexpected error fields %+v", mErr)
	}

	reg.Register("Sparse", Style{}, NewWidthTable("Sparse", map[rune]float64{'a': 500}))
	if _, err := reg.Width("Sparse", false, false, "q"); !errors.As(err, &mErr) {
		t.Errorf("Expected FontMetricsMissingError for table without fallback, got %v", err)
	}
}

func TestRegistryFallbackDisabled(t *testing.T) {
	reg := DefaultRegistry()
	reg.SetFallback("")

	if _, ok := reg.Lookup("NoSuchFont", Style{}); ok {
		t.Error("Lookup should fail without a fallback family")
	}
}

func TestNewSFNTTable(t *testing.T) {
	table, err := NewSFNTTable("Go-Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("NewSFNTTable failed: %v", err)
	}

	e, ok := table.Width('e')
	if !ok || e <= 0 || e >= 1000 {
		t.Errorf("Go 'e' width = %v, %v, want within (0, 1000)", e, ok)
	}
	m, _ := table.Width('m')
	i, _ := table.Width('i')
	if m <= i {
		t.Errorf("Expected proportional widths, got m=%v i=%v", m, i)
	}
}

func TestGoMonoIsMonospaced(t *testing.T) {
	table, ok := DefaultRegistry().Lookup("GoMono", Style{})
	if !ok {
		t.Fatal("Go Mono not registered")
	}

	m, _ := table.Width('m')
	i, _ := table.Width('i')
	if math.Abs(m-i) > 1e-9 {
		t.Errorf("Expected equal widths, got m=%v i=%v", m, i)
	}
}

func TestRegisterSFNT(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterSFNT("Custom-Bold", goregular.TTF); err != nil {
		t.Fatalf("RegisterSFNT failed: %v", err)
	}
	if _, ok := reg.Lookup("Custom", Style{Bold: true}); !ok {
		t.Error("Expected bold variant to be registered")
	}

	if err := reg.RegisterSFNT("Broken", []byte("not a font")); err == nil {
		t.Error("Expected error for invalid font data")
	}
}

func TestFontMetricsMissingErrorMessage(t *testing.T) {
	err := &FontMetricsMissingError{Text: "x"}
	if err.Error() != `no width metrics for "x" in font (unnamed)` {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
