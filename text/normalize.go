package text

import "golang.org/x/text/unicode/norm"

// NormalizeUnicode returns s in Unicode Normalization Form C so that
// decomposed sequences from the converter compare equal to composed ones.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// FoldCompat applies compatibility decomposition (NFKC), turning ligatures
// and presentation forms into the plain characters a width table knows
// about, e.g. "ﬁ" becomes "fi".
func FoldCompat(s string) string {
	return norm.NFKC.String(s)
}
