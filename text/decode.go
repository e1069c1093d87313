package text

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeRawGlyphs reads a JSON array of glyph records. Validation of the
// individual records is left to FromRaw.
func DecodeRawGlyphs(r io.Reader) ([]RawGlyph, error) {
	var records []RawGlyph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode glyph records: %w", err)
	}
	return records, nil
}
