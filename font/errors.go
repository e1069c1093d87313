package font

import "fmt"

// FontMetricsMissingError is returned when a character has no width entry
// in any table available for its font and no fallback is configured.
// Callers recover by substituting a default advance.
type FontMetricsMissingError struct {
	Family string
	Text   string
}

func (e *FontMetricsMissingError) Error() string {
	family := e.Family
	if family == "" {
		family = "(unnamed)"
	}
	return fmt.Sprintf("no width metrics for %q in font %s", e.Text, family)
}
