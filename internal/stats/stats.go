// Package stats holds the small numeric helpers shared by the layout stages.
package stats

import (
	"math"
	"sort"
)

// Median returns the median of values, or 0 and false when empty.
// The input is not modified.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// Histogram counts weighted values in buckets of a fixed width
type Histogram struct {
	width  float64
	counts map[int64]int
	sums   map[int64]float64
}

// NewHistogram creates a histogram with the given bucket width
func NewHistogram(width float64) *Histogram {
	return &Histogram{
		width:  width,
		counts: make(map[int64]int),
		sums:   make(map[int64]float64),
	}
}

// Add records value with weight n
func (h *Histogram) Add(value float64, n int) {
	if n <= 0 {
		return
	}
	k := int64(math.Round(value / h.width))
	h.counts[k] += n
	h.sums[k] += value * float64(n)
}

// Mode returns the mean value of the heaviest bucket. Ties are broken
// toward the smaller bucket. ok is false for an empty histogram.
func (h *Histogram) Mode() (float64, bool) {
	best := int64(0)
	bestCount := 0
	for k, c := range h.counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	if bestCount == 0 {
		return 0, false
	}
	return h.sums[best] / float64(bestCount), true
}

// Mean returns the arithmetic mean, or 0 for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WithinRel reports whether a and b differ by at most rel relative to b
func WithinRel(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Abs(b)
}
