package dashboard

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram bins one or more sample series over shared, equal-width edges so the series
// can be overlaid.
type Histogram struct {
	Edges   []float64 `json:"edges"`   // len(Centers)+1
	Centers []float64 `json:"centers"`
	Width   float64   `json:"width"`
	Counts  [][]int   `json:"counts"` // one slice per input series
}

// NewHistogram bins the given series into n bins spanning the overall min and max.
// With no samples at all every series gets an empty count slice.
func NewHistogram(n int, series ...[]float64) Histogram {
	h := Histogram{Counts: make([][]int, len(series))}
	for i := range h.Counts {
		h.Counts[i] = []int{}
	}
	if n <= 0 {
		return h
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(s))
		hi = math.Max(hi, floats.Max(s))
	}
	if math.IsInf(lo, 1) {
		return h
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	h.Width = (hi - lo) / float64(n)
	h.Edges = floats.Span(make([]float64, n+1), lo, hi)
	h.Centers = make([]float64, n)
	for i := range h.Centers {
		h.Centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}

	// stat.Histogram treats the top divider as exclusive; nudge it so the max lands in the last bin.
	dividers := append([]float64(nil), h.Edges...)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := make([]float64, n)
	for si, s := range series {
		sorted := append([]float64(nil), s...)
		sort.Float64s(sorted)
		stat.Histogram(counts, dividers, sorted, nil)

		h.Counts[si] = make([]int, n)
		for b, c := range counts {
			h.Counts[si][b] = int(c)
		}
	}

	return h
}
