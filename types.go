// Package motiflets discovers k-motiflets, the k tightest non-overlapping
// repeats of a subsequence length m, across single- or multi-channel time
// series. It builds a z-normalized distance matrix and non-overlapping k-NN
// table once per window length, then sweeps k (and optionally the number of
// relevant channels) to find the elbow where adding one more occurrence no
// longer tightens the motif.
package motiflets

import "math"

// Motiflet is one discovered set of k mutually non-overlapping occurrences
// of a subsequence, together with the extent (largest pairwise distance
// inside the set) and the channel subset it was found on.
type Motiflet struct {
	K         int     // number of occurrences
	Positions []int   // occurrence start offsets, ascending
	Extent    float64 // max pairwise distance among Positions, on Dims
	Dims      []int   // channel indices the extent was computed over
}

// noMotiflet is returned by a k for which no admissible candidate with k
// non-overlapping occurrences is found.
func noMotiflet(k int, dims []int) *Motiflet {
	return &Motiflet{K: k, Positions: nil, Extent: math.Inf(1), Dims: dims}
}

// ExtentCurve is the sequence of extents produced by a sweep, indexed so
// that Values[i] is the extent for k = KMin+i. A k-sweep uses KMin 2; the
// dimension sweep stores its curve indexed by u with KMin 1.
type ExtentCurve struct {
	KMin   int
	Values []float64
}

// At returns the extent recorded for the given k, or +Inf if k falls
// outside the swept range.
func (e ExtentCurve) At(k int) float64 {
	i := k - e.KMin
	if i < 0 || i >= len(e.Values) {
		return math.Inf(1)
	}
	return e.Values[i]
}

// Len reports how many k values the curve covers.
func (e ExtentCurve) Len() int { return len(e.Values) }
