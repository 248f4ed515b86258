// Package kernel provides the numeric primitives shared by every stage of the
// motiflet search: sliding dot products, sliding mean/standard deviation, the
// z-normalized Euclidean distance formula, and exclusion-zone bookkeeping.
package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/fourier"
	"gonum.org/v1/gonum/stat"
)

// StdFloor is the minimum sliding standard deviation tolerated before it is
// clamped to 1.0. Below this the window is considered near-constant and
// z-normalizing against it would blow up the distance formula.
const StdFloor = 0.1

// ZNormalize computes a z-normalized version of a slice of floats, i.e.
// y[i] = (x[i] - mean(x)) / std(x).
func ZNormalize(ts []float64) ([]float64, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("kernel: slice does not have any data")
	}

	mu := stat.Mean(ts, nil)
	out := make([]float64, len(ts))
	for i := range ts {
		out[i] = ts[i] - mu
	}

	var sumSq float64
	for _, v := range out {
		sumSq += v * v
	}
	std := math.Sqrt(sumSq / float64(len(out)))
	if std == 0 {
		return out, fmt.Errorf("kernel: standard deviation is zero")
	}

	for i := range out {
		out[i] /= std
	}
	return out, nil
}

// MovMeanStd computes the mean and standard deviation of every sliding window
// of length m over ts in a single pass using prefix sums of ts and ts^2. Any
// window whose |std| falls below StdFloor has its std replaced by 1.0 — a
// deliberate policy to keep near-constant regions from producing exploding
// distances, not an error condition.
func MovMeanStd(ts []float64, m int) (mean, std []float64, err error) {
	if m <= 1 {
		return nil, nil, fmt.Errorf("kernel: window length must be greater than 1")
	}
	if m > len(ts) {
		return nil, nil, fmt.Errorf("kernel: window length cannot be greater than series length")
	}

	c := make([]float64, len(ts)+1)
	csqr := make([]float64, len(ts)+1)
	for i := 1; i <= len(ts); i++ {
		c[i] = ts[i-1] + c[i-1]
		csqr[i] = ts[i-1]*ts[i-1] + csqr[i-1]
	}

	n := len(ts) - m + 1
	mean = make([]float64, n)
	std = make([]float64, n)
	for i := 0; i < n; i++ {
		mean[i] = (c[i+m] - c[i]) / float64(m)
		variance := (csqr[i+m]-csqr[i])/float64(m) - mean[i]*mean[i]
		if variance < 0 {
			variance = 0
		}
		s := math.Sqrt(variance)
		if math.Abs(s) < StdFloor {
			s = 1.0
		}
		std[i] = s
	}
	return mean, std, nil
}

// ExclusionRadius returns floor(m*slack), the trivial-match half-width used to
// blacken neighborhoods around a reference offset.
func ExclusionRadius(m int, slack float64) int {
	return int(math.Floor(float64(m) * slack))
}

// ApplyExclusionZone sets the entries of row in [idx-radius, idx+radius) to
// +Inf, in place, clamped to the bounds of row.
func ApplyExclusionZone(row []float64, idx, radius int) {
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + radius
	if end > len(row) {
		end = len(row)
	}
	for i := start; i < end; i++ {
		row[i] = math.Inf(1)
	}
}

// DotFFT holds the precomputed Fourier state needed to seed sliding dot
// products for a single channel series of length n. It amortizes the
// O(n log n) transform of the series itself across every window offset that
// seeds a new parallel bin.
type DotFFT struct {
	fft    *fourier.FFT
	n      int
	seriesF []complex128
}

// NewDotFFT precomputes the fourier transform of series, to be reused by
// every call to SeedDotProduct against windows drawn from the same series.
func NewDotFFT(series []float64) *DotFFT {
	fft := fourier.NewFFT(len(series))
	return &DotFFT{
		fft:     fft,
		n:       len(series),
		seriesF: fft.Coefficients(nil, series),
	}
}

// SeedDotProduct computes the full sliding dot product y[i] = sum_t
// query[t]*series[i+t] for i in [0, n-m+1) via FFT convolution: the query is
// reversed and zero-padded, transformed, multiplied in the frequency domain
// against the cached series transform, and inverse transformed. This is the
// O(n log n) path used once per parallel bin; subsequent offsets within the
// bin use RollDotProduct instead.
func (d *DotFFT) SeedDotProduct(query, series []float64) []float64 {
	m := len(query)
	qpad := make([]float64, d.n)
	for i := 0; i < m; i++ {
		qpad[i] = query[m-i-1]
	}
	qf := d.fft.Coefficients(nil, qpad)

	for i := range qf {
		qf[i] = d.seriesF[i] * qf[i]
	}

	dot := d.fft.Sequence(nil, qf)

	n := d.n - m + 1
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = dot[m-1+i] / float64(d.n)
	}
	return out
}

// RollDotProduct advances a sliding dot product y (the row for the query
// series[prevOffset:prevOffset+m]) to the row for the next query
// series[prevOffset+1:prevOffset+1+m], in O(1) per entry, using the identity
//
//	y'[i] = y[i-1] + series[i+m-1]*series[prevOffset+m] - series[i-1]*series[prevOffset]    for i >= 1
//
// y'[0] has no y[-1] to roll from and is recomputed directly in O(m).
//
// This is only valid when the query used to produce y was itself
// series[prevOffset:prevOffset+m] — i.e. the previous window of the same
// series, never an arbitrary query. Queries that break this chain (the first
// window of a new parallel bin) must fall back to SeedDotProduct.
func RollDotProduct(y []float64, series []float64, m, prevOffset int) []float64 {
	n := len(series) - m + 1
	out := make([]float64, n)

	pLo := series[prevOffset]
	pHi := series[prevOffset+m]
	for i := 1; i < n; i++ {
		out[i] = y[i-1] - series[i-1]*pLo + series[i+m-1]*pHi
	}

	var dotZero float64
	newOffset := prevOffset + 1
	for t := 0; t < m; t++ {
		dotZero += series[newOffset+t] * series[t]
	}
	out[0] = dotZero

	return out
}

// ZNormedSquaredED converts a raw sliding dot product value into the squared
// z-normalized Euclidean distance between the window at i (mean muI, std
// sigI) and the window at j (mean muJ, std sigJ), given window length m.
// Round-off below zero is clamped to zero.
func ZNormedSquaredED(dot, muI, muJ, sigI, sigJ float64, m int) float64 {
	fm := float64(m)
	d := 2 * fm * (1 - (dot-fm*muI*muJ)/(fm*sigI*sigJ))
	if d < 0 {
		d = 0
	}
	return d
}
