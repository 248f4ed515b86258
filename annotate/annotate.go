// Package annotate generates per-offset relevance weight vectors for a single
// channel, adapted from go-matrixprofile's annotation vector machinery. The
// orchestrator uses these to optionally de-weight uninteresting regions of a
// channel before they are considered as motiflet reference points.
package annotate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/niyazhz/mv-motiflets/internal/kernel"
)

// Kind selects one of the annotation vector strategies.
type Kind string

const (
	// Default weighs every offset equally; this leaves the reference-point
	// set untouched.
	Default Kind = "default"
	// Complexity favors offsets whose window has high local complexity
	// (square root of the summed squared first differences).
	Complexity Kind = "complexity"
	// MeanStd favors offsets whose local standard deviation sits below the
	// channel-wide mean standard deviation.
	MeanStd Kind = "mean_std"
	// Clipping de-weighs offsets whose window spends more samples pinned to
	// the channel's min/max value.
	Clipping Kind = "clipping"
)

// Vector returns the annotation weight vector for channel ts with window m
// under the given strategy. Every weight lies in [0, 1].
func Vector(kind Kind, ts []float64, m int) ([]float64, error) {
	switch kind {
	case "", Default:
		return makeDefault(ts, m), nil
	case Complexity:
		return makeComplexity(ts, m), nil
	case MeanStd:
		return makeMeanStd(ts, m)
	case Clipping:
		return makeClipping(ts, m), nil
	default:
		return nil, fmt.Errorf("annotate: unknown annotation vector kind %q", kind)
	}
}

func makeDefault(ts []float64, m int) []float64 {
	out := make([]float64, len(ts)-m+1)
	for i := range out {
		out[i] = 1.0
	}
	return out
}

func makeComplexity(ts []float64, m int) []float64 {
	n := len(ts) - m + 1
	out := make([]float64, n)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		var ce float64
		for j := 1; j < m; j++ {
			diff := ts[i+j] - ts[i+j-1]
			ce += diff * diff
		}
		out[i] = math.Sqrt(ce)
		if out[i] < minV {
			minV = out[i]
		}
		if out[i] > maxV {
			maxV = out[i]
		}
	}
	for i := range out {
		if maxV == 0 {
			out[i] = 0
			continue
		}
		out[i] = (out[i] - minV) / maxV
	}
	return out
}

func makeMeanStd(ts []float64, m int) ([]float64, error) {
	_, std, err := kernel.MovMeanStd(ts, m)
	if err != nil {
		return nil, err
	}
	mu := stat.Mean(std, nil)
	out := make([]float64, len(std))
	for i, s := range std {
		if s < mu {
			out[i] = 1
		}
	}
	return out, nil
}

func makeClipping(ts []float64, m int) []float64 {
	n := len(ts) - m + 1
	out := make([]float64, n)
	maxV, minV := floats.Max(ts), floats.Min(ts)
	for i := 0; i < n; i++ {
		var numClip int
		for j := 0; j < m; j++ {
			if ts[i+j] == maxV || ts[i+j] == minV {
				numClip++
			}
		}
		out[i] = float64(numClip)
	}

	lo := floats.Min(out)
	for i := range out {
		out[i] -= lo
	}
	hi := floats.Max(out)
	for i := range out {
		if hi == 0 {
			out[i] = 1
			continue
		}
		out[i] = 1 - out[i]/hi
	}
	return out
}
