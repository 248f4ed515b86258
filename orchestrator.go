package motiflets

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/niyazhz/mv-motiflets/annotate"
)

// SweepOptions configures a k-sweep search.
type SweepOptions struct {
	Slack       float64
	Alpha       float64
	Tau         float64
	Parallelism int

	// AnnotationKind, when non-empty, de-weights reference offsets before
	// the k-sweep considers them. AnnotationChannel selects which data
	// channel the vector is computed on (default channel 0).
	AnnotationKind    annotate.Kind
	AnnotationChannel int
}

// NewSweepOptions returns slack 0.5, the default elbow parameters, one
// worker bin per CPU, and no annotation vector.
func NewSweepOptions() SweepOptions {
	p := runtime.NumCPU()
	if p < 1 {
		p = 1
	}
	return SweepOptions{Slack: 0.5, Alpha: DefaultElbowAlpha, Tau: DefaultElbowTau, Parallelism: p}
}

// SweepResult is the outcome of a descending k-sweep: every candidate
// motiflet found between k=2 and the effective K_max, the resulting extent
// curve, and the elbow k values surviving overlap filtering.
type SweepResult struct {
	M          int
	KMax       int
	Dims       []int
	Curve      ExtentCurve
	Candidates map[int]*Motiflet
	Elbows     []int
	Matrix     *DistanceMatrix
}

// SearchKMotifletsElbow is the single-length entry point: for a fixed
// window length m it sweeps k from the effective K_max down to 2, threading
// a strictly descending upper bound between iterations, then reports the
// elbow k values in the resulting extent curve. Multivariate input is
// collapsed into one additive channel (SumDims) before the sweep; use
// SearchKMotifletsNDimsElbow to restrict the search to the best u channels
// instead.
func SearchKMotifletsElbow(data [][]float64, m, kUser int, opts SweepOptions) (*SweepResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("motiflets: data has no channels")
	}
	n := len(data[0])
	if opts.Slack == 0 {
		opts.Slack = 0.5
	}

	kMax := effectiveKMax(n, m, opts.Slack, kUser)

	buildOpts := NewBuildOptions()
	buildOpts.Slack = opts.Slack
	if opts.Parallelism > 0 {
		buildOpts.Parallelism = opts.Parallelism
	}
	buildOpts.SumDims = len(data) > 1

	dm, err := Build(data, m, kMax, buildOpts)
	if err != nil {
		return nil, err
	}

	refs, err := annotationRefs(data, m, opts)
	if err != nil {
		return nil, err
	}

	dims := allDims(dm.Dims)
	candidates, curve := kSweep(dm, dims, kMax, refs, func(k int, dims []int, u float64, refs []int) *Motiflet {
		return ApproxKMotiflet(dm, k, dims, u, refs)
	})

	elbows := FindElbows(curve, opts.Alpha, opts.Tau)
	elbows = FilterOverlapping(candidates, elbows, m)

	return &SweepResult{M: m, KMax: kMax, Dims: dims, Curve: curve, Candidates: candidates, Elbows: elbows, Matrix: dm}, nil
}

// SearchKMotifletsNDimsElbow is the dimension-sweep driver (§4.6): for a
// fixed k and window length m it sweeps the channel count u from uMax
// (default: every channel) down to 1 against the same (D, κ, Δ), reporting
// the resulting extent curve, candidate motiflets, and elbow set indexed by
// u instead of by k. Each u is searched independently — the upper bound is
// not carried across iterations (see DESIGN.md's Open Question 2), so every
// call to ApproxKMotifletNDims starts pruning fresh from +Inf.
func SearchKMotifletsNDimsElbow(data [][]float64, m, k, uMax int, opts SweepOptions) (*SweepResult, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("motiflets: dimension selection requires at least 2 channels, got %d", len(data))
	}
	n := len(data[0])
	if opts.Slack == 0 {
		opts.Slack = 0.5
	}

	fixedK := effectiveKMax(n, m, opts.Slack, k)

	buildOpts := NewBuildOptions()
	buildOpts.Slack = opts.Slack
	if opts.Parallelism > 0 {
		buildOpts.Parallelism = opts.Parallelism
	}
	buildOpts.SumDims = false

	dm, err := Build(data, m, fixedK, buildOpts)
	if err != nil {
		return nil, err
	}

	ranks, err := SelectDimensions(dm, fixedK)
	if err != nil {
		return nil, err
	}

	refs, err := annotationRefs(data, m, opts)
	if err != nil {
		return nil, err
	}

	if uMax <= 0 || uMax > dm.Dims {
		uMax = dm.Dims
	}

	candidates, curve := uSweep(dm, fixedK, uMax, ranks, refs)

	elbows := FindElbows(curve, opts.Alpha, opts.Tau)
	elbows = FilterOverlapping(candidates, elbows, m)

	return &SweepResult{M: m, KMax: fixedK, Dims: nil, Curve: curve, Candidates: candidates, Elbows: elbows, Matrix: dm}, nil
}

// uSweep runs the dimension-sweep driver's inner loop: for the fixed k, it
// searches every channel count from uMax down to 1 against the same
// (D, κ, Δ) with no bound threaded between iterations, recording each u's
// best motiflet and extent.
func uSweep(dm *DistanceMatrix, k, uMax int, ranks DimRank, refs []int) (map[int]*Motiflet, ExtentCurve) {
	candidates := make(map[int]*Motiflet, uMax)
	values := make([]float64, uMax)

	for u := uMax; u >= 1; u-- {
		best := ApproxKMotifletNDims(dm, k, u, ranks, math.Inf(1), refs)
		candidates[u] = best
		values[u-1] = best.Extent
	}

	return candidates, ExtentCurve{KMin: 1, Values: values}
}

// ComputeDistanceMatrix exposes DistanceMatrixBuilder directly, for callers
// that want D and κ without running a k-sweep on top of them.
func ComputeDistanceMatrix(data [][]float64, m, k int, opts BuildOptions) (*DistanceMatrix, error) {
	return Build(data, m, k, opts)
}

// kSweep runs search from kMax down to 2, threading a strictly descending
// upper bound U between iterations: once a tighter extent is found at some
// k, no smaller k searched after it can be accepted unless it improves on
// it. search computes one k's best motiflet given the dims and the running
// bound.
func kSweep(dm *DistanceMatrix, dims []int, kMax int, refs []int, search func(k int, dims []int, bound float64, refs []int) *Motiflet) (map[int]*Motiflet, ExtentCurve) {
	candidates := make(map[int]*Motiflet, kMax-1)
	values := make([]float64, kMax-1)

	u := math.Inf(1)
	for k := kMax; k >= 2; k-- {
		m := search(k, dims, u, refs)
		candidates[k] = m
		if m.Extent < u {
			u = m.Extent
		}
		values[k-2] = m.Extent
	}

	return candidates, ExtentCurve{KMin: 2, Values: values}
}

// effectiveKMax implements K_max' = max(3, min(floor(n / (m * slack)), K_user)):
// the sweep never climbs high enough to run out of room for non-overlapping
// occurrences, and never drops below 3 regardless of how small the series is.
func effectiveKMax(n, m int, slack float64, kUser int) int {
	spacing := float64(m) * slack
	if spacing <= 0 {
		spacing = 1
	}
	bound := int(math.Floor(float64(n) / spacing))
	k := kUser
	if bound < k {
		k = bound
	}
	if k < 3 {
		k = 3
	}
	return k
}

func allDims(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func annotationRefs(data [][]float64, m int, opts SweepOptions) ([]int, error) {
	if opts.AnnotationKind == "" {
		return nil, nil
	}
	c := opts.AnnotationChannel
	if c < 0 || c >= len(data) {
		c = 0
	}
	weights, err := annotate.Vector(opts.AnnotationKind, data[c], m)
	if err != nil {
		return nil, err
	}
	refs := make([]int, 0, len(weights))
	for i, w := range weights {
		if w > 0 {
			refs = append(refs, i)
		}
	}
	return refs, nil
}

// AUEFOptions configures the window-length recommendation sweep.
type AUEFOptions struct {
	Slack           float64
	SubsampleFactor int
	Alpha, Tau      float64
	Parallelism     int
}

// NewAUEFOptions returns slack 0.5, subsample factor 2, and the default
// elbow parameters.
func NewAUEFOptions() AUEFOptions {
	p := runtime.NumCPU()
	if p < 1 {
		p = 1
	}
	return AUEFOptions{Slack: 0.5, SubsampleFactor: 2, Alpha: DefaultElbowAlpha, Tau: DefaultElbowTau, Parallelism: p}
}

// AUEFResult holds the area-under-the-elbow-function score for every
// candidate window length swept, the lengths sitting at local minima of
// that curve, and the single best recommendation.
type AUEFResult struct {
	Scores      map[int]float64
	LocalMinima []int
	BestM       int
}

// FindAUEFMotifLength recommends a window length from mRange by running a
// subsampled k-sweep at each candidate length and scoring it by its
// normalized mean extent: the candidate whose motifs come out tightest,
// relative to its own window length, wins. Subsampling by f trades search
// cost for resolution; candidate window lengths below 2*f are skipped since
// they would subsample away entirely.
func FindAUEFMotifLength(data [][]float64, kUser int, mRange []int, opts AUEFOptions) (*AUEFResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("motiflets: data has no channels")
	}
	if opts.Slack == 0 {
		opts.Slack = 0.5
	}
	f := opts.SubsampleFactor
	if f < 1 {
		f = 2
	}

	scores := make(map[int]float64, len(mRange))
	bestM := -1
	bestScore := math.Inf(1)

	for _, m := range mRange {
		if m < 2*f {
			continue
		}
		sub := subsampleChannels(data, f)
		subM := m / f
		if subM < 2 {
			subM = 2
		}
		if subM >= len(sub[0]) {
			continue
		}

		kMax := effectiveKMax(len(sub[0]), subM, opts.Slack, kUser)

		buildOpts := NewBuildOptions()
		buildOpts.Slack = opts.Slack
		if opts.Parallelism > 0 {
			buildOpts.Parallelism = opts.Parallelism
		}
		buildOpts.SumDims = len(sub) > 1

		dm, err := Build(sub, subM, kMax, buildOpts)
		if err != nil {
			continue
		}

		dims := allDims(dm.Dims)
		_, curve := kSweep(dm, dims, kMax, nil, func(k int, dims []int, bound float64, refs []int) *Motiflet {
			return ApproxKMotiflet(dm, k, dims, bound, refs)
		})

		score := auEFScore(curve, subM)
		scores[m] = score
		if score < bestScore {
			bestScore = score
			bestM = m
		}
	}

	if bestM < 0 {
		return nil, fmt.Errorf("motiflets: no candidate window length in range produced a usable sweep")
	}
	return &AUEFResult{Scores: scores, LocalMinima: localMinima(mRange, scores), BestM: bestM}, nil
}

// localMinima returns the window lengths in mRange whose score is at most
// both neighbors' in ascending window-length order; an endpoint only needs
// to beat the one neighbor it has.
func localMinima(mRange []int, scores map[int]float64) []int {
	order := make([]int, 0, len(mRange))
	for _, m := range mRange {
		if _, ok := scores[m]; ok {
			order = append(order, m)
		}
	}
	sort.Ints(order)

	var out []int
	for i, m := range order {
		s := scores[m]
		if i > 0 && scores[order[i-1]] < s {
			continue
		}
		if i < len(order)-1 && scores[order[i+1]] < s {
			continue
		}
		out = append(out, m)
	}
	return out
}

// auEFScore normalizes the mean extent of curve by the worst-case squared
// z-normalized Euclidean distance for window length m, 4m, so scores are
// comparable across different candidate window lengths.
func auEFScore(curve ExtentCurve, m int) float64 {
	if curve.Len() == 0 {
		return math.Inf(1)
	}
	var sum float64
	var count int
	for _, v := range curve.Values {
		if math.IsInf(v, 1) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.Inf(1)
	}
	mean := sum / float64(count)
	return mean / (4 * float64(m))
}

// subsampleChannels takes every f-th sample of every channel.
func subsampleChannels(data [][]float64, f int) [][]float64 {
	out := make([][]float64, len(data))
	for c, ch := range data {
		n := (len(ch) + f - 1) / f
		sub := make([]float64, n)
		for i := 0; i < n; i++ {
			sub[i] = ch[i*f]
		}
		out[c] = sub
	}
	return out
}
