package motiflets

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/niyazhz/mv-motiflets/internal/kernel"
)

// DistanceMatrix holds the per-channel z-normalized Euclidean distance
// tensor D and non-overlapping k-NN table κ built by Build. Both are
// immutable once returned: every sweep that reuses a DistanceMatrix across
// descending values of test_k treats it as a frozen snapshot.
type DistanceMatrix struct {
	D    [][][]float64 // D[c][i][j], shape (dims, N, N)
	Knn  [][][]int     // Knn[c][i], up to K neighbor indices, nearest first; a shorter row has no more admissible neighbors
	N      int
	M      int
	K      int
	Dims   int // number of logical channels represented in D/Knn (1 if SumDims)
	Radius int // exclusion-zone half-width, floor(m * slack)
}

// BuildOptions configures the distance matrix and k-NN table construction.
type BuildOptions struct {
	Slack       float64 // exclusion-zone fraction of m, default 0.5
	Parallelism int     // number of offset-range worker bins, default runtime.NumCPU()
	SumDims     bool    // collapse all channels into one additive logical channel
}

// NewBuildOptions returns the default options: slack 0.5, one worker bin per
// CPU, and multivariate (non-summed) mode.
func NewBuildOptions() BuildOptions {
	p := runtime.NumCPU()
	if p < 1 {
		p = 1
	}
	return BuildOptions{Slack: 0.5, Parallelism: p}
}

// Build constructs the per-channel distance matrix and k-NN table for data,
// a (d, n) dense matrix of already z-scored channels, with subsequence
// length m and up to K neighbors per position.
func Build(data [][]float64, m, k int, opts BuildOptions) (*DistanceMatrix, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("motiflets: data has no channels")
	}
	n := len(data[0])
	for c, ch := range data {
		if len(ch) != n {
			return nil, fmt.Errorf("motiflets: channel %d has length %d, expected %d", c, len(ch), n)
		}
	}
	if m < 2 || m >= n {
		return nil, fmt.Errorf("motiflets: window length m=%d must satisfy 2 <= m < n=%d", m, n)
	}
	if k < 2 {
		return nil, fmt.Errorf("motiflets: K=%d must be at least 2", k)
	}
	if opts.Slack == 0 {
		opts.Slack = 0.5
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = runtime.NumCPU()
		if opts.Parallelism < 1 {
			opts.Parallelism = 1
		}
	}

	nSub := n - m + 1
	radius := kernel.ExclusionRadius(m, opts.Slack)

	dims := len(data)
	logicalDims := dims
	if opts.SumDims {
		logicalDims = 1
	}

	dm := &DistanceMatrix{
		N:      nSub,
		M:      m,
		K:      k,
		Dims:   logicalDims,
		Radius: radius,
		D:      make([][][]float64, logicalDims),
		Knn:    make([][][]int, logicalDims),
	}
	for c := 0; c < logicalDims; c++ {
		dm.D[c] = make([][]float64, nSub)
		dm.Knn[c] = make([][]int, nSub)
		for i := 0; i < nSub; i++ {
			dm.D[c][i] = make([]float64, nSub)
			dm.Knn[c][i] = make([]int, 0, k)
		}
	}

	means := make([][]float64, dims)
	stds := make([][]float64, dims)
	for c := 0; c < dims; c++ {
		mu, std, err := kernel.MovMeanStd(data[c], m)
		if err != nil {
			return nil, err
		}
		means[c] = mu
		stds[c] = std
	}

	bins := partitionOffsets(nSub, opts.Parallelism)

	var wg sync.WaitGroup
	wg.Add(len(bins))
	for _, b := range bins {
		go func(b offsetBin) {
			defer wg.Done()
			buildBin(dm, data, means, stds, b, radius, opts.SumDims)
		}(b)
	}
	wg.Wait()

	// k-NN selection happens after every channel's rows for a bin are
	// materialized, so it is safe to run it as its own parallel pass over
	// the same bins.
	wg.Add(len(bins))
	for _, b := range bins {
		go func(b offsetBin) {
			defer wg.Done()
			for c := 0; c < logicalDims; c++ {
				for o := b.start; o < b.end; o++ {
					row := make([]float64, nSub)
					copy(row, dm.D[c][o])
					dm.Knn[c][o] = argknn(row, k, radius, math.Inf(1))
				}
			}
		}(b)
	}
	wg.Wait()

	return dm, nil
}

type offsetBin struct {
	start, end int
}

// partitionOffsets splits [0, n) into p roughly equal contiguous bins, each
// the unit of parallel work for both the distance-matrix build and the k-NN
// selection pass.
func partitionOffsets(n, p int) []offsetBin {
	if p > n {
		p = n
	}
	if p < 1 {
		p = 1
	}
	batch := n/p + 1
	bins := make([]offsetBin, 0, p)
	for start := 0; start < n; start += batch {
		end := start + batch
		if end > n {
			end = n
		}
		bins = append(bins, offsetBin{start: start, end: end})
	}
	return bins
}

// buildBin computes D's rows for every offset in b. The channel loop is the
// outer loop (sequential, so sum-dims accumulation has a deterministic
// reduction order); each channel seeds its sliding dot product once via FFT
// at the bin's first offset and rolls it in O(1) for the rest of the bin.
func buildBin(dm *DistanceMatrix, data [][]float64, means, stds [][]float64, b offsetBin, radius int, sumDims bool) {
	if b.start >= b.end {
		return
	}

	var accum [][]float64
	if sumDims {
		accum = make([][]float64, b.end-b.start)
		for i := range accum {
			accum[i] = make([]float64, dm.N)
		}
	}

	for c := 0; c < len(data); c++ {
		series := data[c]
		mu, std := means[c], stds[c]
		dft := kernel.NewDotFFT(series)

		y := dft.SeedDotProduct(series[b.start:b.start+dm.M], series)
		for o := b.start; o < b.end; o++ {
			if o > b.start {
				y = kernel.RollDotProduct(y, series, dm.M, o-1)
			}

			row := make([]float64, dm.N)
			for j := 0; j < dm.N; j++ {
				row[j] = kernel.ZNormedSquaredED(y[j], mu[o], mu[j], std[o], std[j], dm.M)
			}

			if sumDims {
				acc := accum[o-b.start]
				for j := 0; j < dm.N; j++ {
					acc[j] += row[j]
				}
			} else {
				kernel.ApplyExclusionZone(row, o, radius)
				row[o] = 0
				dm.D[c][o] = row
			}
		}
	}

	if sumDims {
		for o := b.start; o < b.end; o++ {
			row := accum[o-b.start]
			kernel.ApplyExclusionZone(row, o, radius)
			row[o] = 0
			dm.D[0][o] = row
		}
	}
}
