package motiflets

import (
	"fmt"
	"math"
	"sort"
)

// DimRank holds, for every reference offset, the channel indices ranked
// ascending by how tight that channel's k-th nearest neighbor distance is
// at that offset. A smaller k-th neighbor distance means the channel's
// window at that offset has a sharper, more motif-like neighborhood.
type DimRank [][]int

// SelectDimensions ranks every channel in dm by its k-th non-overlapping
// neighbor distance at each reference offset. dm must have been built with
// SumDims false; a summed distance matrix carries no per-channel
// information to rank.
func SelectDimensions(dm *DistanceMatrix, k int) (DimRank, error) {
	if dm.Dims < 2 {
		return nil, fmt.Errorf("motiflets: dimension selection requires a multivariate, non-summed distance matrix")
	}

	ranks := make(DimRank, dm.N)
	for o := 0; o < dm.N; o++ {
		order := make([]int, dm.Dims)
		for c := range order {
			order[c] = c
		}
		kthDist := func(c int) float64 {
			knn := dm.Knn[c][o]
			if len(knn) == 0 {
				return math.Inf(1)
			}
			idx := len(knn) - 1
			if idx >= k {
				idx = k - 1
			}
			return dm.D[c][o][knn[idx]]
		}
		sort.SliceStable(order, func(a, b int) bool { return kthDist(order[a]) < kthDist(order[b]) })
		ranks[o] = order
	}
	return ranks, nil
}

// TopU returns, for offset o, the u best-ranked channel indices. u is
// clamped to the number of available channels.
func (r DimRank) TopU(o, u int) []int {
	row := r[o]
	if u > len(row) {
		u = len(row)
	}
	out := make([]int, u)
	copy(out, row[:u])
	return out
}
