package motiflets

import "sort"

// ApproxKMotiflet searches dm for the tightest k-motiflet restricted to the
// given channel subset dims (pass every channel index for the full
// multivariate or summed case). upperBound seeds the admissible pruning
// threshold; pass +Inf for an unconstrained search, or a previously found
// extent (e.g. from a descending k-sweep) to prune harder. refs, when
// non-nil, restricts which reference offsets are considered — this is how
// an annotation vector de-weights uninteresting regions without changing
// the admissibility of the search.
func ApproxKMotiflet(dm *DistanceMatrix, k int, dims []int, upperBound float64, refs []int) *Motiflet {
	return approxKMotifletCore(dm, k, func(int) []int { return dims }, upperBound, refs)
}

// ApproxKMotifletNDims is the dimension-selection variant: at every
// reference offset it restricts the search to that offset's u best-ranked
// channels, per ranks, rather than a single fixed subset for the whole
// series.
func ApproxKMotifletNDims(dm *DistanceMatrix, k, u int, ranks DimRank, upperBound float64, refs []int) *Motiflet {
	return approxKMotifletCore(dm, k, func(o int) []int { return ranks.TopU(o, u) }, upperBound, refs)
}

// approxKMotifletCore walks every reference offset o and, for each channel d
// in that offset's candidate subset S=dims(o), takes d's own precomputed
// non-overlapping k-NN list as the candidate position set — mirroring the
// ground truth's `for d in best_dims[order]: knn_idx = knns[d, order]`. The
// mean distance over S to the k-th neighbor (index k-1, the farthest of the k
// positions) is the admissible lower bound; only candidate sets clearing it
// pay for the full pairwise extent.
func approxKMotifletCore(dm *DistanceMatrix, k int, dimsAt func(o int) []int, upperBound float64, refs []int) *Motiflet {
	best := noMotiflet(k, nil)
	u := upperBound

	offsets := refs
	if offsets == nil {
		offsets = make([]int, dm.N)
		for i := range offsets {
			offsets[i] = i
		}
	}

	for _, o := range offsets {
		dims := dimsAt(o)
		if len(dims) == 0 {
			continue
		}

		for _, d := range dims {
			knn := dm.Knn[d][o]
			if len(knn) < k || knn[k-1] < 0 {
				continue
			}
			positions := knn[:k]

			lb := kthNeighborLowerBound(dm, o, dims, positions[k-1])
			if lb > u {
				continue
			}

			extent, pruned := pairwiseExtent(dm, positions, dims, u)
			if pruned {
				continue
			}
			if extent <= u {
				u = extent
				sorted := append([]int(nil), positions...)
				sort.Ints(sorted)
				best = &Motiflet{K: k, Positions: sorted, Extent: extent, Dims: dims}
			}
		}
	}

	return best
}

// kthNeighborLowerBound returns the mean, over dims, of D[c, o, pos] — the
// distance from o to the single farthest candidate position pos (the k-th,
// index k-1, non-overlapping neighbor on whichever channel produced the
// candidate set) on every channel in dims. No motiflet built from that
// candidate set can have an extent smaller than this, so it is a valid
// admissible pruning bound.
func kthNeighborLowerBound(dm *DistanceMatrix, o int, dims []int, pos int) float64 {
	var sum float64
	for _, c := range dims {
		sum += dm.D[c][o][pos]
	}
	return sum / float64(len(dims))
}

// pairwiseExtent computes the largest mean-over-dims pairwise distance
// among positions, breaking out early (reporting pruned=true) the moment
// the running maximum reaches or exceeds the bound.
func pairwiseExtent(dm *DistanceMatrix, positions []int, dims []int, bound float64) (extent float64, pruned bool) {
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			var sum float64
			for _, c := range dims {
				sum += dm.D[c][positions[i]][positions[j]]
			}
			d := sum / float64(len(dims))
			if d > extent {
				extent = d
			}
			if extent >= bound {
				return extent, true
			}
		}
	}
	return extent, false
}
