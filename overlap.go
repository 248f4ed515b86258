package motiflets

import "sort"

// FilterOverlapping removes elbow candidates whose occurrences mostly
// coincide with a larger-k motiflet elsewhere in the elbow set. Two
// occurrences are considered the same physical location when they start
// within m/4 samples of each other; a candidate is dropped when at least
// half its occurrences collide with some later, larger-k motiflet's
// occurrences — the smaller motiflet is the redundant one, since the larger
// motiflet already accounts for that location with one more occurrence.
//
// Candidates are compared in ascending k order: each one is checked against
// every larger k still in the elbow set, so only the largest motiflet at a
// given location survives.
func FilterOverlapping(motiflets map[int]*Motiflet, elbows []int, m int) []int {
	threshold := m / 4

	sorted := append([]int(nil), elbows...)
	sort.Ints(sorted)

	var kept []int
	for i, k := range sorted {
		cand, ok := motiflets[k]
		if !ok {
			continue
		}
		// A degenerate candidate (no motiflet found at this k) cannot
		// physically overlap anything; it always survives the filter,
		// preserving the elbow-set-always-contains-2 guarantee.
		if cand == nil || len(cand.Positions) == 0 {
			kept = append(kept, k)
			continue
		}
		if !overlappedByLater(cand, sorted[i+1:], motiflets, threshold) {
			kept = append(kept, k)
		}
	}
	return kept
}

// overlappedByLater reports whether cand (the smaller-k motiflet) overlaps
// any of the still-larger motiflets in laterKs.
func overlappedByLater(cand *Motiflet, laterKs []int, motiflets map[int]*Motiflet, threshold int) bool {
	for _, k := range laterKs {
		later, ok := motiflets[k]
		if !ok || later == nil || len(later.Positions) == 0 {
			continue
		}
		if overlapsMajority(cand, later, threshold) {
			return true
		}
	}
	return false
}

// overlapsMajority reports whether at least half of cand's occurrences sit
// within threshold samples of some occurrence in a.
func overlapsMajority(cand, a *Motiflet, threshold int) bool {
	hits := 0
	for _, p := range cand.Positions {
		for _, q := range a.Positions {
			d := p - q
			if d < 0 {
				d = -d
			}
			if d <= threshold {
				hits++
				break
			}
		}
	}
	return hits*2 >= len(cand.Positions)
}
