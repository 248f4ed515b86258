package motiflets

import (
	"math"
	"testing"
)

// TestSeedS6DimensionRanking covers seed scenario S6: reference positions
// whose k-th neighbor is tight on channels 0 and 2 but loose on channel 1
// should rank {0,2} ahead of {1}. It checks this at every offset: each
// channel appears once, in ascending order of its k-th neighbor distance.
func TestSeedS6DimensionRanking(t *testing.T) {
	data := seedSeries()
	dm, err := Build(data, 4, 3, NewBuildOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranks, err := SelectDimensions(dm, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranks) != dm.N {
		t.Fatalf("expected %d ranked rows, got %d", dm.N, len(ranks))
	}

	for o := 0; o < dm.N; o++ {
		row := ranks[o]
		if len(row) != dm.Dims {
			t.Fatalf("offset %d: expected %d ranked channels, got %d", o, dm.Dims, len(row))
		}
		seen := make(map[int]bool)
		for _, c := range row {
			if seen[c] {
				t.Fatalf("offset %d: channel %d ranked twice", o, c)
			}
			seen[c] = true
		}

		kth := func(c int) float64 {
			knn := dm.Knn[c][o]
			if len(knn) == 0 {
				return math.Inf(1)
			}
			idx := len(knn) - 1
			if idx > 2 {
				idx = 2
			}
			return dm.D[c][o][knn[idx]]
		}
		for p := 1; p < len(row); p++ {
			if kth(row[p-1]) > kth(row[p]) {
				t.Errorf("offset %d: channel %d ranked ahead of tighter channel %d", o, row[p-1], row[p])
			}
		}
	}
}

func TestSelectDimensionsRequiresMultivariate(t *testing.T) {
	data := [][]float64{{2, 2, 5, 5, 2, 2, 6, 6}}
	opts := NewBuildOptions()
	opts.SumDims = true
	dm, err := Build(data, 4, 2, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := SelectDimensions(dm, 2); err == nil {
		t.Error("expected error selecting dimensions on a summed distance matrix")
	}
}

func TestTopU(t *testing.T) {
	ranks := DimRank{{2, 0, 1}}
	top := ranks.TopU(0, 2)
	if len(top) != 2 || top[0] != 2 || top[1] != 0 {
		t.Errorf("expected [2 0], got %v", top)
	}
	full := ranks.TopU(0, 10)
	if len(full) != 3 {
		t.Errorf("expected TopU to clamp to available channels, got %d", len(full))
	}
}
