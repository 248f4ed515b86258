package motiflets

import "testing"

// TestSeedS3ElbowFloor covers seed scenario S3: a flat-to-smooth extent
// curve yields exactly the {2} floor.
func TestSeedS3ElbowFloor(t *testing.T) {
	curve := ExtentCurve{KMin: 2, Values: []float64{1.0, 1.01, 1.02, 1.03, 1.04}}
	got := FindElbows(curve, DefaultElbowAlpha, DefaultElbowTau)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected elbow floor {2}, got %v", got)
	}
}

func TestFindElbowsNeverEmpty(t *testing.T) {
	if got := FindElbows(ExtentCurve{KMin: 2}, DefaultElbowAlpha, DefaultElbowTau); len(got) != 1 || got[0] != 2 {
		t.Errorf("expected {2} for an empty curve, got %v", got)
	}
	short := ExtentCurve{KMin: 2, Values: []float64{1.0}}
	if got := FindElbows(short, DefaultElbowAlpha, DefaultElbowTau); len(got) != 1 || got[0] != 2 {
		t.Errorf("expected {2} for a single-point curve, got %v", got)
	}
}

func TestFindElbowsDetectsSharpBend(t *testing.T) {
	// flat through k=5, then a sharp jump at k=6, so k=5 is the elbow.
	curve := ExtentCurve{KMin: 2, Values: []float64{1.0, 1.0, 1.0, 1.0, 10.0, 10.5}}
	got := FindElbows(curve, DefaultElbowAlpha, DefaultElbowTau)
	found := false
	for _, k := range got {
		if k == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected k=5 to be flagged as an elbow, got %v", got)
	}
}

func TestExtentCurveAt(t *testing.T) {
	curve := ExtentCurve{KMin: 2, Values: []float64{1, 2, 3}}
	if curve.At(3) != 2 {
		t.Errorf("expected At(3)=2, got %v", curve.At(3))
	}
	if curve.At(10) != curve.At(10) { // sanity: no NaN
		t.Error("unexpected NaN")
	}
}
