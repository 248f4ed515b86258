package annotate

import "testing"

func TestVectorDefault(t *testing.T) {
	out, err := Vector(Default, []float64{1, 2, 3, 4, 5}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(out))
	}
	for _, v := range out {
		if v != 1.0 {
			t.Errorf("expected all-ones default vector, got %v", out)
		}
	}
}

func TestVectorUnknownKind(t *testing.T) {
	if _, err := Vector(Kind("bogus"), []float64{1, 2, 3}, 2); err == nil {
		t.Errorf("expected an error for an unknown kind")
	}
}

func TestVectorClippingBounds(t *testing.T) {
	out, err := Vector(Clipping, []float64{1, 5, 1, 5, 1, 5, 1}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range out {
		if v < 0 || v > 1 {
			t.Errorf("expected clipping weights in [0,1], got %v", v)
		}
	}
}

func TestVectorMeanStd(t *testing.T) {
	out, err := Vector(MeanStd, []float64{1, 1, 1, 1, 5, 5, 5, 5}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range out {
		if v != 0 && v != 1 {
			t.Errorf("expected mean_std weights to be 0 or 1, got %v", v)
		}
	}
}
