package page

import "testing"

func TestGapSymmetry(t *testing.T) {
	pairs := [][2]int{{1, 1}, {1, 2}, {2, 1}, {3, 10}, {10, 3}, {5, 5}}
	for _, p := range pairs {
		if Gap(p[0], p[1]) != Gap(p[1], p[0]) {
			t.Errorf("Gap(%d,%d) != Gap(%d,%d)", p[0], p[1], p[1], p[0])
		}
	}
}

func TestNearFarRelation(t *testing.T) {
	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			if Near(a, b) != (Gap(a, b) <= 1) {
				t.Errorf("Near(%d,%d) inconsistent with Gap", a, b)
			}
			if Far(a, b) != !Near(a, b) {
				t.Errorf("Far(%d,%d) is not the negation of Near", a, b)
			}
		}
	}
}

func TestStateDistance(t *testing.T) {
	var seq Sequence
	a, _ := NewEmpty[int](&seq, 3)
	b, _ := NewEmpty[int](&seq, 5)

	if a.Gap(b) != 2 {
		t.Errorf("expected gap 2, got %d", a.Gap(b))
	}
	if a.Near(b) {
		t.Error("pages 3 and 5 reported near")
	}
	if !a.Far(b) {
		t.Error("pages 3 and 5 not reported far")
	}
}
