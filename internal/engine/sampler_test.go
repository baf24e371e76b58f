package engine

import (
	"math/rand"
	"testing"
)

func TestWeightedPick(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("no positive weight", func(t *testing.T) {
		if idx := weightedPick(rng, []float64{0, 0, 0}); idx != -1 {
			t.Errorf("expected -1, got %d", idx)
		}
		if idx := weightedPick(rng, nil); idx != -1 {
			t.Errorf("expected -1 for empty weights, got %d", idx)
		}
	})

	t.Run("single weight", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			if idx := weightedPick(rng, []float64{3}); idx != 0 {
				t.Fatalf("expected index 0, got %d", idx)
			}
		}
	})

	t.Run("zero weight entries never chosen", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			idx := weightedPick(rng, []float64{0, 1, 0, 2, 0})
			if idx != 1 && idx != 3 {
				t.Fatalf("picked zero-weight index %d", idx)
			}
		}
	})

	t.Run("proportional distribution", func(t *testing.T) {
		counts := [2]int{}
		for i := 0; i < 10000; i++ {
			idx := weightedPick(rng, []float64{1, 9})
			counts[idx]++
		}
		// Expect roughly 10%/90%.
		if counts[0] < 600 || counts[0] > 1500 {
			t.Errorf("expected ~1000 picks of index 0, got %d", counts[0])
		}
	})
}
