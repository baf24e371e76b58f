package engine

import (
	"math/rand"
	"sort"
)

// weightedPick returns an index chosen with probability proportional to
// weights[i], using cumulative sums rather than materializing duplicate
// entries. Non-positive weights are treated as zero. Returns -1 when no
// weight is positive.
func weightedPick(rng *rand.Rand, weights []float64) int {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return -1
	}

	target := rng.Float64() * total
	return sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > target
	})
}
