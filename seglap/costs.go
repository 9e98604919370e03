package seglap

import (
	"math"
	"sort"

	"github.com/LdDl/seglap-go/trackgraph"
)

// linkingCost returns the cost of linking two objects: the squared
// Euclidean distance inflated by the configured feature penalties.
// The penalty factor 1 + sum(weight * normalizedDiff) is clamped to 1,
// so the cost never drops below the raw distance term and is never
// negative.
func linkingCost(a, b *trackgraph.Object, penalties map[string]float64) float64 {
	d2 := a.SquaredDistanceTo(b)
	if len(penalties) == 0 {
		return d2
	}
	factor := 1.0
	for feature, weight := range penalties {
		factor += weight * a.NormalizedDiffTo(b, feature)
	}
	if factor < 1 {
		factor = 1
	}
	return d2 * factor
}

// percentile estimates the value at the given fraction of the
// distribution using the position p*(n+1) with linear interpolation,
// clamped to the observed minimum and maximum. With 10 values and
// fraction 0.5 this yields the even-count median.
func percentile(values []float64, fraction float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := fraction * float64(n+1)
	if pos < 1 {
		return sorted[0]
	}
	if pos >= float64(n) {
		return sorted[n-1]
	}
	lower := sorted[int(pos)-1]
	upper := sorted[int(pos)]
	return lower + (pos-math.Floor(pos))*(upper-lower)
}
