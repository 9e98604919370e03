package seglap

import (
	"testing"

	"github.com/LdDl/seglap-go/trackgraph"
	"github.com/stretchr/testify/assert"
)

func TestLinkingCostIsSquaredDistance(t *testing.T) {
	a := trackgraph.NewObject(0, 0, 0, 1, 0)
	b := trackgraph.NewObject(3, 4, 0, 1, 1)

	assert.InDelta(t, 25.0, linkingCost(a, b, nil), 1e-12)
}

func TestLinkingCostFeaturePenalty(t *testing.T) {
	a := trackgraph.NewObject(0, 0, 0, 1, 0)
	b := trackgraph.NewObject(2, 0, 0, 1, 1)
	a.SetFeature("intensity", 10)
	b.SetFeature("intensity", 30)

	// normalizedDiff = 1, weight = 0.5 -> factor 1.5 on the distance term
	cost := linkingCost(a, b, map[string]float64{"intensity": 0.5})
	assert.InDelta(t, 4.0*1.5, cost, 1e-12)
}

func TestLinkingCostPenaltyClamped(t *testing.T) {
	a := trackgraph.NewObject(0, 0, 0, 1, 0)
	b := trackgraph.NewObject(2, 0, 0, 1, 1)
	a.SetFeature("intensity", 10)
	b.SetFeature("intensity", 30)

	// A negative weight would deflate the factor below 1; it must clamp
	// to the raw distance term and never go negative.
	cost := linkingCost(a, b, map[string]float64{"intensity": -5})
	assert.InDelta(t, 4.0, cost, 1e-12)
}

func TestPercentileMedianOfTenValues(t *testing.T) {
	values := []float64{10, 3, 7, 1, 9, 2, 8, 4, 6, 5}
	// Even count: the 0.5 percentile interpolates between the 5th and
	// 6th ordered values.
	assert.InDelta(t, 5.5, percentile(values, 0.5), 1e-12)
}

func TestPercentileBounds(t *testing.T) {
	values := []float64{4, 2, 9}
	assert.Equal(t, 2.0, percentile(values, 0.01))
	assert.Equal(t, 9.0, percentile(values, 1.0))
	assert.Equal(t, 0.0, percentile(nil, 0.5))
	assert.Equal(t, 7.0, percentile([]float64{7}, 0.9))
}

func TestPercentileInterpolates(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	// pos = 0.5*5 = 2.5 -> halfway between the 2nd and 3rd values.
	assert.InDelta(t, 2.5, percentile(values, 0.5), 1e-12)
}
