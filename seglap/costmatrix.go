package seglap

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/LdDl/seglap-go/trackgraph"
)

// eventKind identifies which linking event a candidate represents
type eventKind uint8

const (
	eventGapClosing eventKind = iota
	eventSplitting
	eventMerging
)

func (k eventKind) String() string {
	switch k {
	case eventGapClosing:
		return "gap-closing"
	case eventSplitting:
		return "splitting"
	case eventMerging:
		return "merging"
	default:
		return "unknown"
	}
}

// candidate is one feasible linking event with its computed cost.
// It ties a matrix cell back to the pair of graph objects it represents.
type candidate struct {
	source *trackgraph.Object
	target *trackgraph.Object
	kind   eventKind
	cost   float64
}

// matrixConfig is the settings map resolved into plain fields once per
// solve, so feasibility predicates stay branch-free in the hot loops.
type matrixConfig struct {
	allowGapClosing bool
	gapMaxCost      float64 // squared distance cutoff
	gapMaxFrameGap  int
	gapPenalties    map[string]float64

	allowSplitting bool
	splitMaxCost   float64
	splitPenalties map[string]float64

	allowMerging   bool
	mergeMaxCost   float64
	mergePenalties map[string]float64

	alternativeCostFactor float64
	cutoffPercentile      float64
}

// newMatrixConfig resolves validated settings into a matrixConfig.
// Distance cutoffs are squared up front to match the cost scale.
func newMatrixConfig(settings Settings) matrixConfig {
	gapMaxDistance := settings[KeyGapClosingMaxDistance].(float64)
	splitMaxDistance := settings[KeySplittingMaxDistance].(float64)
	mergeMaxDistance := settings[KeyMergingMaxDistance].(float64)
	return matrixConfig{
		allowGapClosing: settings[KeyAllowGapClosing].(bool),
		gapMaxCost:      gapMaxDistance * gapMaxDistance,
		gapMaxFrameGap:  settings[KeyGapClosingMaxFrameGap].(int),
		gapPenalties:    featurePenalties(settings, KeyGapClosingFeaturePenalties),

		allowSplitting: settings[KeyAllowSplitting].(bool),
		splitMaxCost:   splitMaxDistance * splitMaxDistance,
		splitPenalties: featurePenalties(settings, KeySplittingFeaturePenalties),

		allowMerging:   settings[KeyAllowMerging].(bool),
		mergeMaxCost:   mergeMaxDistance * mergeMaxDistance,
		mergePenalties: featurePenalties(settings, KeyMergingFeaturePenalties),

		alternativeCostFactor: settings[KeyAlternativeLinkingCostFactor].(float64),
		cutoffPercentile:      settings[KeyCutoffPercentile].(float64),
	}
}

// middleRef is an interior object together with its owning segment index
type middleRef struct {
	object  *trackgraph.Object
	segment int
}

// buildCandidates evaluates every feasible gap-closing, splitting and
// merging pair over the given segments. Work is spread across
// numThreads workers; each worker owns an independent slice of source
// rows and appends into the shared list under a mutex, so insertion is
// write-once. The returned list is sorted for determinism.
func buildCandidates(segments []*Segment, cfg matrixConfig, numThreads int, reporter Reporter) []candidate {
	if numThreads < 1 {
		numThreads = 1
	}

	middles := make([]middleRef, 0)
	for idx, segment := range segments {
		for _, o := range segment.Interior() {
			middles = append(middles, middleRef{object: o, segment: idx})
		}
	}
	sort.Slice(middles, func(i, j int) bool { return middles[i].object.ID() < middles[j].object.ID() })

	// Work units: one per segment tail (gap closing + merging rows),
	// one per middle (splitting rows).
	totalUnits := len(segments)
	if cfg.allowSplitting {
		totalUnits += len(middles)
	}
	if totalUnits == 0 {
		return nil
	}

	var (
		mu         sync.Mutex
		candidates []candidate
		cursor     int64
		doneUnits  int64
		wg         sync.WaitGroup
	)

	worker := func() {
		defer wg.Done()
		local := make([]candidate, 0)
		for {
			unit := int(atomic.AddInt64(&cursor, 1)) - 1
			if unit >= totalUnits {
				break
			}
			if unit < len(segments) {
				local = appendTailCandidates(local, segments, middles, unit, cfg)
			} else {
				local = appendSplitCandidates(local, segments, middles[unit-len(segments)], cfg)
			}
			done := atomic.AddInt64(&doneUnits, 1)
			reporter.Progress(float64(done) / float64(totalUnits))
		}
		if len(local) > 0 {
			mu.Lock()
			candidates = append(candidates, local...)
			mu.Unlock()
		}
	}

	wg.Add(numThreads)
	for w := 0; w < numThreads; w++ {
		go worker()
	}
	wg.Wait()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].source.ID() != candidates[j].source.ID() {
			return candidates[i].source.ID() < candidates[j].source.ID()
		}
		return candidates[i].target.ID() < candidates[j].target.ID()
	})
	return candidates
}

// appendTailCandidates evaluates one segment tail against every other
// segment head (gap closing) and every foreign middle (merging).
func appendTailCandidates(out []candidate, segments []*Segment, middles []middleRef, idx int, cfg matrixConfig) []candidate {
	tail := segments[idx].Tail()

	if cfg.allowGapClosing {
		for jdx, other := range segments {
			if jdx == idx {
				continue
			}
			head := other.Head()
			frameGap := head.Frame - tail.Frame
			if frameGap < 1 || frameGap > cfg.gapMaxFrameGap {
				continue
			}
			cost := linkingCost(tail, head, cfg.gapPenalties)
			if cost > cfg.gapMaxCost {
				continue
			}
			out = append(out, candidate{source: tail, target: head, kind: eventGapClosing, cost: cost})
		}
	}

	if cfg.allowMerging {
		for _, middle := range middles {
			if middle.segment == idx {
				continue
			}
			if middle.object.Frame-tail.Frame != 1 {
				continue
			}
			cost := linkingCost(tail, middle.object, cfg.mergePenalties)
			if cost > cfg.mergeMaxCost {
				continue
			}
			out = append(out, candidate{source: tail, target: middle.object, kind: eventMerging, cost: cost})
		}
	}
	return out
}

// appendSplitCandidates evaluates one middle against every foreign
// segment head.
func appendSplitCandidates(out []candidate, segments []*Segment, middle middleRef, cfg matrixConfig) []candidate {
	for jdx, other := range segments {
		if jdx == middle.segment {
			continue
		}
		head := other.Head()
		if head.Frame-middle.object.Frame != 1 {
			continue
		}
		cost := linkingCost(middle.object, head, cfg.splitPenalties)
		if cost > cfg.splitMaxCost {
			continue
		}
		out = append(out, candidate{source: middle.object, target: head, kind: eventSplitting, cost: cost})
	}
	return out
}
