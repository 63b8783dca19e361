package workspace

import "math"

// Default weight parameters. Weights are relative shares within a row, not
// normalized fractions; renderers divide by [Row.TotalWeight] when sizing.
const (
	// DefaultPaneWeight is the weight assigned to panes introduced without
	// an explicit weight.
	DefaultPaneWeight = 0.5

	// DefaultMinPaneWeight is the default floor below which no operation
	// may shrink a pane's weight.
	DefaultMinPaneWeight = 0.1
)

// Normalizer produces complete, consistent weight maps for rows whose pane
// sequence is changing. It carries existing weights over, assigns the
// default weight to newly introduced panes, and exposes the minimum-weight
// floor that split operations clamp against.
//
// Normalizer itself never shrinks a weight; clamping to the floor is the
// caller's responsibility at the point where space is redistributed (see
// [Normalizer.SplitWeight]). Normalization is idempotent: the same row and
// pane order always produce the same map.
type Normalizer struct {
	min float64
	def float64
}

// NewNormalizer creates a normalizer with the given minimum and default
// pane weights. Non-positive values fall back to [DefaultMinPaneWeight]
// and [DefaultPaneWeight].
func NewNormalizer(min, def float64) Normalizer {
	if min <= 0 {
		min = DefaultMinPaneWeight
	}
	if def <= 0 {
		def = DefaultPaneWeight
	}
	return Normalizer{min: min, def: def}
}

// Min returns the minimum pane weight floor.
func (n Normalizer) Min() float64 { return n.min }

// Normalize returns a complete weight map for the pane order the row will
// have after the current mutation. Panes present in the row's existing
// weight map keep their weight; panes newly introduced get the default
// weight. Entries for panes absent from newOrder are dropped.
//
// The returned map is fresh; callers may post-process it (for example,
// halving one pane's share to make room for a sibling) before applying it
// with [Row.SetWeights].
func (n Normalizer) Normalize(row *Row, newOrder []string) map[string]float64 {
	weights := make(map[string]float64, len(newOrder))
	for _, id := range newOrder {
		if w, ok := row.weights[id]; ok {
			weights[id] = w
		} else {
			weights[id] = n.def
		}
	}
	return weights
}

// WithRowDefaults fills a row created without an explicit weight map with
// one default weight per pane, establishing the row invariant before first
// use. Existing weights are preserved.
func (n Normalizer) WithRowDefaults(row *Row) {
	if row.weights == nil {
		row.weights = make(map[string]float64, len(row.panes))
	}
	for _, id := range row.panes {
		if _, ok := row.weights[id]; !ok {
			row.weights[id] = n.def
		}
	}
}

// SplitWeight returns half the given weight, clamped to the minimum pane
// weight. This is the share each side of an even split receives. When the
// floor wins on both sides the row's total grows beyond the original
// weight; totals are relative, so renderers absorb this by dividing by the
// row total.
func (n Normalizer) SplitWeight(w float64) float64 {
	return math.Max(w/2, n.min)
}
