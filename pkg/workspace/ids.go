package workspace

import (
	"strconv"

	"github.com/google/uuid"
)

// IDSource allocates fresh identifiers for panes and rows. Injecting the
// source keeps identifier allocation out of global state, so tests can use
// a deterministic counter while production uses random UUIDs.
//
// Pane and row identifiers live in separate namespaces; implementations
// only need uniqueness within each namespace for the process lifetime.
type IDSource interface {
	// PaneID returns a fresh pane identifier.
	PaneID() string
	// RowID returns a fresh row identifier.
	RowID() string
}

// CounterSource is an IDSource backed by monotonically increasing
// counters. Identifiers look like "pane-1", "row-1". Deterministic and
// intended for tests; not safe for concurrent use.
type CounterSource struct {
	panes int
	rows  int
}

// NewCounterSource creates a counter-backed ID source starting at 1.
func NewCounterSource() *CounterSource { return &CounterSource{} }

// PaneID returns the next pane identifier.
func (s *CounterSource) PaneID() string {
	s.panes++
	return "pane-" + strconv.Itoa(s.panes)
}

// RowID returns the next row identifier.
func (s *CounterSource) RowID() string {
	s.rows++
	return "row-" + strconv.Itoa(s.rows)
}

// UUIDSource is an IDSource backed by random UUIDs. Identifiers are
// prefixed with their namespace ("pane-", "row-") so log lines stay
// readable.
type UUIDSource struct{}

// NewUUIDSource creates a UUID-backed ID source.
func NewUUIDSource() UUIDSource { return UUIDSource{} }

// PaneID returns a fresh pane identifier.
func (UUIDSource) PaneID() string { return "pane-" + uuid.NewString() }

// RowID returns a fresh row identifier.
func (UUIDSource) RowID() string { return "row-" + uuid.NewString() }

// Factory creates freshly initialized panes and row identifiers from an
// injected ID source.
type Factory struct {
	ids IDSource
}

// NewFactory creates a factory drawing identifiers from the given source.
// A nil source defaults to [UUIDSource].
func NewFactory(ids IDSource) *Factory {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Factory{ids: ids}
}

// NewPane returns a new empty pane with a fresh identifier, an empty tab
// sequence, and no active tab. It never fails.
func (f *Factory) NewPane() *Pane {
	return &Pane{
		id:     f.ids.PaneID(),
		tabPos: make(map[string]int),
	}
}

// NewRow returns a new row with a fresh identifier containing the given
// panes in order and no weights yet. Callers establish the row invariant
// with [Normalizer.WithRowDefaults] or [Row.SetWeights] before the row is
// read.
func (f *Factory) NewRow(paneIDs ...string) *Row {
	return &Row{
		id:      f.ids.RowID(),
		panes:   paneIDs,
		weights: make(map[string]float64),
	}
}
