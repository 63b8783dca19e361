package workspace

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidID is returned when a pane, row, or tab identifier is empty.
	// All identifiers must be non-empty strings.
	ErrInvalidID = errors.New("identifier must not be empty")

	// ErrDuplicatePane is returned by [Workspace.AddPane] when a pane with
	// the same ID is already registered. Pane IDs must be unique.
	ErrDuplicatePane = errors.New("duplicate pane ID")

	// ErrUnknownPane is returned when an operation references a pane ID
	// that does not exist in the workspace or row.
	ErrUnknownPane = errors.New("unknown pane")

	// ErrDuplicateTab is returned by [Pane.AppendTab] when a tab with the
	// same ID already exists in the pane. Use [Pane.ReplaceTab] to update
	// an existing tab in place.
	ErrDuplicateTab = errors.New("duplicate tab ID")

	// ErrUnknownTab is returned when a tab ID does not exist in the pane.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrNoPanes is returned by [Placer.PlacePreview] when the workspace
	// has no panes. Placement requires at least one pane; an empty
	// workspace indicates a bug in the surrounding state management.
	ErrNoPanes = errors.New("workspace has no panes")

	// ErrUnknownActivePane is returned by [Workspace.Validate] and
	// [Placer.PlacePreview] when the active pane ID does not reference an
	// existing pane.
	ErrUnknownActivePane = errors.New("active pane does not exist")

	// ErrWeightMismatch is returned by [Row.SetWeights] and
	// [Workspace.Validate] when a row's weight map keys do not match its
	// pane sequence exactly.
	ErrWeightMismatch = errors.New("weight map does not match pane sequence")

	// ErrPaneNotInRow is returned by [Workspace.Validate] when a pane
	// belongs to no row, and by [Row.InsertAfter] when the anchor pane is
	// not part of the row.
	ErrPaneNotInRow = errors.New("pane not in row")

	// ErrPaneInMultipleRows is returned by [Workspace.Validate] when a
	// pane ID appears in more than one row sequence. Every pane is owned
	// by exactly one row.
	ErrPaneInMultipleRows = errors.New("pane in multiple rows")

	// ErrNonPositiveWeight is returned by [Row.SetWeights] when a weight
	// is zero or negative. Weights are relative size shares and must be
	// positive.
	ErrNonPositiveWeight = errors.New("pane weight must be positive")
)

// TabKind distinguishes the views a pane can host.
type TabKind int

const (
	// TabDocument is an editable source document view.
	TabDocument TabKind = iota
	// TabPreview is a read-oriented view whose content is derived from a
	// source document. Preview tabs carry the source document ID and a
	// rendered content snapshot.
	TabPreview
)

// PreviewIDPrefix is prepended to a source document ID to form the
// collapsed identifier of its preview tab.
const PreviewIDPrefix = "preview:"

// PreviewTabID derives the collapsed tab identifier for a source document.
// Two previews of the same source always share this identifier, which is
// what makes repeated placement collapse to a single tab.
func PreviewTabID(sourceID string) string {
	return PreviewIDPrefix + sourceID
}

// Tab is a single open view within a pane. The zero value is not usable -
// create document tabs with [NewDocumentTab] and preview tabs with
// [NewPreviewTab] so the ID invariants hold.
type Tab struct {
	ID       string  // Unique within the workspace
	Name     string  // Display name
	Kind     TabKind // Document or preview
	SourceID string  // Preview tabs: ID of the source document
	Content  string  // Preview tabs: rendered snapshot
}

// NewDocumentTab creates a document tab. The document ID doubles as the
// tab identifier.
func NewDocumentTab(docID, name string) Tab {
	return Tab{ID: docID, Name: name, Kind: TabDocument}
}

// NewPreviewTab creates a preview tab for a source document with the given
// rendered content snapshot. The tab ID is derived from the source ID via
// [PreviewTabID], so successive previews of the same source collapse.
func NewPreviewTab(sourceID, name, content string) Tab {
	return Tab{
		ID:       PreviewTabID(sourceID),
		Name:     name,
		Kind:     TabPreview,
		SourceID: sourceID,
		Content:  content,
	}
}

// Pane is a rectangular region hosting an ordered sequence of tabs, one of
// which may be active. Tab order is display order. A companion index maps
// tab IDs to positions so existence checks and in-place replacement are
// O(1) regardless of tab count.
//
// The zero value is not usable - create panes through [Factory.NewPane].
// Pane is not safe for concurrent use; the engine is single-threaded by
// design and callers mutate it only from the UI event loop.
type Pane struct {
	id        string
	tabs      []Tab
	tabPos    map[string]int
	activeTab string
}

// ID returns the pane's identifier.
func (p *Pane) ID() string { return p.id }

// Tabs returns a copy of the pane's tab sequence in display order.
func (p *Pane) Tabs() []Tab { return slices.Clone(p.tabs) }

// TabCount returns the number of tabs in the pane.
func (p *Pane) TabCount() int { return len(p.tabs) }

// Tab returns the tab with the given ID and true, or a zero Tab and false.
func (p *Pane) Tab(id string) (Tab, bool) {
	i, ok := p.tabPos[id]
	if !ok {
		return Tab{}, false
	}
	return p.tabs[i], true
}

// HasTab reports whether a tab with the given ID exists in the pane.
func (p *Pane) HasTab(id string) bool {
	_, ok := p.tabPos[id]
	return ok
}

// ActiveTab returns the ID of the active tab, or "" when the pane is empty.
func (p *Pane) ActiveTab() string { return p.activeTab }

// SetActiveTab marks the tab with the given ID as active.
// Returns ErrUnknownTab if no such tab exists.
func (p *Pane) SetActiveTab(id string) error {
	if !p.HasTab(id) {
		return ErrUnknownTab
	}
	p.activeTab = id
	return nil
}

// AppendTab adds a tab at the end of the pane's sequence. The first tab
// appended to an empty pane becomes the active tab. Returns ErrInvalidID
// for an empty tab ID or ErrDuplicateTab if the ID is already present.
func (p *Pane) AppendTab(t Tab) error {
	if t.ID == "" {
		return ErrInvalidID
	}
	if p.HasTab(t.ID) {
		return ErrDuplicateTab
	}
	p.tabPos[t.ID] = len(p.tabs)
	p.tabs = append(p.tabs, t)
	if p.activeTab == "" {
		p.activeTab = t.ID
	}
	return nil
}

// ReplaceTab overwrites the tab with the same ID in place, preserving its
// position in the sequence. Returns ErrUnknownTab if the ID is not present.
func (p *Pane) ReplaceTab(t Tab) error {
	i, ok := p.tabPos[t.ID]
	if !ok {
		return ErrUnknownTab
	}
	p.tabs[i] = t
	return nil
}

// RemoveTab removes the tab with the given ID. If the removed tab was
// active, the tab at its former position becomes active (or the last tab,
// or none when the pane is left empty). Returns ErrUnknownTab if the ID is
// not present.
func (p *Pane) RemoveTab(id string) error {
	i, ok := p.tabPos[id]
	if !ok {
		return ErrUnknownTab
	}
	p.tabs = slices.Delete(p.tabs, i, i+1)
	delete(p.tabPos, id)
	for j := i; j < len(p.tabs); j++ {
		p.tabPos[p.tabs[j].ID] = j
	}
	if p.activeTab == id {
		switch {
		case len(p.tabs) == 0:
			p.activeTab = ""
		case i < len(p.tabs):
			p.activeTab = p.tabs[i].ID
		default:
			p.activeTab = p.tabs[len(p.tabs)-1].ID
		}
	}
	return nil
}

// Row is an ordered group of panes arranged together with relative size
// weights. The pane sequence is visual order; the weight map holds one
// positive entry per pane in the sequence and nothing else. That invariant
// is enforced by every mutating method.
type Row struct {
	id      string
	panes   []string
	weights map[string]float64
}

// ID returns the row's identifier.
func (r *Row) ID() string { return r.id }

// PaneIDs returns a copy of the row's pane sequence in visual order.
func (r *Row) PaneIDs() []string { return slices.Clone(r.panes) }

// PaneCount returns the number of panes in the row.
func (r *Row) PaneCount() int { return len(r.panes) }

// Contains reports whether the pane ID is part of the row's sequence.
func (r *Row) Contains(paneID string) bool {
	return slices.Contains(r.panes, paneID)
}

// Weights returns a copy of the row's weight map.
func (r *Row) Weights() map[string]float64 { return maps.Clone(r.weights) }

// Weight returns the weight assigned to the pane, or 0 if the pane is not
// part of the row.
func (r *Row) Weight(paneID string) float64 { return r.weights[paneID] }

// TotalWeight returns the sum of all pane weights in the row. Weights are
// relative shares, so the total is the denominator renderers divide by.
func (r *Row) TotalWeight() float64 {
	var total float64
	for _, w := range r.weights {
		total += w
	}
	return total
}

// InsertAfter inserts paneID into the sequence immediately after anchorID.
// The new pane has no weight entry yet; callers must follow up with
// [Row.SetWeights] (typically via [Normalizer.Normalize]) before the row
// is read again. Returns ErrInvalidID for an empty pane ID and
// ErrPaneNotInRow if the anchor is not part of the row.
func (r *Row) InsertAfter(anchorID, paneID string) error {
	if paneID == "" {
		return ErrInvalidID
	}
	i := slices.Index(r.panes, anchorID)
	if i < 0 {
		return ErrPaneNotInRow
	}
	r.panes = slices.Insert(r.panes, i+1, paneID)
	return nil
}

// SetWeights replaces the row's weight map. The key set must equal the
// pane sequence exactly and every weight must be positive; otherwise the
// row is left unchanged and ErrWeightMismatch or ErrNonPositiveWeight is
// returned.
func (r *Row) SetWeights(weights map[string]float64) error {
	if len(weights) != len(r.panes) {
		return ErrWeightMismatch
	}
	for _, id := range r.panes {
		w, ok := weights[id]
		if !ok {
			return ErrWeightMismatch
		}
		if w <= 0 {
			return ErrNonPositiveWeight
		}
	}
	r.weights = maps.Clone(weights)
	return nil
}

// validate checks the row invariant: no duplicate pane IDs and a weight
// map whose key set equals the pane sequence with positive values.
func (r *Row) validate() error {
	seen := make(map[string]bool, len(r.panes))
	for _, id := range r.panes {
		if id == "" {
			return ErrInvalidID
		}
		if seen[id] {
			return ErrPaneInMultipleRows
		}
		seen[id] = true
		w, ok := r.weights[id]
		if !ok {
			return ErrWeightMismatch
		}
		if w <= 0 {
			return ErrNonPositiveWeight
		}
	}
	if len(r.weights) != len(r.panes) {
		return ErrWeightMismatch
	}
	return nil
}

// Workspace is the complete pane/row arrangement plus the single active
// pane that receives keyboard and menu directed commands.
//
// The workspace keeps an explicit pane ordering (the order panes were
// opened or split into existence) that cyclic "next pane" selection walks.
// The zero value is not usable - use [New].
//
// Workspace is not safe for concurrent use. The engine runs synchronously
// on a single logical thread; callers apply each operation's state changes
// before yielding back to rendering.
type Workspace struct {
	panes     map[string]*Pane
	paneOrder []string
	rows      []*Row
	active    string
}

// New creates an empty workspace with no panes, rows, or active pane.
func New() *Workspace {
	return &Workspace{panes: make(map[string]*Pane)}
}

// AddPane registers a pane with the workspace, appending it to the pane
// ordering. The first pane added becomes the active pane. Returns
// ErrDuplicatePane if the ID is already registered.
func (w *Workspace) AddPane(p *Pane) error {
	if p.id == "" {
		return ErrInvalidID
	}
	if _, exists := w.panes[p.id]; exists {
		return ErrDuplicatePane
	}
	w.panes[p.id] = p
	w.paneOrder = append(w.paneOrder, p.id)
	if w.active == "" {
		w.active = p.id
	}
	return nil
}

// insertPaneAfter registers a pane immediately after anchorID in the pane
// ordering. Used by split placement so cyclic selection visits the new
// sibling right after the pane it was split from.
func (w *Workspace) insertPaneAfter(anchorID string, p *Pane) error {
	if p.id == "" {
		return ErrInvalidID
	}
	if _, exists := w.panes[p.id]; exists {
		return ErrDuplicatePane
	}
	i := slices.Index(w.paneOrder, anchorID)
	if i < 0 {
		return ErrUnknownPane
	}
	w.panes[p.id] = p
	w.paneOrder = slices.Insert(w.paneOrder, i+1, p.id)
	return nil
}

// Pane returns the pane with the given ID and true, or nil and false.
func (w *Workspace) Pane(id string) (*Pane, bool) {
	p, ok := w.panes[id]
	return p, ok
}

// PaneIDs returns the workspace pane ordering. The returned slice is a
// copy and safe to modify.
func (w *Workspace) PaneIDs() []string { return slices.Clone(w.paneOrder) }

// PaneCount returns the number of panes in the workspace.
func (w *Workspace) PaneCount() int { return len(w.panes) }

// ActivePane returns the ID of the active pane, or "" for an empty
// workspace.
func (w *Workspace) ActivePane() string { return w.active }

// SetActivePane makes the pane with the given ID active.
// Returns ErrUnknownPane if no such pane exists.
func (w *Workspace) SetActivePane(id string) error {
	if _, ok := w.panes[id]; !ok {
		return ErrUnknownPane
	}
	w.active = id
	return nil
}

// NextPane returns the pane immediately after the given pane in the
// workspace ordering, wrapping to the first pane when the given pane is
// last. Returns ErrUnknownPane if the pane is not registered.
func (w *Workspace) NextPane(id string) (string, error) {
	i := slices.Index(w.paneOrder, id)
	if i < 0 {
		return "", ErrUnknownPane
	}
	return w.paneOrder[(i+1)%len(w.paneOrder)], nil
}

// Rows returns the workspace rows in top-to-bottom order. The returned
// slice is a copy; the row pointers refer to the live rows.
func (w *Workspace) Rows() []*Row { return slices.Clone(w.rows) }

// RowCount returns the number of rows in the workspace.
func (w *Workspace) RowCount() int { return len(w.rows) }

// RowOf returns the row containing the given pane ID and true, or nil and
// false when no row claims the pane.
func (w *Workspace) RowOf(paneID string) (*Row, bool) {
	for _, r := range w.rows {
		if r.Contains(paneID) {
			return r, true
		}
	}
	return nil, false
}

// AddRow appends a row to the workspace. The row's panes must already be
// registered and not claimed by another row; Validate catches violations.
func (w *Workspace) AddRow(r *Row) {
	w.rows = append(w.rows, r)
}

// PruneEmptyRows removes rows whose pane sequence is empty. Empty rows are
// permitted transiently (a close operation may drain a row) but must not
// survive to rendering.
func (w *Workspace) PruneEmptyRows() {
	w.rows = slices.DeleteFunc(w.rows, func(r *Row) bool { return len(r.panes) == 0 })
}

// Validate checks workspace integrity and returns nil if valid.
// It verifies:
//
//  1. The active pane references an existing pane (when panes exist)
//  2. Every row's weight map matches its pane sequence (positive weights)
//  3. Every row references only registered panes
//  4. Every pane belongs to exactly one row
//
// Violations indicate bugs in the surrounding state management, not user
// errors. Callers should treat a failed validation as an assertion
// failure during development and skip the offending operation in
// production rather than surface it to the user.
func (w *Workspace) Validate() error {
	if len(w.panes) > 0 {
		if _, ok := w.panes[w.active]; !ok {
			return ErrUnknownActivePane
		}
	}

	claimed := make(map[string]bool, len(w.panes))
	for _, r := range w.rows {
		if err := r.validate(); err != nil {
			return err
		}
		for _, id := range r.panes {
			if _, ok := w.panes[id]; !ok {
				return ErrUnknownPane
			}
			if claimed[id] {
				return ErrPaneInMultipleRows
			}
			claimed[id] = true
		}
	}

	if len(w.rows) > 0 {
		for id := range w.panes {
			if !claimed[id] {
				return ErrPaneNotInRow
			}
		}
	}
	return nil
}
