package workspace

import "errors"

// ErrNotPreview is returned by [Placer.PlacePreview] when the tab is not a
// preview tab. Document tabs are opened directly into panes, never placed.
var ErrNotPreview = errors.New("tab is not a preview")

// Placer decides where a preview tab lands in the workspace.
//
// With a single pane the workspace is split: a fresh pane is created next
// to the active one and the active pane's space is divided evenly between
// the two, clamped to the minimum pane weight. With multiple panes the
// preview is routed to the pane cyclically following the active one, which
// keeps previews away from the pane the user is editing. A preview for a
// source document that is already showing anywhere in the workspace
// replaces that tab's content in place, so placing the same preview twice
// never duplicates it.
type Placer struct {
	factory *Factory
	norm    Normalizer
}

// NewPlacer creates a placer that allocates panes and rows through the
// factory and recomputes weights through the normalizer.
func NewPlacer(factory *Factory, norm Normalizer) *Placer {
	return &Placer{factory: factory, norm: norm}
}

// PlacePreview places a preview tab into the workspace and makes it the
// active tab of the pane that received it; that pane becomes the active
// pane.
//
// The operation is total over well-formed workspaces: once the
// preconditions below hold, it cannot fail partway and the three state
// updates (panes, rows, active pane) land together.
//
// Preconditions (violations return an error and leave the workspace
// untouched; they indicate bugs in the surrounding state management):
//   - tab.Kind is TabPreview (ErrNotPreview)
//   - the workspace has at least one pane (ErrNoPanes)
//   - the active pane references an existing pane (ErrUnknownActivePane)
func (p *Placer) PlacePreview(ws *Workspace, tab Tab) error {
	if tab.Kind != TabPreview {
		return ErrNotPreview
	}
	if ws.PaneCount() == 0 {
		return ErrNoPanes
	}
	if _, ok := ws.Pane(ws.ActivePane()); !ok {
		return ErrUnknownActivePane
	}

	// Tab identifiers are unique across the whole workspace, so an
	// existing preview for the same source collapses in place wherever it
	// lives. Its pane keeps it at the same position and becomes active.
	for _, id := range ws.PaneIDs() {
		pane, ok := ws.Pane(id)
		if !ok || !pane.HasTab(tab.ID) {
			continue
		}
		if err := pane.ReplaceTab(tab); err != nil {
			return err
		}
		if err := pane.SetActiveTab(tab.ID); err != nil {
			return err
		}
		return ws.SetActivePane(id)
	}

	if ws.PaneCount() == 1 {
		return p.splitForPreview(ws, tab)
	}
	return p.routePreview(ws, tab)
}

// splitForPreview handles the single-pane case: create a sibling pane for
// the preview after the active pane and divide the active pane's space
// between the two.
func (p *Placer) splitForPreview(ws *Workspace, tab Tab) error {
	activeID := ws.ActivePane()

	pane := p.factory.NewPane()
	if err := pane.AppendTab(tab); err != nil {
		return err
	}
	// AppendTab on an empty pane already made the preview active.

	if err := ws.insertPaneAfter(activeID, pane); err != nil {
		return err
	}

	row, ok := ws.RowOf(activeID)
	if !ok {
		// Zero-row bootstrap: the pane set predates any row structure.
		row = p.factory.NewRow(activeID, pane.ID())
		p.norm.WithRowDefaults(row)
		ws.AddRow(row)
	} else if err := row.InsertAfter(activeID, pane.ID()); err != nil {
		return err
	}

	weights := p.norm.Normalize(row, row.PaneIDs())
	half := p.norm.SplitWeight(weights[activeID])
	weights[activeID] = half
	weights[pane.ID()] = half
	if err := row.SetWeights(weights); err != nil {
		return err
	}

	return ws.SetActivePane(pane.ID())
}

// routePreview handles the multi-pane case: send a first-time preview to
// the pane cyclically following the active one. Collapsing onto an
// existing preview happens before this is reached.
func (p *Placer) routePreview(ws *Workspace, tab Tab) error {
	targetID, err := ws.NextPane(ws.ActivePane())
	if err != nil {
		return err
	}
	target, ok := ws.Pane(targetID)
	if !ok {
		return ErrUnknownPane
	}

	if err := target.AppendTab(tab); err != nil {
		return err
	}

	if err := target.SetActiveTab(tab.ID); err != nil {
		return err
	}
	return ws.SetActivePane(targetID)
}
