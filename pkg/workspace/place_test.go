package workspace

import (
	"errors"
	"slices"
	"testing"
)

// newTestWorkspace builds a workspace with n panes in a single row with
// default weights, each pane holding one document tab.
func newTestWorkspace(t *testing.T, f *Factory, norm Normalizer, n int) (*Workspace, []string) {
	t.Helper()
	ws := New()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := f.NewPane()
		if err := p.AppendTab(NewDocumentTab("doc-"+p.ID(), "doc")); err != nil {
			t.Fatalf("AppendTab() error = %v", err)
		}
		if err := ws.AddPane(p); err != nil {
			t.Fatalf("AddPane() error = %v", err)
		}
		ids = append(ids, p.ID())
	}
	row := f.NewRow(ids...)
	norm.WithRowDefaults(row)
	ws.AddRow(row)
	return ws, ids
}

func TestPlacePreview_SinglePane_Splits(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)

	ws := New()
	p1 := f.NewPane()
	_ = p1.AppendTab(NewDocumentTab("notes.lex", "notes.lex"))
	_ = ws.AddPane(p1)
	row := f.NewRow(p1.ID())
	_ = row.SetWeights(map[string]float64{p1.ID(): 1.0})
	ws.AddRow(row)

	tab := NewPreviewTab("notes.lex", "Preview: notes.lex", "rendered")
	if err := placer.PlacePreview(ws, tab); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	if got := ws.PaneCount(); got != 2 {
		t.Fatalf("PaneCount() = %d, want 2", got)
	}
	newID := ws.ActivePane()
	if newID == p1.ID() {
		t.Fatal("ActivePane() still the original pane, want the new preview pane")
	}

	// Insertion point is after the original pane.
	wantOrder := []string{p1.ID(), newID}
	if got := row.PaneIDs(); !slices.Equal(got, wantOrder) {
		t.Errorf("row.PaneIDs() = %v, want %v", got, wantOrder)
	}

	// Space held by the original pane is split evenly.
	if got := row.Weight(p1.ID()); got != 0.5 {
		t.Errorf("Weight(original) = %v, want 0.5", got)
	}
	if got := row.Weight(newID); got != 0.5 {
		t.Errorf("Weight(new) = %v, want 0.5", got)
	}

	newPane, ok := ws.Pane(newID)
	if !ok {
		t.Fatalf("Pane(%q) not found", newID)
	}
	if got := newPane.TabCount(); got != 1 {
		t.Errorf("new pane TabCount() = %d, want 1", got)
	}
	if got := newPane.ActiveTab(); got != tab.ID {
		t.Errorf("new pane ActiveTab() = %q, want %q", got, tab.ID)
	}

	if err := ws.Validate(); err != nil {
		t.Errorf("Validate() after split = %v", err)
	}
}

func TestPlacePreview_SinglePane_WeightFloor(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.3, 0.5)
	placer := NewPlacer(f, norm)

	ws := New()
	p1 := f.NewPane()
	_ = p1.AppendTab(NewDocumentTab("a.lex", "a.lex"))
	_ = ws.AddPane(p1)
	row := f.NewRow(p1.ID())
	_ = row.SetWeights(map[string]float64{p1.ID(): 0.4})
	ws.AddRow(row)

	if err := placer.PlacePreview(ws, NewPreviewTab("a.lex", "Preview", "x")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	// Halving 0.4 would give 0.2, below the 0.3 floor: both clamp up and
	// the row total grows. Weights are relative, so that is fine.
	for _, id := range row.PaneIDs() {
		if got := row.Weight(id); got < norm.Min() {
			t.Errorf("Weight(%q) = %v, below floor %v", id, got, norm.Min())
		}
	}
	if got := row.TotalWeight(); got != 0.6 {
		t.Errorf("TotalWeight() = %v, want 0.6", got)
	}
}

func TestPlacePreview_ZeroRowBootstrap(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)

	ws := New()
	p1 := f.NewPane()
	_ = p1.AppendTab(NewDocumentTab("a.lex", "a.lex"))
	_ = ws.AddPane(p1)
	// No rows yet: the workspace was bootstrapped with a bare pane.

	if err := placer.PlacePreview(ws, NewPreviewTab("a.lex", "Preview", "x")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	if got := ws.RowCount(); got != 1 {
		t.Fatalf("RowCount() = %d, want 1", got)
	}
	row := ws.Rows()[0]
	if got := row.PaneCount(); got != 2 {
		t.Errorf("row.PaneCount() = %d, want 2", got)
	}
	if got := row.PaneIDs()[0]; got != p1.ID() {
		t.Errorf("row.PaneIDs()[0] = %q, want original pane %q first", got, p1.ID())
	}
	if err := ws.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestPlacePreview_MultiPane_CyclicTarget(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)
	ws, ids := newTestWorkspace(t, f, norm, 3)
	a, b, c := ids[0], ids[1], ids[2]

	// Active B routes to C.
	if err := ws.SetActivePane(b); err != nil {
		t.Fatalf("SetActivePane() error = %v", err)
	}
	if err := placer.PlacePreview(ws, NewPreviewTab("x.lex", "Preview", "v1")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}
	if got := ws.ActivePane(); got != c {
		t.Errorf("ActivePane() = %q, want %q", got, c)
	}
	target, _ := ws.Pane(c)
	if !target.HasTab(PreviewTabID("x.lex")) {
		t.Errorf("pane %q missing preview tab", c)
	}

	// Active C wraps to A.
	if err := placer.PlacePreview(ws, NewPreviewTab("y.lex", "Preview", "v1")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}
	if got := ws.ActivePane(); got != a {
		t.Errorf("ActivePane() = %q, want %q (wrap to first)", got, a)
	}

	// No split happened in either placement.
	if got := ws.PaneCount(); got != 3 {
		t.Errorf("PaneCount() = %d, want 3", got)
	}
}

func TestPlacePreview_SingletonPerSource(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)
	ws, ids := newTestWorkspace(t, f, norm, 2)

	_ = ws.SetActivePane(ids[0])
	if err := placer.PlacePreview(ws, NewPreviewTab("s.lex", "Preview", "v1")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}
	// Second placement for the same source. Active is now the target pane;
	// move focus back so the same pane is targeted again.
	_ = ws.SetActivePane(ids[0])
	if err := placer.PlacePreview(ws, NewPreviewTab("s.lex", "Preview", "v2")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	previewID := PreviewTabID("s.lex")
	count := 0
	for _, id := range ws.PaneIDs() {
		p, _ := ws.Pane(id)
		for _, tab := range p.Tabs() {
			if tab.ID == previewID {
				count++
				if tab.Content != "v2" {
					t.Errorf("preview content = %q, want %q (updated in place)", tab.Content, "v2")
				}
			}
		}
	}
	if count != 1 {
		t.Errorf("preview tab count = %d, want 1", count)
	}
}

func TestPlacePreview_SecondPlacementKeepsPosition(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)
	ws, ids := newTestWorkspace(t, f, norm, 2)

	// Seed the target pane with a preview followed by another tab so a
	// naive remove-and-append would change order.
	target, _ := ws.Pane(ids[1])
	_ = target.AppendTab(NewPreviewTab("s.lex", "Preview", "v1"))
	_ = target.AppendTab(NewDocumentTab("later.lex", "later.lex"))

	_ = ws.SetActivePane(ids[0])
	if err := placer.PlacePreview(ws, NewPreviewTab("s.lex", "Preview", "v2")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	tabs := target.Tabs()
	if tabs[1].ID != PreviewTabID("s.lex") {
		t.Errorf("tabs[1].ID = %q, want preview kept at position 1", tabs[1].ID)
	}
	if tabs[1].Content != "v2" {
		t.Errorf("tabs[1].Content = %q, want %q", tabs[1].Content, "v2")
	}
	if got := target.ActiveTab(); got != PreviewTabID("s.lex") {
		t.Errorf("target ActiveTab() = %q, want the preview", got)
	}
}

func TestPlacePreview_CollapsesAcrossPanes(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)
	ws, ids := newTestWorkspace(t, f, norm, 3)
	a, b, c := ids[0], ids[1], ids[2]

	// First placement from A lands in B.
	_ = ws.SetActivePane(a)
	if err := placer.PlacePreview(ws, NewPreviewTab("s.lex", "Preview", "v1")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	// From C the cyclic target would be A, but the existing preview in B
	// wins: tab identifiers are unique across the workspace.
	_ = ws.SetActivePane(c)
	if err := placer.PlacePreview(ws, NewPreviewTab("s.lex", "Preview", "v2")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	if got := ws.ActivePane(); got != b {
		t.Errorf("ActivePane() = %q, want %q (pane holding the preview)", got, b)
	}
	count := 0
	for _, id := range ws.PaneIDs() {
		p, _ := ws.Pane(id)
		if p.HasTab(PreviewTabID("s.lex")) {
			count++
			tab, _ := p.Tab(PreviewTabID("s.lex"))
			if tab.Content != "v2" {
				t.Errorf("preview content = %q, want %q", tab.Content, "v2")
			}
		}
	}
	if count != 1 {
		t.Errorf("panes holding the preview = %d, want 1", count)
	}
}

func TestPlacePreview_Preconditions(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)

	t.Run("empty workspace", func(t *testing.T) {
		err := placer.PlacePreview(New(), NewPreviewTab("a.lex", "Preview", "x"))
		if !errors.Is(err, ErrNoPanes) {
			t.Errorf("PlacePreview() error = %v, want ErrNoPanes", err)
		}
	})

	t.Run("document tab rejected", func(t *testing.T) {
		ws, _ := newTestWorkspace(t, f, norm, 1)
		err := placer.PlacePreview(ws, NewDocumentTab("a.lex", "a.lex"))
		if !errors.Is(err, ErrNotPreview) {
			t.Errorf("PlacePreview() error = %v, want ErrNotPreview", err)
		}
	})

	t.Run("dangling active pane", func(t *testing.T) {
		ws, _ := newTestWorkspace(t, f, norm, 1)
		ws.active = "ghost"
		err := placer.PlacePreview(ws, NewPreviewTab("a.lex", "Preview", "x"))
		if !errors.Is(err, ErrUnknownActivePane) {
			t.Errorf("PlacePreview() error = %v, want ErrUnknownActivePane", err)
		}
	})
}

// TestPlacePreview_NotesScenario is the end-to-end scenario from the
// product brief: one pane P1 (weight 1.0) in a single row, preview
// requested for notes.lex.
func TestPlacePreview_NotesScenario(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)

	ws := New()
	p1 := f.NewPane()
	_ = p1.AppendTab(NewDocumentTab("notes.lex", "notes.lex"))
	_ = ws.AddPane(p1)
	r1 := f.NewRow(p1.ID())
	_ = r1.SetWeights(map[string]float64{p1.ID(): 1.0})
	ws.AddRow(r1)

	if err := placer.PlacePreview(ws, NewPreviewTab("notes.lex", "Preview: notes.lex", "<h1>notes</h1>")); err != nil {
		t.Fatalf("PlacePreview() error = %v", err)
	}

	p2ID := ws.ActivePane()
	p2, _ := ws.Pane(p2ID)
	if got := r1.Weight(p1.ID()); got != 0.5 {
		t.Errorf("Weight(P1) = %v, want 0.5", got)
	}
	if got := r1.Weight(p2ID); got != 0.5 {
		t.Errorf("Weight(P2) = %v, want 0.5", got)
	}
	tabs := p2.Tabs()
	if len(tabs) != 1 || tabs[0].ID != "preview:notes.lex" {
		t.Errorf("P2 tabs = %v, want single preview:notes.lex", tabs)
	}
}

// TestPlacePreview_RowInvariantAcrossSequence hammers the placement
// operation through a mixed sequence and checks the workspace validates
// after every step.
func TestPlacePreview_RowInvariantAcrossSequence(t *testing.T) {
	f := newTestFactory()
	norm := NewNormalizer(0.1, 0.5)
	placer := NewPlacer(f, norm)

	ws := New()
	p1 := f.NewPane()
	_ = p1.AppendTab(NewDocumentTab("a.lex", "a.lex"))
	_ = ws.AddPane(p1)

	sources := []string{"a.lex", "b.lex", "a.lex", "c.lex", "b.lex", "d.lex"}
	for i, src := range sources {
		if err := placer.PlacePreview(ws, NewPreviewTab(src, "Preview", "v")); err != nil {
			t.Fatalf("step %d: PlacePreview(%q) error = %v", i, src, err)
		}
		if err := ws.Validate(); err != nil {
			t.Fatalf("step %d: Validate() = %v", i, err)
		}
		for _, row := range ws.Rows() {
			for _, id := range row.PaneIDs() {
				if w := row.Weight(id); w < norm.Min() {
					t.Fatalf("step %d: Weight(%q) = %v below floor %v", i, id, w, norm.Min())
				}
			}
		}
	}
}
