package workspace_test

import (
	"fmt"

	"github.com/lexworks/lexspace/pkg/workspace"
)

func ExamplePlacer_PlacePreview_split() {
	// One pane holding notes.lex; requesting a preview splits the row.
	f := workspace.NewFactory(workspace.NewCounterSource())
	norm := workspace.NewNormalizer(0.1, 0.5)
	placer := workspace.NewPlacer(f, norm)

	ws := workspace.New()
	pane := f.NewPane()
	_ = pane.AppendTab(workspace.NewDocumentTab("notes.lex", "notes.lex"))
	_ = ws.AddPane(pane)
	row := f.NewRow(pane.ID())
	_ = row.SetWeights(map[string]float64{pane.ID(): 1.0})
	ws.AddRow(row)

	_ = placer.PlacePreview(ws, workspace.NewPreviewTab("notes.lex", "Preview: notes.lex", "..."))

	fmt.Println("panes:", ws.PaneCount())
	fmt.Println("row:", row.PaneIDs())
	fmt.Println("weights:", row.Weight("pane-1"), row.Weight("pane-2"))
	fmt.Println("active:", ws.ActivePane())
	// Output:
	// panes: 2
	// row: [pane-1 pane-2]
	// weights: 0.5 0.5
	// active: pane-2
}

func ExamplePlacer_PlacePreview_cyclic() {
	// With several panes the preview lands in the pane after the active
	// one, wrapping around at the end.
	f := workspace.NewFactory(workspace.NewCounterSource())
	norm := workspace.NewNormalizer(0.1, 0.5)
	placer := workspace.NewPlacer(f, norm)

	ws := workspace.New()
	var ids []string
	for i := 0; i < 3; i++ {
		p := f.NewPane()
		_ = p.AppendTab(workspace.NewDocumentTab(fmt.Sprintf("doc%d.lex", i), "doc"))
		_ = ws.AddPane(p)
		ids = append(ids, p.ID())
	}
	row := f.NewRow(ids...)
	norm.WithRowDefaults(row)
	ws.AddRow(row)

	_ = ws.SetActivePane("pane-3")
	_ = placer.PlacePreview(ws, workspace.NewPreviewTab("doc0.lex", "Preview", "..."))

	fmt.Println("active:", ws.ActivePane())
	// Output:
	// active: pane-1
}

func ExamplePreviewTabID() {
	fmt.Println(workspace.PreviewTabID("notes.lex"))
	// Output:
	// preview:notes.lex
}
