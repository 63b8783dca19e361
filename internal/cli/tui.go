package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lexworks/lexspace/pkg/observability"
	"github.com/lexworks/lexspace/pkg/preview"
	"github.com/lexworks/lexspace/pkg/workspace"
)

// minPaneCols is the narrowest a pane is drawn, regardless of its weight.
const minPaneCols = 12

// =============================================================================
// WorkspaceModel - Interactive multi-pane workspace
// =============================================================================

// WorkspaceModel is the bubbletea model for the multi-pane document workspace.
// Panes are laid out in weighted rows; each pane's share of the terminal width
// is its weight divided by the row's total weight.
type WorkspaceModel struct {
	ws       *workspace.Workspace
	placer   *workspace.Placer
	renderer *preview.Renderer
	logger   *log.Logger

	// contents maps document tab IDs to their source text. Preview tabs
	// carry their own rendered snapshot and are not looked up here.
	contents map[string]string

	width  int
	height int
	status string
}

// NewWorkspaceModel creates a workspace model over an assembled workspace.
// The contents map provides the source text for each document tab.
func NewWorkspaceModel(ws *workspace.Workspace, placer *workspace.Placer, renderer *preview.Renderer, contents map[string]string, logger *log.Logger) WorkspaceModel {
	if logger == nil {
		logger = log.Default()
	}
	return WorkspaceModel{
		ws:       ws,
		placer:   placer,
		renderer: renderer,
		logger:   logger,
		contents: contents,
		status:   "ready",
	}
}

func (m WorkspaceModel) Init() tea.Cmd {
	return nil
}

func (m WorkspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.focusNextPane(), nil
		case "right", "l":
			return m.cycleTab(1), nil
		case "left", "h":
			return m.cycleTab(-1), nil
		case "ctrl+p":
			return m.placePreview(), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// focusNextPane moves the active pane marker to the next pane in creation
// order, wrapping at the end.
func (m WorkspaceModel) focusNextPane() WorkspaceModel {
	next, err := m.ws.NextPane(m.ws.ActivePane())
	if err != nil {
		return m
	}
	if err := m.ws.SetActivePane(next); err == nil {
		m.status = "focus " + next
	}
	return m
}

// cycleTab activates the neighboring tab in the active pane. dir is +1 for
// the next tab and -1 for the previous, wrapping in both directions.
func (m WorkspaceModel) cycleTab(dir int) WorkspaceModel {
	pane, ok := m.ws.Pane(m.ws.ActivePane())
	if !ok || pane.TabCount() < 2 {
		return m
	}
	tabs := pane.Tabs()
	idx := 0
	for i, t := range tabs {
		if t.ID == pane.ActiveTab() {
			idx = i
			break
		}
	}
	next := tabs[(idx+dir+len(tabs))%len(tabs)]
	if err := pane.SetActiveTab(next.ID); err == nil {
		m.status = next.Name
	}
	return m
}

// placePreview renders a preview of the active document and places it in the
// workspace. With a single pane the workspace splits; with multiple panes the
// preview routes to the next pane, collapsing onto an existing preview of the
// same source. Failures leave the workspace untouched and only update the
// status line.
func (m WorkspaceModel) placePreview() WorkspaceModel {
	start := time.Now()

	pane, ok := m.ws.Pane(m.ws.ActivePane())
	if !ok {
		m.status = "no active pane"
		return m
	}
	tab, ok := pane.Tab(pane.ActiveTab())
	if !ok {
		m.status = "no active tab"
		return m
	}

	// Previewing a preview re-renders its source document.
	src := tab.ID
	if tab.Kind == workspace.TabPreview {
		src = tab.SourceID
	}
	content, ok := m.contents[src]
	if !ok {
		m.status = "no source for " + src
		return m
	}

	split := m.ws.PaneCount() == 1
	err := m.placer.PlacePreview(m.ws, m.renderer.Tab(src, content))
	observability.Layout().OnPlacePreview(context.Background(), src, split, time.Since(start), err)
	if err != nil {
		m.logger.Debug("preview placement skipped", "source", src, "err", err)
		m.status = "preview unavailable: " + err.Error()
		return m
	}

	m.logger.Debug("preview placed", "source", src, "split", split)
	m.status = "preview " + src
	return m
}

// =============================================================================
// View
// =============================================================================

func (m WorkspaceModel) View() string {
	start := time.Now()

	if m.width == 0 || m.height == 0 {
		return "loading workspace..."
	}
	rows := m.ws.Rows()
	if len(rows) == 0 {
		return StyleDim.Render("empty workspace") + "\n" + m.statusBar()
	}

	bodyHeight := m.height - 1 // reserve the status bar line
	rowHeight := bodyHeight / len(rows)
	if rowHeight < 3 {
		rowHeight = 3
	}

	var b strings.Builder
	for _, row := range rows {
		ids := row.PaneIDs()
		widths := paneWidths(row, m.width)
		boxes := make([]string, 0, len(ids))
		for i, id := range ids {
			pane, ok := m.ws.Pane(id)
			if !ok {
				continue
			}
			boxes = append(boxes, m.renderPane(pane, widths[i], rowHeight, id == m.ws.ActivePane()))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())

	observability.Layout().OnRender(context.Background(), m.ws.PaneCount(), m.ws.RowCount(), time.Since(start))
	return b.String()
}

// statusBar renders the bottom key hint and status line.
func (m WorkspaceModel) statusBar() string {
	hints := "tab: focus  ←/→: tabs  ctrl+p: preview  q: quit"
	bar := styleStatusBar.Render(hints)
	if m.status != "" {
		bar += StyleDim.Render("  │  ") + styleStatusBar.Render(m.status)
	}
	return bar
}

// renderPane draws one pane as a bordered box with a tab bar and the active
// tab's content.
func (m WorkspaceModel) renderPane(p *workspace.Pane, width, height int, focused bool) string {
	border := stylePaneBorder
	if focused {
		border = stylePaneBorderActive
	}

	innerWidth := width - 2
	innerHeight := height - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	var b strings.Builder
	b.WriteString(m.tabBar(p, innerWidth))
	b.WriteString("\n")
	b.WriteString(clipLines(m.tabContent(p), innerWidth, innerHeight-1))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Width(innerWidth).
		Height(innerHeight).
		Render(b.String())
}

// tabBar renders the pane's tab names with the active tab highlighted.
// Names that would overflow width are replaced by a trailing ellipsis; the
// width accounting happens before styling so ANSI sequences stay intact.
func (m WorkspaceModel) tabBar(p *workspace.Pane, width int) string {
	parts := make([]string, 0, p.TabCount())
	cols := 0
	for _, t := range p.Tabs() {
		if cols+len([]rune(t.Name))+3 > width {
			parts = append(parts, StyleDim.Render("…"))
			break
		}
		cols += len([]rune(t.Name)) + 3
		if t.ID == p.ActiveTab() {
			parts = append(parts, styleTabActive.Render(t.Name))
		} else {
			parts = append(parts, styleTabInactive.Render(t.Name))
		}
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// tabContent returns the text body of the pane's active tab.
func (m WorkspaceModel) tabContent(p *workspace.Pane) string {
	tab, ok := p.Tab(p.ActiveTab())
	if !ok {
		return "(no tabs)"
	}
	if tab.Kind == workspace.TabPreview {
		return tab.Content
	}
	if content, ok := m.contents[tab.ID]; ok {
		return content
	}
	return "(empty)"
}

// =============================================================================
// Layout Helpers
// =============================================================================

// paneWidths converts a row's relative weights into terminal columns.
// Each pane receives total * weight / totalWeight columns, floored at
// minPaneCols, with the last pane absorbing rounding remainder.
func paneWidths(row *workspace.Row, total int) []int {
	ids := row.PaneIDs()
	if len(ids) == 0 {
		return nil
	}

	sum := row.TotalWeight()
	widths := make([]int, len(ids))
	used := 0
	for i, id := range ids[:len(ids)-1] {
		w := int(float64(total) * row.Weight(id) / sum)
		if w < minPaneCols {
			w = minPaneCols
		}
		widths[i] = w
		used += w
	}

	last := total - used
	if last < minPaneCols {
		last = minPaneCols
	}
	widths[len(ids)-1] = last
	return widths
}

// clipLines trims s to at most h lines of at most w columns each.
func clipLines(s string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for i, line := range lines {
		if r := []rune(line); len(r) > w {
			lines[i] = string(r[:w])
		}
	}
	return strings.Join(lines, "\n")
}

// formatDocCount renders a human document count for status output.
func formatDocCount(n int) string {
	if n == 1 {
		return "1 document"
	}
	return fmt.Sprintf("%d documents", n)
}
