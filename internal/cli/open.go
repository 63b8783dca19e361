package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/preview"
	"github.com/lexworks/lexspace/pkg/workspace"
)

// openCommand creates the open command for launching the interactive workspace.
func (c *CLI) openCommand() *cobra.Command {
	var (
		dir     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "open [document...]",
		Short: "Open documents in the interactive workspace",
		Long: `Open lex documents in the interactive multi-pane workspace.

Documents are loaded from the configured document store and opened as tabs
in a single pane. With no arguments, every document in the store is opened.

Inside the workspace, ctrl+p places a preview of the focused document: a
lone pane splits in two, while in a multi-pane layout the preview routes to
the next pane. Repeated previews of the same document collapse onto one tab.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOpen(cmd.Context(), args, dir, noCache)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "document directory (file backend; default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

// runOpen loads the requested documents, assembles the initial workspace,
// and runs the bubbletea shell until the user quits.
func (c *CLI) runOpen(ctx context.Context, args []string, dir string, noCache bool) error {
	prog := newProgress(c.Logger)

	store, err := c.newStore(ctx, dir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close(ctx)

	ids := make([]string, 0, len(args))
	for _, a := range args {
		ids = append(ids, docIDFromArg(a))
	}
	if len(ids) == 0 {
		docs, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
	}
	if len(ids) == 0 {
		printWarning("No documents found")
		return nil
	}

	factory := workspace.NewFactory(nil)
	norm := c.newNormalizer()

	ws := workspace.New()
	pane := factory.NewPane()
	contents := make(map[string]string, len(ids))
	for _, id := range ids {
		doc, err := store.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("load document %s: %w", id, err)
		}
		if err := pane.AppendTab(workspace.NewDocumentTab(doc.ID, doc.Name)); err != nil {
			return fmt.Errorf("open document %s: %w", id, err)
		}
		contents[doc.ID] = doc.Content
	}
	if err := ws.AddPane(pane); err != nil {
		return err
	}
	row := factory.NewRow(pane.ID())
	norm.WithRowDefaults(row)
	ws.AddRow(row)
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("assemble workspace: %w", err)
	}
	prog.done("Loaded " + formatDocCount(len(ids)))

	snapshots, err := c.newCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("snapshot cache unavailable, continuing without one", "err", err)
		snapshots = cache.NewNullCache()
	}
	defer snapshots.Close()

	model := NewWorkspaceModel(ws, workspace.NewPlacer(factory, norm), preview.NewRenderer(snapshots), contents, c.Logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run workspace: %w", err)
	}
	return nil
}

// docIDFromArg converts a command-line argument to a document ID. Both bare
// IDs ("notes") and file paths ("docs/notes.lex") are accepted.
func docIDFromArg(arg string) string {
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, ".lex")
}
