package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/preview"
)

// previewCommand creates the preview command for rendering document snapshots.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output  string
		dir     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Render a document preview to an HTML file",
		Long: `Render a lex document to a standalone HTML page.

The document is loaded from the configured document store and rendered
through the markdown pipeline. Rendered snapshots are cached under a
content-hashed key, so unchanged documents render instantly on repeat runs.

Use "-o -" to write the page to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], output, dir, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <document>.html, \"-\" for stdout)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "document directory (file backend; default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

// runPreview loads the document, renders it to HTML, and writes the page.
func (c *CLI) runPreview(ctx context.Context, arg, output, dir string, noCache bool) error {
	id := docIDFromArg(arg)

	store, err := c.newStore(ctx, dir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close(ctx)

	doc, err := store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load document %s: %w", id, err)
	}

	snapshots, err := c.newCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("snapshot cache unavailable, continuing without one", "err", err)
		snapshots = cache.NewNullCache()
	}
	defer snapshots.Close()

	prog := newProgress(c.Logger)
	page, err := preview.NewRenderer(snapshots).HTML(ctx, doc.ID, []byte(doc.Content))
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	prog.done("Rendered " + doc.ID)

	if output == "-" {
		_, err := os.Stdout.Write(page)
		return err
	}
	if output == "" {
		output = doc.ID + ".html"
	}
	if err := os.WriteFile(output, page, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Preview complete")
	printFile(output)
	return nil
}
