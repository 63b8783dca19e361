package preview

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/workspace"
)

func TestRenderer_Tab(t *testing.T) {
	r := NewRenderer(nil)

	tab := r.Tab("notes.lex", "# Notes\n")

	if tab.Kind != workspace.TabPreview {
		t.Errorf("tab.Kind = %v, want TabPreview", tab.Kind)
	}
	if tab.ID != "preview:notes.lex" {
		t.Errorf("tab.ID = %q, want %q", tab.ID, "preview:notes.lex")
	}
	if tab.SourceID != "notes.lex" {
		t.Errorf("tab.SourceID = %q, want %q", tab.SourceID, "notes.lex")
	}
	if tab.Content != "# Notes\n" {
		t.Errorf("tab.Content = %q, want snapshot of the source", tab.Content)
	}
}

func TestRenderer_Tab_CollapsesPerSource(t *testing.T) {
	r := NewRenderer(nil)

	a := r.Tab("notes.lex", "v1")
	b := r.Tab("notes.lex", "v2")

	if a.ID != b.ID {
		t.Errorf("tab IDs differ for same source: %q vs %q", a.ID, b.ID)
	}
}

func TestRenderer_HTML(t *testing.T) {
	ctx := context.Background()
	r := NewRenderer(nil)

	page, err := r.HTML(ctx, "notes.lex", []byte("# Notes\n\nplain *emphasis*\n"))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<h1", "Notes", "<em>emphasis</em>", "<title>notes.lex</title>"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("HTML() missing %q in output", want)
		}
	}
}

func TestRenderer_HTML_CachesSnapshot(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRenderer(c)

	content := []byte("# Cached\n")
	first, err := r.HTML(ctx, "a.lex", content)
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	key := cache.SnapshotKey("a.lex", "html", content)
	stored, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("cache.Get = _, %v, %v, want hit", hit, err)
	}
	if !bytes.Equal(stored, first) {
		t.Error("cached snapshot differs from rendered output")
	}

	second, err := r.HTML(ctx, "a.lex", content)
	if err != nil {
		t.Fatalf("HTML() second error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("second render differs from first")
	}
}
