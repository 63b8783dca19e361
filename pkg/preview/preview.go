// Package preview turns lex source documents into preview artifacts: the
// workspace tabs the layout engine places, and rendered HTML for the
// preview server.
//
// Lex markup is CommonMark-compatible, so HTML rendering goes through
// goldmark with the GFM extensions. Rendering is pure in the document
// content, which makes snapshots cacheable under content-hashed keys; the
// renderer consults a [cache.Cache] before invoking goldmark.
//
// Terminal previews are read-only views of the source text itself; only
// the HTML form needs a rendering pass.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/observability"
	"github.com/lexworks/lexspace/pkg/workspace"
)

// SnapshotTTL bounds how long rendered snapshots stay cached. Keys embed
// the content hash, so stale entries are unreachable anyway; the TTL just
// keeps dead entries from accumulating.
const SnapshotTTL = 7 * 24 * time.Hour

// Renderer builds preview artifacts from source documents.
type Renderer struct {
	cache cache.Cache
	md    goldmark.Markdown
}

// NewRenderer creates a renderer backed by the given cache. A nil cache
// disables caching.
func NewRenderer(c cache.Cache) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Renderer{
		cache: c,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Tab builds the workspace preview tab for a source document. The tab
// carries the collapsed preview identifier and the content snapshot the
// terminal shell displays.
func (r *Renderer) Tab(sourceID, content string) workspace.Tab {
	return workspace.NewPreviewTab(sourceID, "Preview: "+sourceID, content)
}

// HTML renders document content to a standalone HTML page, consulting the
// snapshot cache first. Cache failures are ignored: a broken cache
// degrades to rendering every time, never to a failed preview.
func (r *Renderer) HTML(ctx context.Context, sourceID string, content []byte) ([]byte, error) {
	key := cache.SnapshotKey(sourceID, "html", content)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, key)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	var body bytes.Buffer
	if err := r.md.Convert(content, &body); err != nil {
		return nil, fmt.Errorf("render %s: %w", sourceID, err)
	}
	page := wrapPage(sourceID, body.Bytes())

	if err := r.cache.Set(ctx, key, page, SnapshotTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(page))
	}
	return page, nil
}

// wrapPage wraps a rendered body into a minimal standalone page.
func wrapPage(title string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	buf.Write(body)
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}
