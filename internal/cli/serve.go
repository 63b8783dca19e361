package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/docstore"
	"github.com/lexworks/lexspace/pkg/preview"
)

// serveCommand creates the serve command for the preview HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		dir     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered document previews over HTTP",
		Long: `Serve rendered document previews over HTTP.

Exposes the document store through a small read-only API:

  GET /healthz          liveness probe
  GET /documents        document listing (JSON, content omitted)
  GET /preview/{doc}    rendered HTML preview of a document

Previews share the snapshot cache with the interactive workspace, so a
redis-backed cache lets several instances serve the same snapshots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, dir, noCache)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "document directory (file backend; default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the snapshot cache")

	return cmd
}

// runServe starts the preview server and blocks until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, listen, dir string, noCache bool) error {
	if listen == "" {
		listen = c.Config.Serve.Listen
	}

	store, err := c.newStore(ctx, dir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close(ctx)

	snapshots, err := c.newCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("snapshot cache unavailable, continuing without one", "err", err)
		snapshots = cache.NewNullCache()
	}
	defer snapshots.Close()

	srv := &http.Server{
		Addr:              listen,
		Handler:           newServeHandler(store, preview.NewRenderer(snapshots)),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("preview server listening", "addr", listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		c.Logger.Info("shutting down preview server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServeHandler builds the preview server's route tree.
func newServeHandler(store docstore.Store, renderer *preview.Renderer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/documents", func(w http.ResponseWriter, req *http.Request) {
		docs, err := store.List(req.Context())
		if err != nil {
			http.Error(w, "list documents", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(docs)
	})

	r.Get("/preview/{doc}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "doc")
		doc, err := store.Get(req.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, docstore.ErrNotFound):
				http.NotFound(w, req)
			case errors.Is(err, docstore.ErrInvalidDocID):
				http.Error(w, "invalid document id", http.StatusBadRequest)
			default:
				http.Error(w, "load document", http.StatusInternalServerError)
			}
			return
		}

		page, err := renderer.HTML(req.Context(), doc.ID, []byte(doc.Content))
		if err != nil {
			http.Error(w, "render preview", http.StatusInternalServerError)
			return
		}
		loggerFromContext(req.Context()).Debug("preview served", "doc", doc.ID, "bytes", len(page))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	return r
}
