package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/lexworks/lexspace/pkg/errors"
)

func TestFileStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	doc := &Document{ID: "notes", Name: "notes.lex", Content: "# Notes\n"}
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Content != "# Notes\n" {
		t.Errorf("Get Content = %q, want %q", got.Content, "# Notes\n")
	}
	if got.ID != "notes" {
		t.Errorf("Get ID = %q, want %q", got.ID, "notes")
	}
	if got.Name != "notes.lex" {
		t.Errorf("Get Name = %q, want %q", got.Name, "notes.lex")
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if _, err := s.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_InvalidID(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	for _, id := range []string{"", "../escape", "dir/doc", "back\\slash"} {
		if _, err := s.Get(ctx, id); !errors.Is(err, ErrInvalidDocID) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidDocID", id, err)
		}
		if err := s.Put(ctx, &Document{ID: id}); !errors.Is(err, ErrInvalidDocID) {
			t.Errorf("Put(%q) error = %v, want ErrInvalidDocID", id, err)
		}
	}

	// The validation detail stays reachable alongside the sentinel.
	var appErr *apperrors.Error
	if _, err := s.Get(ctx, "../escape"); !errors.As(err, &appErr) {
		t.Errorf("Get(../escape) error = %v, want an *apperrors.Error in the chain", err)
	}
}

func TestFileStore_List(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	_ = s.Put(ctx, &Document{ID: "a", Content: "a"})
	_ = s.Put(ctx, &Document{ID: "b", Content: "b"})
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not lex"), 0644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List returned %d documents, want 2 (.lex only)", len(docs))
	}
	for _, d := range docs {
		if d.ID != "a" && d.ID != "b" {
			t.Errorf("List ID = %q, want a or b (extension stripped)", d.ID)
		}
		if d.Content != "" {
			t.Errorf("List content for %q = %q, want omitted", d.ID, d.Content)
		}
		if d.UpdatedAt.IsZero() || time.Since(d.UpdatedAt) > time.Minute {
			t.Errorf("List UpdatedAt for %q = %v, want recent", d.ID, d.UpdatedAt)
		}
	}
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	_ = s.Put(ctx, &Document{ID: "a", Content: "a"})
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(absent) error = %v, want ErrNotFound", err)
	}
}
