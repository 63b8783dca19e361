package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/lexworks/lexspace/pkg/errors"
)

// lexExt is the file extension for lex documents.
const lexExt = ".lex"

// FileStore serves documents from a directory of .lex files. The document
// ID is the file name without the .lex extension. Writes go straight to
// disk; there is no index to keep in sync.
type FileStore struct {
	dir string
}

// NewFileStore creates a store over dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// checkID rejects IDs that would escape the store directory. Both the
// sentinel and the underlying validation error are reachable via errors.Is.
func checkID(id string) error {
	if err := apperrors.ValidateDocumentID(id); err != nil {
		return errors.Join(ErrInvalidDocID, err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, id+lexExt)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{
		ID:        id,
		Name:      id + lexExt,
		Content:   string(content),
		UpdatedAt: info.ModTime(),
	}, nil
}

// Put writes a document to disk as <id>.lex.
func (s *FileStore) Put(ctx context.Context, doc *Document) error {
	if err := checkID(doc.ID); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, doc.ID+lexExt), []byte(doc.Content), 0644)
}

// List returns the store's .lex documents, most recently modified first.
// Content is omitted; use Get to load a document body.
func (s *FileStore) List(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), lexExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, Document{
			ID:        strings.TrimSuffix(e.Name(), lexExt),
			Name:      e.Name(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UpdatedAt.After(docs[j].UpdatedAt) })
	return docs, nil
}

// Delete removes a document file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, id+lexExt))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
