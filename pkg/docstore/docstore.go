// Package docstore provides access to the lex documents the workspace
// opens and previews.
//
// The layout engine never touches storage; it only consumes source
// document IDs and content. This package is the narrow file-layer
// collaborator that supplies them, with two backends:
//   - [FileStore]: documents as .lex files in a directory (CLI usage)
//   - [MongoStore]: a shared document library for the preview server
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a document does not exist in the store.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidDocID is returned when a document ID is empty or unsafe
	// for the backend (path traversal, separators).
	ErrInvalidDocID = errors.New("invalid document ID")
)

// Document is a lex source document. The ID doubles as the workspace tab
// identifier for the document's tab, and preview tabs derive their
// collapsed identifier from it. IDs never include the .lex extension; the
// file backend adds it on disk.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Content   string    `bson:"content" json:"content"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Store is the interface document backends implement.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, overwriting any previous version.
	Put(ctx context.Context, doc *Document) error

	// List returns all documents ordered by most recently updated.
	// Content may be omitted by backends for which listing bodies is
	// expensive; Get always returns it.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document. Deleting a missing document returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
