package store

import (
	"context"
	"errors"

	"github.com/dancosta154/leadership-profile/internal/db/models"
)

// ErrNotFound is returned when no document exists with the given id.
var ErrNotFound = errors.New("document not found")

// DocumentPatch carries the admin-editable fields. Identity, blob
// location and upload date are immutable once created.
type DocumentPatch struct {
	Title       string
	Description string
	Category    string
	IsFeatured  bool
}

// DocumentStore is the persistence contract for the catalog. The
// category argument of List is an equality filter; empty or "all"
// returns everything.
type DocumentStore interface {
	// Create assigns the id and persists the document.
	Create(ctx context.Context, doc *models.Document) error
	// Get retrieves a document by id.
	Get(ctx context.Context, id uint) (*models.Document, error)
	// List returns documents in public order: featured first, then
	// order index descending, then newest upload first.
	List(ctx context.Context, category string) ([]models.Document, error)
	// ListAdmin returns all documents newest-first, ignoring feature
	// and order weighting.
	ListAdmin(ctx context.Context) ([]models.Document, error)
	// Categories returns the distinct category values in use.
	Categories(ctx context.Context) ([]string, error)
	// Update applies the patch to the four mutable fields.
	Update(ctx context.Context, id uint, patch DocumentPatch) (*models.Document, error)
	// Delete removes the record. The caller owns blob removal.
	Delete(ctx context.Context, id uint) error
}
