package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dancosta154/leadership-profile/internal/db/models"
	"github.com/dancosta154/leadership-profile/internal/store"
	"github.com/dancosta154/leadership-profile/internal/utils"
	"github.com/dancosta154/leadership-profile/pkg/metrics"
	"go.uber.org/zap"
)

const uploadTimestampLayout = "20060102_150405"

// CatalogService implements the document catalog: public listings and
// the admin upload/edit/delete flow, including blob management under
// the upload folder.
type CatalogService struct {
	store      store.DocumentStore
	uploadDir  string
	allowedExt map[string]bool
	logger     *zap.Logger
	metrics    *metrics.Collector

	// now is swappable so tests can pin the timestamp prefix.
	now func() time.Time
}

// DocumentUpload is the admin-supplied input for a new document.
type DocumentUpload struct {
	File        io.Reader
	Filename    string
	Title       string
	Description string
	Category    string
	IsFeatured  bool
}

func NewCatalogService(
	documents store.DocumentStore,
	uploadDir string,
	allowedExt map[string]bool,
	logger *zap.Logger,
	collector *metrics.Collector,
) *CatalogService {
	return &CatalogService{
		store:      documents,
		uploadDir:  uploadDir,
		allowedExt: allowedExt,
		logger:     logger.With(zap.String("service", "catalog")),
		metrics:    collector,
		now:        time.Now,
	}
}

func (cs *CatalogService) GetDocument(ctx context.Context, id uint) (*models.Document, error) {
	return cs.store.Get(ctx, id)
}

// ListDocuments returns the public listing for a category filter
// ("" or "all" means everything) plus the distinct categories for the
// filter control.
func (cs *CatalogService) ListDocuments(ctx context.Context, category string) ([]models.Document, []string, error) {
	docs, err := cs.store.List(ctx, category)
	if err != nil {
		return nil, nil, err
	}
	categories, err := cs.store.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return docs, categories, nil
}

// ListAdmin returns every document newest-first for the dashboard.
func (cs *CatalogService) ListAdmin(ctx context.Context) ([]models.Document, error) {
	return cs.store.ListAdmin(ctx)
}

// UploadDocument validates the upload, writes the blob under the
// upload folder with a timestamp-prefixed sanitized name, then
// creates the record. A blob written before a failing record create
// is left behind rather than rolled back.
func (cs *CatalogService) UploadDocument(ctx context.Context, upload DocumentUpload) (*models.Document, error) {
	start := time.Now()

	if upload.File == nil || upload.Filename == "" {
		return nil, validationError("No file selected")
	}
	if upload.Title == "" {
		return nil, validationError("Title is required")
	}
	if upload.Category == "" {
		return nil, validationError("Category is required")
	}

	ext := utils.FileExtension(upload.Filename)
	if ext == "" || !cs.allowedExt[ext] {
		return nil, validationError("Invalid file type")
	}

	sanitized := utils.SanitizeFilename(upload.Filename)
	if sanitized == "" {
		return nil, validationError("Invalid file name")
	}

	storedName := cs.now().UTC().Format(uploadTimestampLayout) + "_" + sanitized
	blobPath := filepath.Join(cs.uploadDir, storedName)

	size, err := cs.writeBlob(blobPath, upload.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	doc := &models.Document{
		Title:            upload.Title,
		Description:      upload.Description,
		Category:         upload.Category,
		FilePath:         blobPath,
		OriginalFilename: sanitized,
		UploadDate:       cs.now().UTC(),
		IsFeatured:       upload.IsFeatured,
	}
	if err := cs.store.Create(ctx, doc); err != nil {
		cs.logger.Error("record create failed after blob write",
			zap.String("blob", blobPath), zap.Error(err))
		return nil, err
	}

	cs.metrics.IncrementCounter("documents_uploaded", nil)
	cs.metrics.ObserveSize("document_size", float64(size))
	cs.metrics.ObserveLatency("document_upload", time.Since(start))

	cs.logger.Info("Document uploaded",
		zap.Uint("id", doc.ID),
		zap.String("title", doc.Title),
		zap.String("category", doc.Category),
		zap.Int64("bytes", size))

	return doc, nil
}

func (cs *CatalogService) writeBlob(path string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return size, nil
}

// UpdateDocument edits the four mutable fields. Identity, blob path,
// original filename and upload date never change.
func (cs *CatalogService) UpdateDocument(ctx context.Context, id uint, patch store.DocumentPatch) (*models.Document, error) {
	if patch.Title == "" {
		return nil, validationError("Title is required")
	}
	if patch.Category == "" {
		return nil, validationError("Category is required")
	}

	doc, err := cs.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	cs.logger.Info("Document updated", zap.Uint("id", id), zap.String("title", doc.Title))
	return doc, nil
}

// DeleteDocument removes the blob (ignoring an already-missing file)
// and then the record.
func (cs *CatalogService) DeleteDocument(ctx context.Context, id uint) (*models.Document, error) {
	doc, err := cs.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		// Treated as already gone; the record still goes away.
		cs.logger.Warn("blob removal failed",
			zap.Uint("id", id), zap.String("path", doc.FilePath), zap.Error(err))
	}

	if err := cs.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	cs.metrics.IncrementCounter("documents_deleted", nil)
	cs.logger.Info("Document deleted", zap.Uint("id", id), zap.String("title", doc.Title))
	return doc, nil
}
