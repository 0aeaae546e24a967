package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dancosta154/leadership-profile/internal/store"
	"github.com/dancosta154/leadership-profile/internal/tester"
	"github.com/dancosta154/leadership-profile/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testAllowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true,
	"txt": true, "png": true, "jpg": true, "jpeg": true,
}

func newTestCatalog(t *testing.T) (*CatalogService, store.DocumentStore, string) {
	t.Helper()

	documents := store.NewGormStore(tester.TestDB(t))
	uploadDir := tester.UploadDir(t)
	catalog := NewCatalogService(documents, uploadDir, testAllowedExtensions, zap.NewNop(), metrics.NewCollector())
	return catalog, documents, uploadDir
}

func TestCatalogService_UploadDocument(t *testing.T) {
	catalog, documents, uploadDir := newTestCatalog(t)
	catalog.now = func() time.Time {
		return time.Date(2024, 5, 17, 14, 30, 45, 0, time.UTC)
	}

	content := []byte("%PDF-1.4 fake resume bytes")
	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:        bytes.NewReader(content),
		Filename:    "resume.pdf",
		Title:       "Resume",
		Description: "Latest version",
		Category:    "leadership",
		IsFeatured:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", doc.OriginalFilename)
	assert.Equal(t, filepath.Join(uploadDir, "20240517_143045_resume.pdf"), doc.FilePath)
	assert.True(t, doc.IsFeatured)
	assert.Equal(t, time.Date(2024, 5, 17, 14, 30, 45, 0, time.UTC), doc.UploadDate)

	stored, err := os.ReadFile(doc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	got, err := documents.Get(context.TODO(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resume", got.Title)
	assert.Equal(t, "pdf", got.FileExtension())
}

func TestCatalogService_UploadSanitizesFilename(t *testing.T) {
	catalog, _, _ := newTestCatalog(t)

	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:     strings.NewReader("content"),
		Filename: "../my leadership notes.txt",
		Title:    "Notes",
		Category: "leadership",
	})
	require.NoError(t, err)

	assert.Equal(t, "my_leadership_notes.txt", doc.OriginalFilename)
	assert.NotContains(t, doc.FilePath, "..")
	_, err = os.Stat(doc.FilePath)
	assert.NoError(t, err)
}

func TestCatalogService_UploadValidation(t *testing.T) {
	tests := []struct {
		name   string
		upload DocumentUpload
		reason string
	}{
		{
			name: "disallowed extension",
			upload: DocumentUpload{
				File: strings.NewReader("x"), Filename: "resume.exe",
				Title: "Resume", Category: "leadership",
			},
			reason: "Invalid file type",
		},
		{
			name: "extension check is case-insensitive only for allowed types",
			upload: DocumentUpload{
				File: strings.NewReader("x"), Filename: "script.SH",
				Title: "Script", Category: "tools",
			},
			reason: "Invalid file type",
		},
		{
			name: "no extension",
			upload: DocumentUpload{
				File: strings.NewReader("x"), Filename: "README",
				Title: "Readme", Category: "docs",
			},
			reason: "Invalid file type",
		},
		{
			name:   "missing file",
			upload: DocumentUpload{Title: "Resume", Category: "leadership"},
			reason: "No file selected",
		},
		{
			name: "empty filename",
			upload: DocumentUpload{
				File: strings.NewReader("x"),
				Title: "Resume", Category: "leadership",
			},
			reason: "No file selected",
		},
		{
			name: "missing title",
			upload: DocumentUpload{
				File: strings.NewReader("x"), Filename: "resume.pdf",
				Category: "leadership",
			},
			reason: "Title is required",
		},
		{
			name: "missing category",
			upload: DocumentUpload{
				File: strings.NewReader("x"), Filename: "resume.pdf",
				Title: "Resume",
			},
			reason: "Category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, documents, uploadDir := newTestCatalog(t)

			_, err := catalog.UploadDocument(context.TODO(), tt.upload)
			require.Error(t, err)

			verr, ok := AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Equal(t, tt.reason, verr.Reason)

			// A rejected upload must leave no record and no blob.
			docs, listErr := documents.ListAdmin(context.TODO())
			require.NoError(t, listErr)
			assert.Empty(t, docs)

			entries, readErr := os.ReadDir(uploadDir)
			require.NoError(t, readErr)
			assert.Empty(t, entries)
		})
	}
}

func TestCatalogService_UploadAcceptsUppercaseExtension(t *testing.T) {
	catalog, _, _ := newTestCatalog(t)

	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:     strings.NewReader("x"),
		Filename: "Headshot.JPG",
		Title:    "Headshot",
		Category: "about",
	})
	require.NoError(t, err)
	assert.Equal(t, "jpg", doc.FileExtension())
}

func TestCatalogService_DeleteRemovesRecordAndBlob(t *testing.T) {
	catalog, documents, _ := newTestCatalog(t)

	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:     strings.NewReader("bytes"),
		Filename: "notes.txt",
		Title:    "Notes",
		Category: "leadership",
	})
	require.NoError(t, err)

	_, err = catalog.DeleteDocument(context.TODO(), doc.ID)
	require.NoError(t, err)

	_, err = documents.Get(context.TODO(), doc.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = os.Stat(doc.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestCatalogService_DeleteSurvivesMissingBlob(t *testing.T) {
	catalog, documents, _ := newTestCatalog(t)

	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:     strings.NewReader("bytes"),
		Filename: "notes.txt",
		Title:    "Notes",
		Category: "leadership",
	})
	require.NoError(t, err)

	require.NoError(t, os.Remove(doc.FilePath))

	_, err = catalog.DeleteDocument(context.TODO(), doc.ID)
	require.NoError(t, err)

	_, err = documents.Get(context.TODO(), doc.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalogService_DeleteUnknownID(t *testing.T) {
	catalog, _, _ := newTestCatalog(t)

	_, err := catalog.DeleteDocument(context.TODO(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalogService_UpdateDocument(t *testing.T) {
	catalog, _, _ := newTestCatalog(t)

	doc, err := catalog.UploadDocument(context.TODO(), DocumentUpload{
		File:     strings.NewReader("bytes"),
		Filename: "talk.pdf",
		Title:    "Talk",
		Category: "speaking",
	})
	require.NoError(t, err)

	updated, err := catalog.UpdateDocument(context.TODO(), doc.ID, store.DocumentPatch{
		Title:       "Conference Talk",
		Description: "Slides from the keynote",
		Category:    "speaking",
		IsFeatured:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Conference Talk", updated.Title)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, doc.FilePath, updated.FilePath)
	assert.Equal(t, doc.OriginalFilename, updated.OriginalFilename)
	assert.True(t, updated.UploadDate.Equal(doc.UploadDate))

	_, err = catalog.UpdateDocument(context.TODO(), doc.ID, store.DocumentPatch{Category: "speaking"})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Title is required", verr.Reason)
}

func TestCatalogService_ListDocuments(t *testing.T) {
	catalog, _, _ := newTestCatalog(t)

	for _, upload := range []DocumentUpload{
		{File: strings.NewReader("a"), Filename: "a.pdf", Title: "A", Category: "leadership"},
		{File: strings.NewReader("b"), Filename: "b.pdf", Title: "B", Category: "culture", IsFeatured: true},
	} {
		_, err := catalog.UploadDocument(context.TODO(), upload)
		require.NoError(t, err)
	}

	docs, categories, err := catalog.ListDocuments(context.TODO(), "all")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "B", docs[0].Title)
	assert.ElementsMatch(t, []string{"leadership", "culture"}, categories)

	filtered, _, err := catalog.ListDocuments(context.TODO(), "culture")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B", filtered[0].Title)
}
