package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dancosta154/leadership-profile/internal/db/models"
	"github.com/dancosta154/leadership-profile/internal/services"
	"github.com/dancosta154/leadership-profile/internal/store"
	"github.com/dancosta154/leadership-profile/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler serves the public side of the catalog: listings,
// detail pages and the two blob streams.
type DocumentHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
	metrics *metrics.Collector
}

func NewDocumentHandler(catalog *services.CatalogService, logger *zap.Logger, collector *metrics.Collector) *DocumentHandler {
	return &DocumentHandler{
		catalog: catalog,
		logger:  logger.With(zap.String("handler", "document")),
		metrics: collector,
	}
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	category := c.DefaultQuery("category", "all")

	docs, categories, err := h.catalog.ListDocuments(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("list documents failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "root/error.html", gin.H{
			"Title":   "Error",
			"Message": "Error retrieving documents",
		})
		return
	}

	message, flashCategory := takeFlash(c)
	c.HTML(http.StatusOK, "root/documents.html", gin.H{
		"Title":           "Documents",
		"Documents":       docs,
		"Categories":      categories,
		"CurrentCategory": category,
		"Message":         message,
		"FlashCategory":   flashCategory,
	})
}

func (h *DocumentHandler) ViewDocument(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "root/view_document.html", gin.H{
		"Title":    doc.Title,
		"Document": doc,
	})
}

// ServeDocument streams the blob for in-browser viewing.
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}

	if _, err := os.Stat(doc.FilePath); err != nil {
		h.notFound(c)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filepath.Base(doc.FilePath)+`"`)
	c.File(doc.FilePath)
}

// DownloadDocument streams the blob as an attachment named after the
// originally uploaded filename, not the on-disk one.
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	start := time.Now()

	doc, ok := h.lookup(c)
	if !ok {
		return
	}

	if _, err := os.Stat(doc.FilePath); err != nil {
		h.notFound(c)
		return
	}

	c.FileAttachment(doc.FilePath, doc.OriginalFilename)

	h.metrics.IncrementCounter("documents_downloaded", nil)
	h.metrics.ObserveLatency("document_download", time.Since(start))
}

func (h *DocumentHandler) lookup(c *gin.Context) (*models.Document, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.notFound(c)
		return nil, false
	}

	found, err := h.catalog.GetDocument(c.Request.Context(), uint(id))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("load document failed", zap.Uint64("id", id), zap.Error(err))
		}
		h.notFound(c)
		return nil, false
	}
	return found, true
}

func (h *DocumentHandler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "root/error.html", gin.H{
		"Title":   "Not Found",
		"Message": "Document not found",
	})
}
