package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dancosta154/leadership-profile/internal/api/middleware"
	"github.com/dancosta154/leadership-profile/internal/services"
	"github.com/dancosta154/leadership-profile/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler covers the password-gated side: session auth, the
// dashboard and the upload/edit/delete mutations.
type AdminHandler struct {
	catalog      *services.CatalogService
	sessions     *services.SessionService
	logger       *zap.Logger
	cookieMaxAge int
	maxUpload    int64
}

func NewAdminHandler(
	catalog *services.CatalogService,
	sessions *services.SessionService,
	logger *zap.Logger,
	cookieMaxAge int,
	maxUpload int64,
) *AdminHandler {
	return &AdminHandler{
		catalog:      catalog,
		sessions:     sessions,
		logger:       logger.With(zap.String("handler", "admin")),
		cookieMaxAge: cookieMaxAge,
		maxUpload:    maxUpload,
	}
}

func (h *AdminHandler) ShowLoginPage(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && h.sessions.Validate(token) {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}

	message, category := takeFlash(c)
	c.HTML(http.StatusOK, "admin/login.html", gin.H{
		"Title":         "Admin Login",
		"Message":       message,
		"FlashCategory": category,
	})
}

func (h *AdminHandler) Login(c *gin.Context) {
	password := c.PostForm("password")

	token, err := h.sessions.Login(password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		c.HTML(http.StatusUnauthorized, "admin/login.html", gin.H{
			"Title":         "Admin Login",
			"Message":       "Invalid password",
			"FlashCategory": "error",
		})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.cookieMaxAge, "/", "", false, true)
	setFlash(c, "success", "Successfully logged in!")
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.sessions.Logout(token)
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	setFlash(c, "success", "Logged out successfully")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AdminHandler) ShowDashboard(c *gin.Context) {
	docs, err := h.catalog.ListAdmin(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard listing failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "root/error.html", gin.H{
			"Title":   "Error",
			"Message": "Error retrieving documents",
		})
		return
	}

	message, category := takeFlash(c)
	c.HTML(http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":         "Admin Dashboard",
		"Documents":     docs,
		"Message":       message,
		"FlashCategory": category,
	})
}

func (h *AdminHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		h.redirectWithFlash(c, "error", "No file selected")
		return
	}
	if fileHeader.Size > h.maxUpload {
		h.redirectWithFlash(c, "error", "File is too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		h.redirectWithFlash(c, "error", "Could not read uploaded file")
		return
	}
	defer f.Close()

	doc, err := h.catalog.UploadDocument(c.Request.Context(), services.DocumentUpload{
		File:        f,
		Filename:    fileHeader.Filename,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		IsFeatured:  c.PostForm("is_featured") == "on",
	})
	if err != nil {
		if verr, ok := services.AsValidation(err); ok {
			h.redirectWithFlash(c, "error", verr.Reason)
			return
		}
		h.logger.Error("upload failed", zap.Error(err))
		h.redirectWithFlash(c, "error", "Could not save document")
		return
	}

	h.redirectWithFlash(c, "success", fmt.Sprintf("Document %q uploaded successfully!", doc.Title))
}

func (h *AdminHandler) EditDocument(c *gin.Context) {
	id, ok := h.docID(c)
	if !ok {
		return
	}

	doc, err := h.catalog.UpdateDocument(c.Request.Context(), id, store.DocumentPatch{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		IsFeatured:  c.PostForm("is_featured") == "on",
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(c)
			return
		}
		if verr, ok := services.AsValidation(err); ok {
			h.redirectWithFlash(c, "error", verr.Reason)
			return
		}
		h.logger.Error("edit failed", zap.Uint("id", id), zap.Error(err))
		h.redirectWithFlash(c, "error", "Could not update document")
		return
	}

	h.redirectWithFlash(c, "success", fmt.Sprintf("Document %q updated successfully!", doc.Title))
}

func (h *AdminHandler) DeleteDocument(c *gin.Context) {
	id, ok := h.docID(c)
	if !ok {
		return
	}

	doc, err := h.catalog.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logger.Error("delete failed", zap.Uint("id", id), zap.Error(err))
		h.redirectWithFlash(c, "error", "Could not delete document")
		return
	}

	h.redirectWithFlash(c, "success", fmt.Sprintf("Document %q deleted successfully!", doc.Title))
}

func (h *AdminHandler) docID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.notFound(c)
		return 0, false
	}
	return uint(id), true
}

func (h *AdminHandler) redirectWithFlash(c *gin.Context, category, message string) {
	setFlash(c, category, message)
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *AdminHandler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "root/error.html", gin.H{
		"Title":   "Not Found",
		"Message": "Document not found",
	})
}
