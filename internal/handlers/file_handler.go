package handlers

import (
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"ecodispose_backend/internal/storage"
	"ecodispose_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored upload files by their public reference path.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storageInstance storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storageInstance,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*filepath", h.ServeFile)
	}
}

// ServeFile streams a stored file. References are flat names, so any
// path traversal is stripped before the storage lookup.
func (h *FileHandler) ServeFile(c *gin.Context) {
	name := path.Base(strings.TrimPrefix(c.Param("filepath"), "/"))
	if name == "" || name == "." {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), name)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Disposition", "inline")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; just record the failure.
		c.Error(err)
	}
}
