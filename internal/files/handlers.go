package files

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/authz"
	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for media files
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UploadURL handles POST /files/upload-url
func (h *Handler) UploadURL(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.UploadURL(c.Request.Context(), userID, req)
	if err != nil {
		h.fail(c, "Failed to generate upload URL", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DownloadURL handles POST /files/download-url
func (h *Handler) DownloadURL(c *gin.Context) {
	var req DownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.DownloadURL(c.Request.Context(), req.FileKey)
	if err != nil {
		h.fail(c, "Failed to generate download URL", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteFile handles DELETE /files/*key
func (h *Handler) DeleteFile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if err := h.service.Delete(c.Request.Context(), key, userID); err != nil {
		h.fail(c, "Failed to delete file", err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Message: "File deleted successfully", FileKey: key})
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, ErrDisabled):
		response.Error(c, http.StatusServiceUnavailable, "File storage is not available")
	case errors.Is(err, ErrInvalidFilename), errors.Is(err, ErrInvalidContentType), errors.Is(err, ErrInvalidKey):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		response.Error(c, http.StatusForbidden, "You can only delete your own files")
	default:
		response.Internal(c, msg, err)
	}
}
