package files

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /files on the API group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	g := rg.Group("/files")
	g.POST("/upload-url", requireAuth, h.UploadURL)
	g.POST("/download-url", h.DownloadURL)
	g.DELETE("/*key", requireAuth, h.DeleteFile)
}
