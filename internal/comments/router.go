package comments

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts comment routes on the API root group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/:id/comment", requireAuth, h.Create)
	rg.GET("/:id/comments", h.List)
	rg.DELETE("/comments/:id", requireAuth, h.Delete)
}
