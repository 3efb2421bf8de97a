package likes

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts like routes on the API root group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/:id/toggle-like", requireAuth, h.Toggle)
	rg.GET("/:id/likes", h.List)
}
