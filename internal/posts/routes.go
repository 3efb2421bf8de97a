package posts

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the /blog routes. Reads are public; writes and the
// caller's own listing go through requireAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	blog := rg.Group("/blog")
	{
		blog.GET("", h.ListPosts)                           // GET /blog?page=1&pageSize=10
		blog.GET("/user/posts", requireAuth, h.ListMyPosts) // GET /blog/user/posts
		blog.GET("/:id", h.GetPost)                         // GET /blog/:id
		blog.POST("", requireAuth, h.CreatePost)            // POST /blog
		blog.PUT("/:id", requireAuth, h.UpdatePost)         // PUT /blog/:id
		blog.DELETE("/:id", requireAuth, h.DeletePost)      // DELETE /blog/:id
	}
}
