package posts

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/authz"
	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for posts
type Handler struct {
	service *Service
}

// NewHandler creates a new posts handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePost handles POST /blog
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			response.Error(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		response.Internal(c, "Failed to create post", err)
		return
	}

	c.JSON(http.StatusCreated, CreatePostResponse{ID: post.ID, Post: post})
}

// GetPost handles GET /blog/:id
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "Post not found")
			return
		}
		response.Internal(c, "Failed to retrieve post", err)
		return
	}

	c.JSON(http.StatusOK, PostResponse{Post: post})
}

// ListPosts handles GET /blog?page=1&pageSize=10
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := ParsePagination(c.Query("page"), c.Query("pageSize"))

	resp, err := h.service.ListPosts(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Internal(c, "Failed to retrieve posts", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMyPosts handles GET /blog/user/posts
func (h *Handler) ListMyPosts(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	posts, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to retrieve user posts", err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// UpdatePost handles PUT /blog/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), postID, userID, req)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "Post not found")
			return
		}
		response.Internal(c, "Failed to update post", err)
		return
	}

	c.JSON(http.StatusOK, PostResponse{Post: post})
}

// DeletePost handles DELETE /blog/:id
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	err := h.service.DeletePost(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, authz.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You are not authorized to delete this post")
		default:
			response.Internal(c, "Failed to delete post", err)
		}
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}

func parsePostID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid post ID")
		return uuid.Nil, false
	}
	return id, true
}
