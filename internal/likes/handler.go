package likes

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// POST /:id/toggle-like
func (h *Handler) Toggle(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	res, err := h.svc.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "unauthorized")
		default:
			response.Internal(c, "Failed to toggle like", err)
		}
		return
	}

	if !res.Liked {
		c.JSON(http.StatusOK, UnlikedResponse{Message: "Post unliked"})
		return
	}
	c.JSON(http.StatusCreated, LikedResponse{Message: "Post liked", Like: res.Like})
}

// GET /:id/likes
func (h *Handler) List(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	likes, err := h.svc.List(c.Request.Context(), postID)
	if err != nil {
		response.Internal(c, "Failed to fetch likes", err)
		return
	}
	c.JSON(http.StatusOK, ListLikesResponse{Likes: likes})
}
