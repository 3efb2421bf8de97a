package comments

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/authz"
	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// POST /:id/comment
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, ok := parseID(c, "Invalid post ID")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Content cannot be empty.")
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "Content cannot be empty.")
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "unauthorized")
		default:
			response.Internal(c, "Failed to add comment", err)
		}
		return
	}

	c.JSON(http.StatusCreated, CreateCommentResponse{Message: "Comment added", Comment: comment})
}

// GET /:id/comments
func (h *Handler) List(c *gin.Context) {
	postID, ok := parseID(c, "Invalid post ID")
	if !ok {
		return
	}

	comments, err := h.svc.List(c.Request.Context(), postID)
	if err != nil {
		response.Internal(c, "Failed to fetch comments", err)
		return
	}
	c.JSON(http.StatusOK, ListCommentsResponse{Comments: comments})
}

// DELETE /comments/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	commentID, ok := parseID(c, "Invalid comment ID")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), commentID, userID); err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, "Comment not found.")
		case errors.Is(err, authz.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You can only delete your own comments.")
		default:
			response.Internal(c, "Failed to delete comment", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully."})
}

func parseID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, msg)
		return uuid.Nil, false
	}
	return id, true
}
