package comments

import (
	"time"

	"github.com/google/uuid"
)

// Commenter is the public part of the comment's author
type Commenter struct {
	Name *string `json:"name"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	UserID    uuid.UUID `json:"userId"`
	PostID    uuid.UUID `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	User      Commenter `json:"user"`
}

// OwnerID makes Comment usable with authz.Authorize.
func (c *Comment) OwnerID() uuid.UUID {
	return c.UserID
}

// CreateCommentRequest is checked by the service rather than by binding tags,
// since an empty comment is a 400 and not a 422.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	Message string   `json:"message"`
	Comment *Comment `json:"comment"`
}

type ListCommentsResponse struct {
	Comments []Comment `json:"comments"`
}
