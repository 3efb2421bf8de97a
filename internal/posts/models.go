package posts

import (
	"time"

	"github.com/google/uuid"
)

// Author is the public part of the user who wrote a post
type Author struct {
	Name *string `json:"name"`
}

// Post represents a blog post
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"authorId"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID makes Post usable with authz.Authorize.
func (p *Post) OwnerID() uuid.UUID {
	return p.AuthorID
}

// CreatePostRequest represents the request body for creating a new post.
// The author comes from the bearer token, never from the body.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest represents the request body for updating a post
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// PaginatedPostsResponse represents paginated posts response
type PaginatedPostsResponse struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int64  `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
}

// CreatePostResponse is returned by POST /blog
type CreatePostResponse struct {
	ID   uuid.UUID `json:"id"`
	Post *Post     `json:"post"`
}

// PostResponse wraps a single post
type PostResponse struct {
	Post *Post `json:"post"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}
