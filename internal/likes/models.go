package likes

import (
	"time"

	"github.com/google/uuid"
)

// Liker is the public part of the user behind a like
type Liker struct {
	Name *string `json:"name"`
}

type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	PostID    uuid.UUID `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	User      *Liker    `json:"user,omitempty"`
}

// ToggleResult reports which way a toggle went. Like is set only when Liked.
type ToggleResult struct {
	Liked bool
	Like  *Like
}

type LikedResponse struct {
	Message string `json:"message"`
	Like    *Like  `json:"like"`
}

type UnlikedResponse struct {
	Message string `json:"message"`
}

type ListLikesResponse struct {
	Likes []Like `json:"likes"`
}
