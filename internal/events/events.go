// Package events publishes blog activity (posts, comments, likes) to Kafka.
// Publishing is best-effort: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	PostCreated    = "post.created"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	CommentDeleted = "comment.deleted"
	LikeToggled    = "like.toggled"
)

// Event is the JSON payload written to the blog events topic.
type Event struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	ActorID    uuid.UUID  `json:"actorId"`
	PostID     uuid.UUID  `json:"postId"`
	CommentID  *uuid.UUID `json:"commentId,omitempty"`
	Liked      *bool      `json:"liked,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, actorID, postID uuid.UUID) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		ActorID:    actorID,
		PostID:     postID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithComment sets the comment id.
func (e Event) WithComment(id uuid.UUID) Event {
	e.CommentID = &id
	return e
}

// WithLiked records the state a like toggle ended in.
func (e Event) WithLiked(liked bool) Event {
	e.Liked = &liked
	return e
}

// Publisher sends events somewhere
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() {}
