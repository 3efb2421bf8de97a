package comments

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/events"

	"github.com/google/uuid"
)

var (
	ErrEmptyContent    = errors.New("comment content is empty")
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")
)

type Service interface {
	Create(ctx context.Context, postID, userID uuid.UUID, content string) (*Comment, error)
	List(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Delete(ctx context.Context, commentID, requesterID uuid.UUID) error
}

type service struct {
	repo   Repository
	events events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &service{repo: repo, events: pub}
}

func (s *service) Create(ctx context.Context, postID, userID uuid.UUID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	c := &Comment{
		ID:      uuid.New(),
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.CommentCreated, userID, postID).WithComment(c.ID))
	return c, nil
}

func (s *service) List(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	return s.repo.ListByPost(ctx, postID)
}

func (s *service) Delete(ctx context.Context, commentID, requesterID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := authz.Authorize(c, requesterID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.publish(ctx, events.New(events.CommentDeleted, requesterID, c.PostID).WithComment(commentID))
	return nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		slog.Warn("Failed to publish blog event", "type", e.Type, "post_id", e.PostID, "error", err)
	}
}
