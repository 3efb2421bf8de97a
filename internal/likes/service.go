package likes

import (
	"context"
	"errors"
	"log/slog"

	"inkwell/internal/events"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
)

type Service interface {
	Toggle(ctx context.Context, postID, userID uuid.UUID) (ToggleResult, error)
	List(ctx context.Context, postID uuid.UUID) ([]Like, error)
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

func (s *service) Toggle(ctx context.Context, postID, userID uuid.UUID) (ToggleResult, error) {
	res, err := s.repo.Toggle(ctx, postID, userID)
	if err != nil {
		return ToggleResult{}, err
	}

	e := events.New(events.LikeToggled, userID, postID).WithLiked(res.Liked)
	if err := s.events.Publish(ctx, e); err != nil {
		slog.Warn("Failed to publish blog event", "type", e.Type, "post_id", postID, "error", err)
	}
	return res, nil
}

func (s *service) List(ctx context.Context, postID uuid.UUID) ([]Like, error) {
	return s.repo.ListByPost(ctx, postID)
}
