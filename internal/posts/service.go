// Package posts implements blog post CRUD with read-through caching.
package posts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/cache"
	"inkwell/internal/events"

	"github.com/google/uuid"
)

const (
	postTTL = 5 * time.Minute
	listTTL = 2 * time.Minute

	listPattern = "posts:page:*"
)

func postKey(id uuid.UUID) string {
	return "post:" + id.String()
}

func listKey(page, pageSize int) string {
	return fmt.Sprintf("posts:page:%d:size:%d", page, pageSize)
}

// Service handles business logic for posts with caching
type Service struct {
	repo   Repository
	cache  cache.Cache
	events events.Publisher
}

// NewService creates a new posts service. Nil cache or publisher fall back to no-ops.
func NewService(repo Repository, c cache.Cache, pub events.Publisher) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{repo: repo, cache: c, events: pub}
}

// CreatePost stores a post owned by authorID and invalidates cached listings
func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*Post, error) {
	post := &Post{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	s.publish(ctx, events.New(events.PostCreated, authorID, post.ID))

	return post, nil
}

// GetPost retrieves a post by ID with caching
func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	var cached Post
	if s.cacheGet(ctx, postKey(id), &cached) {
		return &cached, nil
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, postKey(id), post, postTTL)
	return post, nil
}

// ListPosts retrieves one page of posts with caching. page and pageSize must
// already be normalized (see ParsePagination).
func (s *Service) ListPosts(ctx context.Context, page, pageSize int) (*PaginatedPostsResponse, error) {
	key := listKey(page, pageSize)

	var cached PaginatedPostsResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	posts, totalCount, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	resp := &PaginatedPostsResponse{
		Posts:      posts,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}

	s.cacheSet(ctx, key, resp, listTTL)
	return resp, nil
}

// ListMine returns every post written by authorID
func (s *Service) ListMine(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// UpdatePost rewrites a post owned by authorID. A post that does not exist
// and a post owned by someone else both yield ErrPostNotFound.
func (s *Service) UpdatePost(ctx context.Context, id, authorID uuid.UUID, req UpdatePostRequest) (*Post, error) {
	post, err := s.repo.Update(ctx, id, authorID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	s.invalidatePost(ctx, id)
	return post, nil
}

// DeletePost removes a post. ErrPostNotFound when absent, authz.ErrForbidden
// when requesterID is not the author.
func (s *Service) DeletePost(ctx context.Context, id, requesterID uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(post, requesterID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePost(ctx, id)
	s.publish(ctx, events.New(events.PostDeleted, requesterID, id))

	return nil
}

func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := totalCount / int64(pageSize)
	if totalCount%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}

func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		slog.Warn("Cache read failed", "key", key, "error", err)
		return false
	}
	if hit {
		slog.Debug("Cache hit", "key", key)
	}
	return hit
}

func (s *Service) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := s.cache.SetJSON(ctx, key, value, ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (s *Service) invalidatePost(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, postKey(id)); err != nil {
		slog.Warn("Cache delete failed", "post_id", id, "error", err)
	}
	s.invalidateLists(ctx)
}

func (s *Service) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listPattern); err != nil {
		slog.Warn("Cache invalidation failed", "pattern", listPattern, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		slog.Warn("Failed to publish blog event", "type", e.Type, "post_id", e.PostID, "error", err)
	}
}
