package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/database"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author does not exist")
)

// Repository is the persistence contract for posts
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error)
	// Update changes title and content only when authorID owns the post.
	Update(ctx context.Context, id, authorID uuid.UUID, title, content string) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const postColumns = `p.id, p.title, p.content, p.author_id, u.name, p.created_at, p.updated_at`

type repository struct {
	db database.Service
}

// NewRepository creates a new posts repository
func NewRepository(db database.Service) Repository {
	return &repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner, p *Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Author.Name, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new post and fills in timestamps and the author name
func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		WITH p AS (
			INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, title, content, author_id, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM p JOIN users u ON u.id = p.author_id
	`

	err := scanPost(r.db.QueryRow(ctx, query, p.ID, p.Title, p.Content, p.AuthorID), p)
	if database.IsForeignKeyViolation(err, "posts_author_id_fkey") {
		return ErrAuthorNotFound
	}
	if err != nil {
		slog.Error("Error creating post", "error", err)
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`

	post := &Post{}
	err := scanPost(r.db.QueryRow(ctx, query, id), post)
	if database.IsNoRows(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List retrieves a page of posts, newest first, and the total count
func (r *repository) List(ctx context.Context, limit, offset int) ([]Post, int64, error) {
	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`

	posts, err := r.queryRows(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, totalCount, nil
}

// ListByAuthor retrieves every post written by authorID, newest first
func (r *repository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`
	return r.queryRows(ctx, query, authorID)
}

func (r *repository) Update(ctx context.Context, id, authorID uuid.UUID, title, content string) (*Post, error) {
	query := `
		WITH p AS (
			UPDATE posts
			SET title = $1, content = $2, updated_at = NOW()
			WHERE id = $3 AND author_id = $4
			RETURNING id, title, content, author_id, created_at, updated_at
		)
		SELECT ` + postColumns + `
		FROM p JOIN users u ON u.id = p.author_id
	`

	post := &Post{}
	err := scanPost(r.db.QueryRow(ctx, query, title, content, id, authorID), post)
	if database.IsNoRows(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post. Comments and likes go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *repository) queryRows(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		if err := scanPost(rows, &post); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
