package comments

import (
	"context"
	"fmt"

	"inkwell/internal/database"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db database.Service
}

func NewRepository(db database.Service) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) error {
	const q = `
		WITH c AS (
			INSERT INTO comments (id, content, user_id, post_id, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING created_at, user_id
		)
		SELECT c.created_at, u.name FROM c JOIN users u ON u.id = c.user_id
	`

	err := r.db.QueryRow(ctx, q, c.ID, c.Content, c.UserID, c.PostID).Scan(&c.CreatedAt, &c.User.Name)
	switch {
	case database.IsForeignKeyViolation(err, "comments_post_id_fkey"):
		return ErrPostNotFound
	case database.IsForeignKeyViolation(err, "comments_user_id_fkey"):
		return ErrUserNotFound
	case err != nil:
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	const q = `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, u.name
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var c Comment
	err := r.db.QueryRow(ctx, q, id).Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt, &c.User.Name)
	if database.IsNoRows(err) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *repository) ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	const q = `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, u.name
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`
	rows, err := r.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt, &c.User.Name); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
