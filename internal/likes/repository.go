package likes

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/database"

	"github.com/google/uuid"
)

type Repository interface {
	// Toggle removes the (user, post) like if present and creates it otherwise,
	// atomically with respect to concurrent toggles of the same pair.
	Toggle(ctx context.Context, postID, userID uuid.UUID) (ToggleResult, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Like, error)
}

type repository struct {
	db database.Service
}

func NewRepository(db database.Service) Repository {
	return &repository{db: db}
}

func (r *repository) Toggle(ctx context.Context, postID, userID uuid.UUID) (ToggleResult, error) {
	var result ToggleResult

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const lock = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`
		if _, err := tx.ExecContext(ctx, lock, userID, postID); err != nil {
			return fmt.Errorf("lock like: %w", err)
		}

		const del = `DELETE FROM likes WHERE user_id=$1 AND post_id=$2`
		res, err := tx.ExecContext(ctx, del, userID, postID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			result = ToggleResult{Liked: false}
			return nil
		}

		l := &Like{ID: uuid.New(), UserID: userID, PostID: postID}
		const ins = `
			INSERT INTO likes (id, user_id, post_id, created_at)
			VALUES ($1,$2,$3,NOW())
			ON CONFLICT (user_id, post_id) DO NOTHING
			RETURNING created_at
		`
		err = tx.QueryRowContext(ctx, ins, l.ID, l.UserID, l.PostID).Scan(&l.CreatedAt)
		switch {
		case database.IsForeignKeyViolation(err, "likes_post_id_fkey"):
			return ErrPostNotFound
		case database.IsForeignKeyViolation(err, "likes_user_id_fkey"):
			return ErrUserNotFound
		case database.IsNoRows(err):
			// a concurrent writer got there first; report the stored row
			const sel = `SELECT id, created_at FROM likes WHERE user_id=$1 AND post_id=$2`
			if err := tx.QueryRowContext(ctx, sel, userID, postID).Scan(&l.ID, &l.CreatedAt); err != nil {
				return fmt.Errorf("load like: %w", err)
			}
		case err != nil:
			return fmt.Errorf("insert like: %w", err)
		}

		result = ToggleResult{Liked: true, Like: l}
		return nil
	})

	return result, err
}

func (r *repository) ListByPost(ctx context.Context, postID uuid.UUID) ([]Like, error) {
	const q = `
		SELECT l.id, l.user_id, l.post_id, l.created_at, u.name
		FROM likes l JOIN users u ON u.id = l.user_id
		WHERE l.post_id=$1
		ORDER BY l.created_at DESC, l.id DESC
	`
	rows, err := r.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	out := []Like{}
	for rows.Next() {
		l := Like{User: &Liker{}}
		if err := rows.Scan(&l.ID, &l.UserID, &l.PostID, &l.CreatedAt, &l.User.Name); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}
	return out, nil
}
