package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/database/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	db := dbtest.Start(t)

	stats := db.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestMigrate_Idempotent(t *testing.T) {
	db := dbtest.Start(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestConstraintClassification(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()

	dbtest.CreateUser(t, db, "dup@example.com", "")
	_, err := db.Exec(ctx, `INSERT INTO users (id, email, password) VALUES ($1, 'dup@example.com', 'x')`, uuid.New())
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err, "users_email_key"))
	assert.False(t, database.IsUniqueViolation(err, "likes_user_post_key"))

	_, err = db.Exec(ctx, `INSERT INTO posts (id, title, content, author_id) VALUES ($1, 't', 'c', $2)`, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err, ""))
	assert.True(t, database.IsForeignKeyViolation(err, "posts_author_id_fkey"))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, password) VALUES ($1, 'tx@example.com', 'x')`, uuid.New()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = 'tx@example.com'`).Scan(&n))
	assert.Zero(t, n)
}

func TestCascadeOnPostDelete(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()

	author := dbtest.CreateUser(t, db, "author@example.com", "Author")
	post := dbtest.CreatePost(t, db, author, "doomed")
	_, err := db.Exec(ctx, `INSERT INTO comments (id, content, user_id, post_id) VALUES ($1, 'hi', $2, $3)`, uuid.New(), author, post)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO likes (id, user_id, post_id) VALUES ($1, $2, $3)`, uuid.New(), author, post)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, post)
	require.NoError(t, err)

	var comments, likes int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, post).Scan(&comments))
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, post).Scan(&likes))
	assert.Zero(t, comments)
	assert.Zero(t, likes)
}

func TestIsHelpers_NonPgErrors(t *testing.T) {
	assert.True(t, database.IsNoRows(sql.ErrNoRows))
	assert.False(t, database.IsUniqueViolation(errors.New("duplicate key"), ""))
	assert.True(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "users_email_key"))
}
