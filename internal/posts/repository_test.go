package posts

import (
	"context"
	"testing"

	"inkwell/internal/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Postgres(t *testing.T) {
	db := dbtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	author := dbtest.CreateUser(t, db, "author@example.com", "Ada")
	other := dbtest.CreateUser(t, db, "other@example.com", "")

	t.Run("create fills author", func(t *testing.T) {
		p := &Post{ID: uuid.New(), Title: "first", Content: "body", AuthorID: author}
		require.NoError(t, repo.Create(ctx, p))
		require.NotNil(t, p.Author.Name)
		assert.Equal(t, "Ada", *p.Author.Name)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("create with unknown author", func(t *testing.T) {
		err := repo.Create(ctx, &Post{ID: uuid.New(), Title: "x", Content: "y", AuthorID: uuid.New()})
		assert.ErrorIs(t, err, ErrAuthorNotFound)
	})

	t.Run("pagination", func(t *testing.T) {
		for i := 0; i < 14; i++ {
			require.NoError(t, repo.Create(ctx, &Post{ID: uuid.New(), Title: "p", Content: "c", AuthorID: other}))
		}

		page, total, err := repo.List(ctx, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, page, 5)
		for _, p := range page {
			assert.False(t, p.CreatedAt.IsZero())
		}

		mine, err := repo.ListByAuthor(ctx, author)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("update is owner scoped", func(t *testing.T) {
		mine, err := repo.ListByAuthor(ctx, author)
		require.NoError(t, err)
		id := mine[0].ID

		_, err = repo.Update(ctx, id, other, "hijack", "x")
		assert.ErrorIs(t, err, ErrPostNotFound)

		updated, err := repo.Update(ctx, id, author, "renamed", "new body")
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.True(t, !updated.UpdatedAt.Before(updated.CreatedAt))
	})

	t.Run("delete", func(t *testing.T) {
		mine, err := repo.ListByAuthor(ctx, author)
		require.NoError(t, err)
		id := mine[0].ID

		require.NoError(t, repo.Delete(ctx, id))
		assert.ErrorIs(t, repo.Delete(ctx, id), ErrPostNotFound)
		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}
