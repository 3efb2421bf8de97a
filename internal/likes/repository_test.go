package likes

import (
	"context"
	"sync"
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

	user := dbtest.CreateUser(t, db, "fan@example.com", "Fan")
	post := dbtest.CreatePost(t, db, user, "hello")

	res, err := repo.Toggle(ctx, post, user)
	require.NoError(t, err)
	require.True(t, res.Liked)

	list, err := repo.ListByPost(ctx, post)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User.Name)
	assert.Equal(t, "Fan", *list[0].User.Name)

	res, err = repo.Toggle(ctx, post, user)
	require.NoError(t, err)
	assert.False(t, res.Liked)

	list, err = repo.ListByPost(ctx, post)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Toggle(ctx, uuid.New(), user)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRepository_ConcurrentToggles(t *testing.T) {
	db := dbtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := dbtest.CreateUser(t, db, "racer@example.com", "")
	post := dbtest.CreatePost(t, db, user, "race")

	// an even number of toggles must leave no like behind
	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Toggle(ctx, post, user)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := repo.ListByPost(ctx, post)
	require.NoError(t, err)
	assert.Empty(t, list)
}
