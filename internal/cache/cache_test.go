package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type cachedPost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func startRedis(t *testing.T) Config {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("could not terminate redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return Config{Addr: endpoint}
}

func TestRedisCache(t *testing.T) {
	cfg := startRedis(t)
	ctx := context.Background()

	c := New(ctx, cfg)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	t.Run("miss", func(t *testing.T) {
		var p cachedPost
		hit, err := c.GetJSON(ctx, "post:missing", &p)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, c.SetJSON(ctx, "post:1", cachedPost{ID: "1", Title: "hello"}, time.Minute))

		var p cachedPost
		hit, err := c.GetJSON(ctx, "post:1", &p)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "hello", p.Title)
	})

	t.Run("delete pattern", func(t *testing.T) {
		for i := 1; i <= 150; i++ {
			require.NoError(t, c.SetJSON(ctx, fmt.Sprintf("posts:page:%d:size:10", i), []cachedPost{}, time.Minute))
		}
		require.NoError(t, c.DeletePattern(ctx, "posts:page:*"))

		var out []cachedPost
		hit, err := c.GetJSON(ctx, "posts:page:7:size:10", &out)
		require.NoError(t, err)
		assert.False(t, hit)

		hit, err = c.GetJSON(ctx, "post:1", &cachedPost{})
		require.NoError(t, err)
		assert.True(t, hit, "unrelated keys survive")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "post:1"))
		hit, err := c.GetJSON(ctx, "post:1", &cachedPost{})
		require.NoError(t, err)
		assert.False(t, hit)
	})
}

func TestNew_EmptyAddrIsNoop(t *testing.T) {
	c := New(context.Background(), Config{})
	assert.IsType(t, Noop{}, c)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrDisabled)

	hit, err := c.GetJSON(context.Background(), "post:1", &cachedPost{})
	assert.NoError(t, err)
	assert.False(t, hit)
}
