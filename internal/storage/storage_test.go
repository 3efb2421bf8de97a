package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Endpoint:  "minio:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "media",
	}
}

func TestNew_Disabled(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNew_MissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.SecretKey = ""
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisabled)
}

func TestPresign_UsesPublicEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.PublicEndpoint = "cdn.example.com"
	cfg.UseSSL = true

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)

	raw, err := s.PresignUpload(context.Background(), "users/a/b.png", "image/png", 15*time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "cdn.example.com", u.Host)
	assert.Equal(t, "/media/users/a/b.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))

	raw, err = s.PresignDownload(context.Background(), "users/a/b.png", time.Hour)
	require.NoError(t, err)
	u, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestPresign_RejectsBadInput(t *testing.T) {
	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.PresignUpload(ctx, "", "image/png", time.Minute)
	assert.Error(t, err)
	_, err = s.PresignUpload(ctx, "k", "image/png", 0)
	assert.Error(t, err)
	_, err = s.PresignDownload(ctx, "", time.Minute)
	assert.Error(t, err)
}
