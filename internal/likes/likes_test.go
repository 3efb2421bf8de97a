package likes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

type key struct{ user, post uuid.UUID }

type fakeRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]bool
	likes map[key]Like
}

func newFakeRepo(posts ...uuid.UUID) *fakeRepo {
	r := &fakeRepo{posts: map[uuid.UUID]bool{}, likes: map[key]Like{}}
	for _, p := range posts {
		r.posts[p] = true
	}
	return r
}

func (r *fakeRepo) Toggle(_ context.Context, postID, userID uuid.UUID) (ToggleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{userID, postID}
	if _, ok := r.likes[k]; ok {
		delete(r.likes, k)
		return ToggleResult{}, nil
	}
	if !r.posts[postID] {
		return ToggleResult{}, ErrPostNotFound
	}
	l := Like{ID: uuid.New(), UserID: userID, PostID: postID, CreatedAt: time.Now()}
	r.likes[k] = l
	return ToggleResult{Liked: true, Like: &l}, nil
}

func (r *fakeRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Like{}
	for k, l := range r.likes {
		if k.post == postID {
			out = append(out, l)
		}
	}
	return out, nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Close() {}

func TestService_ToggleTwice(t *testing.T) {
	post, user := uuid.New(), uuid.New()
	rec := &recorder{}
	svc := NewService(newFakeRepo(post), rec)
	ctx := context.Background()

	res, err := svc.Toggle(ctx, post, user)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	require.NotNil(t, res.Like)

	res, err = svc.Toggle(ctx, post, user)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Nil(t, res.Like)

	list, err := svc.List(ctx, post)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, rec.events, 2)
	assert.Equal(t, events.LikeToggled, rec.events[0].Type)
	require.NotNil(t, rec.events[0].Liked)
	assert.True(t, *rec.events[0].Liked)
	assert.False(t, *rec.events[1].Liked)
}

func TestService_ToggleMissingPost(t *testing.T) {
	rec := &recorder{}
	svc := NewService(newFakeRepo(), rec)

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Empty(t, rec.events)
}

func TestHandler_Toggle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	post := uuid.New()
	tokens := auth.NewTokenManager(secret, time.Hour)
	r := gin.New()
	NewHandler(NewService(newFakeRepo(post), nil)).RegisterRoutes(r.Group("/api/v1"), auth.RequireAuth(tokens))

	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	do := func(method, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	base := "/api/v1/" + post.String()

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, base+"/toggle-like", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/v1/nope/toggle-like", token).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/api/v1/"+uuid.NewString()+"/toggle-like", token).Code)

	w := do(http.MethodPost, base+"/toggle-like", token)
	require.Equal(t, http.StatusCreated, w.Code)
	var liked LikedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &liked))
	assert.Equal(t, "Post liked", liked.Message)
	require.NotNil(t, liked.Like)
	assert.Equal(t, post, liked.Like.PostID)

	w = do(http.MethodGet, base+"/likes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list ListLikesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Likes, 1)

	w = do(http.MethodPost, base+"/toggle-like", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Post unliked"}`, w.Body.String())

	w = do(http.MethodGet, base+"/likes", "")
	assert.JSONEq(t, `{"likes":[]}`, w.Body.String())
}
