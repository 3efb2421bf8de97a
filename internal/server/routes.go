package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/comments"
	"inkwell/internal/files"
	"inkwell/internal/likes"
	"inkwell/internal/posts"
	"inkwell/internal/quote"
	"inkwell/internal/response"
	"inkwell/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes() http.Handler {
	response.ConfigureBinding()

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(s.deps.Logger))
	r.Use(RecoveryMiddleware(s.deps.Logger))

	origins := s.cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	fileService := files.NewService(s.deps.Storage, s.cfg.S3.PresignTTL)

	r.GET("/health", s.healthHandler(fileService))

	api := r.Group("/api/v1")
	requireAuth := auth.RequireAuth(s.tokens)

	users.NewHandler(
		users.NewService(users.NewRepository(s.deps.DB), s.tokens, s.cfg.Auth.BcryptCost),
	).RegisterRoutes(api, requireAuth)

	posts.NewHandler(
		posts.NewService(posts.NewRepository(s.deps.DB), s.deps.Cache, s.deps.Events),
	).RegisterRoutes(api, requireAuth)

	comments.NewHandler(
		comments.NewService(comments.NewRepository(s.deps.DB), s.deps.Events),
	).RegisterRoutes(api, requireAuth)

	likes.NewHandler(
		likes.NewService(likes.NewRepository(s.deps.DB), s.deps.Events),
	).RegisterRoutes(api, requireAuth)

	quote.NewHandler(s.deps.Quotes).RegisterRoutes(api)
	files.NewHandler(fileService).RegisterRoutes(api, requireAuth)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "not found")
	})

	return r
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string            `json:"status"`
	Database map[string]string `json:"database"`
	Cache    map[string]string `json:"cache"`
	Storage  map[string]string `json:"storage"`
}

// healthHandler reports 503 only when the database is down; cache and
// storage are optional and merely described.
func (s *Server) healthHandler(fileService *files.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		res := HealthResponse{
			Status:   "up",
			Database: s.deps.DB.Health(),
			Cache:    dependencyStatus(s.deps.Cache.Ping(ctx), cache.ErrDisabled),
			Storage:  map[string]string{"status": "disabled"},
		}
		if fileService.Enabled() {
			res.Storage = dependencyStatus(fileService.Health(ctx), files.ErrDisabled)
		}

		status := http.StatusOK
		if res.Database["status"] != "up" {
			res.Status = "down"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, res)
	}
}

func dependencyStatus(err, disabled error) map[string]string {
	switch {
	case err == nil:
		return map[string]string{"status": "up"}
	case errors.Is(err, disabled):
		return map[string]string{"status": "disabled"}
	default:
		return map[string]string{"status": "down", "error": err.Error()}
	}
}
