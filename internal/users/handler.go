package users

import (
	"errors"
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
)

// Handler handles account HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new account handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /user routes. requireAuth guards /me.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	g := rg.Group("/user")
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.Signin)
	g.GET("/me", requireAuth, h.Me)
}

// Signup handles POST /user/signup
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	token, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "Email address already in use")
		case errors.Is(err, ErrPasswordTooLong):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.ErrorResponse{
				Error:  "validation failed",
				Fields: map[string]string{"password": "maxbytes=72"},
			})
		default:
			response.Internal(c, "Failed to create account", err)
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{JWT: token})
}

// Signin handles POST /user/signin
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, err)
		return
	}

	token, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusForbidden, "user not found")
		case errors.Is(err, ErrInvalidPassword):
			response.Error(c, http.StatusForbidden, "invalid password")
		default:
			response.Internal(c, "Failed to sign in", err)
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{JWT: token})
}

// Me handles GET /user/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found")
			return
		}
		response.Internal(c, "Failed to load profile", err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user})
}
