package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// SignupRequest is the request payload for creating an account
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=6,maxbytes=72"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
}

// SigninRequest is the request payload for exchanging credentials for a token
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,maxbytes=72"`
}

// TokenResponse is returned by signup and signin
type TokenResponse struct {
	JWT string `json:"jwt"`
}

// ProfileResponse wraps GET /user/me
type ProfileResponse struct {
	User *User `json:"user"`
}
