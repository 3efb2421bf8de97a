// Package users implements account registration and password sign-in.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email address already in use")
	// ErrUserNotFound is returned when no account matches
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned when the password does not match the stored hash
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Service defines the account service interface
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (string, error)
	Signin(ctx context.Context, req SigninRequest) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (*User, error)
}

type service struct {
	repo       Repository
	tokens     TokenIssuer
	bcryptCost int
}

// NewService creates a new account service. A bcryptCost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewService(repo Repository, tokens TokenIssuer, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if len(req.Password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	email := normalizeEmail(req.Email)

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:       uuid.New(),
		Email:    email,
		Name:     trimName(req.Name),
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	slog.Info("User signed up", "user_id", user.ID)

	return s.tokens.Issue(user.ID)
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidPassword
	}

	return s.tokens.Issue(user.ID)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimName(name *string) *string {
	if name == nil {
		return nil
	}
	n := strings.TrimSpace(*name)
	if n == "" {
		return nil
	}
	return &n
}
