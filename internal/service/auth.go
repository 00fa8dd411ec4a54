package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost-go/internal/crypto"
	"github.com/inkpost/inkpost-go/internal/metrics"
	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameTaken      = errors.New("username already taken")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns a session token bound
// to the new identity.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if req.Username == "" {
		return model.AuthResponse{}, ErrUsernameRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.AuthResponse{}, ErrUsernameTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.IssueToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	metrics.TokensIssued.Inc()

	return model.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}

// Login authenticates a user and returns a session token. An unknown
// username and a wrong password collapse into the same generic error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.IssueToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	metrics.TokensIssued.Inc()

	return model.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}
