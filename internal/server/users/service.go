package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/akarpov/blogbox/internal/server/auth"
	"github.com/akarpov/blogbox/internal/server/config"
	"github.com/akarpov/blogbox/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful signup or login yields: the created or
// matched user plus a signed access token.
type AuthResult struct {
	User  *User
	Token string
}

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates a user with a bcrypt password hash and returns a signed
// token for the fresh account.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || password == "" {
		return nil, shared.ErrorValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return nil, shared.ErrorEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return s.issueToken(user)
}

// Login matches the credentials against the stored bcrypt hash. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorInvalidEmailPassword
		}
		return nil, shared.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, shared.ErrorInvalidEmailPassword
	}

	return s.issueToken(user)
}

// Profile returns the user an access token was issued to.
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		return nil, shared.ErrorInternal
	}
	return user, nil
}

func (s *Service) issueToken(user *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, shared.ErrorInternal
	}
	return &AuthResult{User: user, Token: token}, nil
}
