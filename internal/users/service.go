package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devboard-backend/internal/shared/auth"
)

// ErrBadCredentials is returned for a wrong email/password pair. Callers
// must not distinguish unknown email from wrong password.
var ErrBadCredentials = errors.New("invalid email or password")

// Service implements registration and login on top of a Repo.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService builds a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates an account and returns a signed token.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return AuthResponse{}, errors.New("valid email is required")
	}
	if len(password) < 8 {
		return AuthResponse{}, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		Role:         "user",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, err
	}
	return s.withToken(user)
}

// Login checks credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	user, err := s.repo.ByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResponse{}, ErrBadCredentials
		}
		return AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResponse{}, ErrBadCredentials
	}
	return s.withToken(user)
}

// EnsureExternal returns the account for an external identity, creating it
// on first login. id is stable per provider subject (e.g. "google:<sub>").
func (s *Service) EnsureExternal(ctx context.Context, id, email, name string) (User, error) {
	if user, err := s.repo.ByID(ctx, id); err == nil {
		return user, nil
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	if user, err := s.repo.ByEmail(ctx, email); err == nil {
		return user, nil
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := s.now().UTC()
	user := User{
		ID:        id,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FullName:  strings.TrimSpace(name),
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ByID fetches a profile.
func (s *Service) ByID(ctx context.Context, id string) (User, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) withToken(user User) (AuthResponse, error) {
	token, err := auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
	})
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResponse{Token: token, User: user}, nil
}
