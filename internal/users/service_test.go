package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewService(NewMemoryRepo())

	resp, err := s.Register(context.Background(), "Jane@Example.com", "Jane Candidate", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}
	login, err := s.Login(context.Background(), "jane@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user = %q, registered = %q", login.User.ID, resp.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewService(NewMemoryRepo())
	if _, err := s.Register(context.Background(), "a@b.com", "A", "longenoughpw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := s.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewService(NewMemoryRepo())
	_, err := s.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials for unknown email, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewService(NewMemoryRepo())
	if _, err := s.Register(context.Background(), "a@b.com", "A", "longenoughpw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := s.Register(context.Background(), "A@B.com", "A again", "longenoughpw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	s := NewService(NewMemoryRepo())
	if _, err := s.Register(context.Background(), "a@b.com", "A", "short"); err == nil {
		t.Fatal("expected error for short password")
	}
}
