package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, email, full_name, role, password_hash, created_at, updated_at").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "password_hash", "created_at", "updated_at"}).
			AddRow("u1", "jane@example.com", "Jane", "user", "hash", now, now))

	repo := NewPGRepo(db)
	user, err := repo.ByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if user.ID != "u1" || user.FullName != "Jane" {
		t.Errorf("user = %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, full_name, role, password_hash, created_at, updated_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "password_hash", "created_at", "updated_at"}))

	repo := NewPGRepo(db)
	if _, err := repo.ByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_lower_idx"`))

	repo := NewPGRepo(db)
	err = repo.Create(context.Background(), User{ID: "u1", Email: "a@b.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
