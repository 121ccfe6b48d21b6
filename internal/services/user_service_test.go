package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ed9408/minerva-api/internal/models"
	"github.com/ed9408/minerva-api/internal/utils"
)

func appErrStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	return appErr.Status
}

func TestCreateUserHashesPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	user, err := svc.Create(context.Background(), "John Doe", "a@x.com", "pw", "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("role = %q, want default %q", user.Role, models.RoleUser)
	}
	if user.PasswordHash == "pw" || user.PasswordHash == "" {
		t.Fatalf("password stored without hashing: %q", user.PasswordHash)
	}
	if !VerifyPassword("pw", user.PasswordHash) {
		t.Fatal("stored digest does not verify against the plaintext")
	}
}

func TestCreateUserEmptyPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewUserService(store)

	_, err := svc.Create(context.Background(), "John Doe", "a@x.com", "   ", "user")
	if status := appErrStatus(t, err); status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
	if len(store.created) != 0 {
		t.Fatal("expected no user to be created")
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc := NewUserService(&fakeUserStore{})

	_, err := svc.Create(context.Background(), "John Doe", "a@x.com", "pw", "superuser")
	if status := appErrStatus(t, err); status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := &fakeUserStore{createErr: &pgconn.PgError{Code: "23505"}}
	svc := NewUserService(store)

	_, err := svc.Create(context.Background(), "John Doe", "a@x.com", "pw", "user")
	if status := appErrStatus(t, err); status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserStore{})

	_, err := svc.Get(context.Background(), 42)
	if status := appErrStatus(t, err); status != 404 {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	store, _ := storeWithUser(t, "a@x.com", "old", models.RoleUser)
	svc := NewUserService(store)

	newPassword := "new"
	user, err := svc.Update(context.Background(), 1, UserUpdateInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !VerifyPassword("new", user.PasswordHash) {
		t.Fatal("updated digest does not verify against the new plaintext")
	}
}

func TestUpdateUserEmptyPartial(t *testing.T) {
	store, existing := storeWithUser(t, "a@x.com", "pw", models.RoleUser)
	svc := NewUserService(store)

	user, err := svc.Update(context.Background(), 1, UserUpdateInput{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if user.Name != existing.Name || user.Email != existing.Email || user.PasswordHash != existing.PasswordHash {
		t.Fatal("empty partial update changed fields")
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserStore{deleted: false})

	err := svc.Delete(context.Background(), 42)
	if status := appErrStatus(t, err); status != 404 {
		t.Fatalf("status = %d, want 404", status)
	}
}
