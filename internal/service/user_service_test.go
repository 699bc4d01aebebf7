package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/internal/db"
)

func TestUserServicePromote(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := NewUserService(gdb)
	ctx := context.Background()

	created, err := users.Create(ctx, "writer", "secret", "Viewer")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.IsAdmin() {
		t.Fatalf("expected viewer role, got %s", created.Role)
	}

	if _, err := users.Create(ctx, "writer", "other", db.RoleAdmin); !errors.Is(err, db.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	promoted, err := users.Promote(ctx, "writer")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted.IsAdmin() {
		t.Fatalf("expected admin role after promote")
	}

	var stored db.User
	if err := gdb.Where("username = ?", "writer").First(&stored).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Role != db.RoleAdmin {
		t.Fatalf("expected persisted admin role, got %s", stored.Role)
	}

	if _, err := users.Promote(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	list, err := users.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one user, got %d (%v)", len(list), err)
	}
}
