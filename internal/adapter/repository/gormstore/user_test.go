package gormstore

import (
	"context"
	"errors"
	"testing"

	"paylite-backend/internal/domain/apperr"
	userDomain "paylite-backend/internal/domain/user"
	"paylite-backend/internal/testutil/dbtest"
)

func TestUser_CreateGetCount(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count on empty = %d, %v", n, err)
	}

	u := makeUser("ana@example.com", userDomain.RoleAdmin)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.UserID != u.UserID || got.Role != userDomain.RoleAdmin {
		t.Errorf("unexpected user: %+v", got)
	}

	byID, err := repo.GetByUserID(ctx, u.UserID)
	if err != nil || byID.Email != "ana@example.com" {
		t.Fatalf("GetByUserID: %+v, %v", byID, err)
	}

	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestUser_NotFound(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("GetByEmail: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByUserID(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByUserID: want not-found kind, got %v", err)
	}
}

func TestUser_DuplicateEmailIsStorageError(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makeUser("dup@example.com", userDomain.RoleUser)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, makeUser("dup@example.com", userDomain.RoleUser))
	if !errors.Is(err, apperr.ErrStorage) {
		t.Fatalf("want storage error from unique index, got %v", err)
	}
}

func TestUser_ListInStorageOrder(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	for _, e := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		if err := repo.Create(ctx, makeUser(e, userDomain.RoleUser)); err != nil {
			t.Fatal(err)
		}
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Email != "a@x.io" || list[2].Email != "c@x.io" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
