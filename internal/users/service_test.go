package users

import (
	"context"
	"testing"
)

func TestUpsertFromAuthValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "", Email: "a@b.c"}); err == nil {
		t.Fatal("expected missing id to be rejected")
	}
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: " "}); err == nil {
		t.Fatal("expected missing email to be rejected")
	}
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "a@b.c", FullName: "A B"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	user, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.FullName != "A B" {
		t.Fatalf("unexpected name %q", user.FullName)
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@b.c"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, _ := repo.GetByID(ctx, "google:1")

	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "new@b.c"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, _ := repo.GetByID(ctx, "google:1")

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("expected created_at preserved across upserts")
	}
	if second.Email != "new@b.c" {
		t.Fatalf("expected email updated, got %q", second.Email)
	}
}
