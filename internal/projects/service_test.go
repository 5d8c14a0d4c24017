package projects

import (
	"context"
	"strings"
	"testing"
)

func TestSaveAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.Save(ctx, "google:1", "My Draft", "original", "humanized", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	project, err := svc.Get(ctx, "google:1", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if project.Title != "My Draft" || project.HumanizedText != "humanized" {
		t.Fatalf("unexpected project: %+v", project)
	}
}

func TestSaveRequiresTitle(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Save(context.Background(), "google:1", "   ", "a", "b", 1); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestSaveTruncatesLongTitle(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.Save(ctx, "google:1", strings.Repeat("t", 500), "a", "b", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	project, err := svc.Get(ctx, "google:1", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(project.Title) != maxTitleLength {
		t.Fatalf("expected truncation to %d, got %d", maxTitleLength, len(project.Title))
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.Save(ctx, "google:1", "Mine", "a", "b", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Get(ctx, "google:2", id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := svc.Save(ctx, "google:1", title, "a", "b", 1); err != nil {
			t.Fatalf("Save %s: %v", title, err)
		}
	}

	projects, err := svc.List(ctx, "google:1", 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected limit applied, got %d projects", len(projects))
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.Save(ctx, "google:1", "Doomed", "a", "b", 1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Delete(ctx, "google:1", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "google:1", id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "google:1", id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestClaimGuestMovesProjects(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Save(ctx, "guest:device-1", "Guest Draft", "a", "b", 1); err != nil {
		t.Fatalf("Save: %v", err)
	}

	count, err := repo.ClaimGuest(ctx, "guest:device-1", "google:1")
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migrated project, got %d", count)
	}

	projects, err := svc.List(ctx, "google:1", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected project under new owner, got %d", len(projects))
	}
}
