package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("store unavailable")

// failWrites 让后续的 UPDATE 与 INSERT 全部失败，模拟远端写入错误。
func failWrites(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	fail := func(tx *gorm.DB) { _ = tx.AddError(errStoreDown) }
	if err := gdb.Callback().Update().Before("gorm:update").Register("test:fail_update", fail); err != nil {
		t.Fatalf("register update callback: %v", err)
	}
	if err := gdb.Callback().Create().Before("gorm:create").Register("test:fail_create", fail); err != nil {
		t.Fatalf("register create callback: %v", err)
	}
}

func TestBlogTogglePublishFailureKeepsState(t *testing.T) {
	gdb := setupServiceTestDB(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewBlogService(gdb).WithClock(fixedClock(start, time.Hour))
	ctx := context.Background()

	draft := mustCreatePost(t, svc, PostInput{Title: "Draft"})
	published := mustPublishPost(t, svc, mustCreatePost(t, svc, PostInput{Title: "Live"}).ID)
	failWrites(t, gdb)

	post, err := svc.TogglePublish(ctx, draft.ID)
	if !errors.Is(err, errStoreDown) || post != nil {
		t.Fatalf("expected write error and no record, got %v %+v", err, post)
	}
	stored, err := svc.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.IsPublished || stored.PublishedAt != nil {
		t.Fatalf("draft must stay a draft, got %+v", stored.Publication())
	}

	post, err = svc.TogglePublish(ctx, published.ID)
	if !errors.Is(err, errStoreDown) || post != nil {
		t.Fatalf("expected write error and no record, got %v %+v", err, post)
	}
	stored, err = svc.Get(ctx, published.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !stored.IsPublished || stored.PublishedAt == nil || !stored.PublishedAt.Equal(*published.PublishedAt) {
		t.Fatalf("published post must keep its timestamp, got %+v", stored.Publication())
	}
}

func TestGalleryTogglePublishFailureKeepsState(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewGalleryService(gdb)
	ctx := context.Background()

	item, err := svc.Save(ctx, ItemInput{Title: "Lab", MediaURL: "https://cdn/lab.jpg"})
	if err != nil {
		t.Fatalf("save item: %v", err)
	}
	failWrites(t, gdb)

	toggled, err := svc.TogglePublish(ctx, item.ID)
	if !errors.Is(err, errStoreDown) || toggled != nil {
		t.Fatalf("expected write error and no record, got %v %+v", err, toggled)
	}
	stored, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.IsPublished {
		t.Fatal("item must stay unpublished after a failed toggle")
	}
}

func TestBlogSaveFailureWritesNothing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	ctx := context.Background()

	post := mustCreatePost(t, svc, PostInput{Title: "Original", Content: "body"})
	failWrites(t, gdb)

	if _, err := svc.Save(ctx, PostInput{ID: post.ID, Title: "Edited", Slug: "edited", Content: "new body"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected update error, got %v", err)
	}
	stored, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Title != "Original" || stored.Slug != "original" || stored.Content != "body" {
		t.Fatalf("failed save must not change the row, got %+v", stored)
	}

	if _, err := svc.Save(ctx, PostInput{Title: "Never stored"}); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected create error, got %v", err)
	}
	var count int64
	gdb.Model(&db.BlogPost{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected only the original post, got %d rows", count)
	}
}
