package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
)

func TestCategoryCreateAndRename(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCategoryService(gdb, content.FamilyBlog)
	ctx := context.Background()

	category, err := svc.Create(ctx, "  Web Security ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if category.Name != "Web Security" || category.Slug != "web-security" {
		t.Fatalf("unexpected category %+v", category)
	}

	if _, err := svc.Create(ctx, "web security!"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create(ctx, "   "); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
	}

	renamed, err := svc.Rename(ctx, category.ID, "AppSec")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Slug != "appsec" {
		t.Fatalf("expected slug to follow the new name, got %s", renamed.Slug)
	}

	if _, err := svc.Rename(ctx, "missing", "Other"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	other, err := svc.Create(ctx, "Research")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Rename(ctx, other.ID, "appsec"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected rename clash to fail, got %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "AppSec" || list[1].Name != "Research" {
		t.Fatalf("expected categories ordered by name, got %+v", list)
	}
}

func TestCategoryFamiliesAreIndependent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()

	blog := NewCategoryService(gdb, content.FamilyBlog)
	gallery := NewCategoryService(gdb, content.FamilyGallery)

	if _, err := blog.Create(ctx, "Events"); err != nil {
		t.Fatalf("blog Create: %v", err)
	}
	if _, err := gallery.Create(ctx, "Events"); err != nil {
		t.Fatalf("expected same name in other family to be allowed, got %v", err)
	}

	var blogCount, galleryCount int64
	gdb.Table(db.CategoryTable(content.FamilyBlog)).Count(&blogCount)
	gdb.Table(db.CategoryTable(content.FamilyGallery)).Count(&galleryCount)
	if blogCount != 1 || galleryCount != 1 {
		t.Fatalf("expected one category per table, got %d/%d", blogCount, galleryCount)
	}
}

func TestCategoryDeleteDetachesContent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	categories := NewCategoryService(gdb, content.FamilyBlog)
	posts := NewBlogService(gdb)

	category, err := categories.Create(ctx, "Cybersecurity")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	keep, err := categories.Create(ctx, "Keep")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first := mustCreatePost(t, posts, PostInput{Title: "One", CategoryID: category.ID})
	mustCreatePost(t, posts, PostInput{Title: "Two", CategoryID: category.ID})
	untouched := mustCreatePost(t, posts, PostInput{Title: "Three", CategoryID: keep.ID})
	mustPublishPost(t, posts, first.ID)

	usage, err := categories.UsageCount(ctx, category.ID)
	if err != nil || usage != 2 {
		t.Fatalf("expected usage 2, got %d (%v)", usage, err)
	}

	detached, err := categories.Delete(ctx, category.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if detached != 2 {
		t.Fatalf("expected 2 detached posts, got %d", detached)
	}

	var total int64
	if err := gdb.Model(&db.BlogPost{}).Count(&total).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected category delete to keep every post, got %d", total)
	}

	reloaded, err := posts.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.CategoryID.Valid() {
		t.Fatalf("expected post to become uncategorized, got %s", reloaded.CategoryID)
	}
	if !reloaded.IsPublished {
		t.Fatal("expected publication state to survive category delete")
	}

	other, err := posts.Get(ctx, untouched.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !other.CategoryID.Is(keep.ID) {
		t.Fatalf("expected unrelated post to keep its category, got %s", other.CategoryID)
	}

	if _, err := categories.Get(ctx, category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category to be gone, got %v", err)
	}
	if _, err := categories.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryListWithUsage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()
	categories := NewCategoryService(gdb, content.FamilyGallery)
	gallery := NewGalleryService(gdb)

	events, err := categories.Create(ctx, "Events")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := categories.Create(ctx, "Lab"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := gallery.Save(ctx, ItemInput{Title: "Finals", MediaURL: "https://cdn/a.jpg", CategoryID: events.ID}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	usages, err := categories.ListWithUsage(ctx)
	if err != nil {
		t.Fatalf("ListWithUsage: %v", err)
	}
	if len(usages) != 2 || usages[0].Count != 1 || usages[1].Count != 0 {
		t.Fatalf("unexpected usages %+v", usages)
	}
}
