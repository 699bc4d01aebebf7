package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/folio/internal/content"
)

func TestBlogSaveDerivesSlugAndStartsAsDraft(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	post, err := svc.Save(context.Background(), PostInput{
		Title:   "Hello, World!!",
		Content: "# hi",
		Tags:    []string{" go ", "", "web"},
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Fatalf("expected derived slug hello-world, got %s", post.Slug)
	}
	if post.IsPublished || post.PublishedAt != nil {
		t.Fatalf("expected new post to be a draft, got %+v", post.Publication())
	}
	if len(post.Tags) != 2 || post.Tags[0] != "go" || post.Tags[1] != "web" {
		t.Fatalf("unexpected tags %v", post.Tags)
	}
	if post.CategoryID.Valid() {
		t.Fatalf("expected uncategorized post")
	}

	stored, err := svc.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Slug != "hello-world" || len(stored.Tags) != 2 {
		t.Fatalf("unexpected stored post %+v", stored)
	}
}

func TestBlogSaveKeepsOperatorSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)

	post := mustCreatePost(t, svc, PostInput{Title: "Some Title", Slug: "  custom-slug "})
	if post.Slug != "custom-slug" {
		t.Fatalf("expected operator slug to be kept, got %s", post.Slug)
	}
}

func TestBlogSaveValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	ctx := context.Background()

	existing := mustCreatePost(t, svc, PostInput{Title: "Taken"})

	tests := []struct {
		name  string
		input PostInput
		want  error
	}{
		{name: "empty title", input: PostInput{Title: "   "}, want: ErrTitleRequired},
		{name: "underivable slug", input: PostInput{Title: "!!!"}, want: ErrSlugRequired},
		{name: "update without slug", input: PostInput{ID: existing.ID, Title: "Taken"}, want: ErrSlugRequired},
		{name: "unsafe slug", input: PostInput{Title: "x", Slug: "Has Spaces"}, want: ErrSlugInvalid},
		{name: "duplicate slug", input: PostInput{Title: "Taken"}, want: ErrSlugTaken},
		{name: "unknown category", input: PostInput{Title: "Other", CategoryID: "missing"}, want: ErrCategoryNotFound},
		{name: "unknown id", input: PostInput{ID: "missing", Title: "Other", Slug: "other"}, want: ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Save(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	result, err := svc.List(ctx, BlogFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected failed saves to write nothing, got %d posts", result.Total)
	}
}

func TestBlogUpdateKeepsPublicationState(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	ctx := context.Background()

	post := mustCreatePost(t, svc, PostInput{Title: "First"})
	published := mustPublishPost(t, svc, post.ID)

	updated, err := svc.Save(ctx, PostInput{ID: post.ID, Title: "First, edited", Slug: "first"})
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if updated.Slug != "first" {
		t.Fatalf("expected slug not to be re-derived, got %s", updated.Slug)
	}
	if !updated.IsPublished || updated.PublishedAt == nil || !updated.PublishedAt.Equal(*published.PublishedAt) {
		t.Fatalf("expected save to keep publication state, got %+v", updated.Publication())
	}
}

func TestBlogTogglePublish(t *testing.T) {
	gdb := setupServiceTestDB(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewBlogService(gdb).WithClock(fixedClock(start, time.Hour))
	ctx := context.Background()

	post := mustCreatePost(t, svc, PostInput{Title: "Toggle me"})

	first, err := svc.TogglePublish(ctx, post.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !first.IsPublished || first.PublishedAt == nil || !first.PublishedAt.Equal(start) {
		t.Fatalf("expected published at %v, got %+v", start, first.Publication())
	}

	second, err := svc.TogglePublish(ctx, post.ID)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if second.IsPublished || second.PublishedAt != nil {
		t.Fatalf("expected draft with null timestamp, got %+v", second.Publication())
	}

	stored, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.IsPublished || stored.PublishedAt != nil {
		t.Fatalf("expected stored draft, got %+v", stored.Publication())
	}

	third, err := svc.TogglePublish(ctx, post.ID)
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if third.PublishedAt == nil || !third.PublishedAt.After(*first.PublishedAt) {
		t.Fatalf("expected republish to stamp a newer time, got %v", third.PublishedAt)
	}

	stored, err = svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !stored.Publication().Consistent() || !stored.PublishedAt.Equal(*third.PublishedAt) {
		t.Fatalf("unexpected stored publication %+v", stored.Publication())
	}

	if _, err := svc.TogglePublish(ctx, "missing"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestBlogListJoinsCategoryNames(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	categories := NewCategoryService(gdb, content.FamilyBlog)
	ctx := context.Background()

	security, err := categories.Create(ctx, "Web Security")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	withCategory := mustCreatePost(t, svc, PostInput{Title: "Redirects", CategoryID: security.ID})
	mustCreatePost(t, svc, PostInput{Title: "Loose notes"})
	mustPublishPost(t, svc, withCategory.ID)

	result, err := svc.List(ctx, BlogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 2 || result.PublishedCount != 1 || result.DraftCount != 1 {
		t.Fatalf("unexpected counters %+v", result)
	}

	names := map[string]string{}
	for _, post := range result.Posts {
		names[post.Slug] = post.CategoryName
	}
	if names["redirects"] != "Web Security" || names["loose-notes"] != UncategorizedLabel {
		t.Fatalf("unexpected category names %v", names)
	}

	drafts, err := svc.List(ctx, BlogFilter{Status: StatusDraft})
	if err != nil {
		t.Fatalf("List drafts: %v", err)
	}
	if len(drafts.Posts) != 1 || drafts.Posts[0].Slug != "loose-notes" {
		t.Fatalf("unexpected drafts %+v", drafts.Posts)
	}
}

func TestBlogDelete(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb)
	ctx := context.Background()

	post := mustCreatePost(t, svc, PostInput{Title: "Short lived"})
	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for second delete, got %v", err)
	}
}
