package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	gdb, err := db.Open(db.Options{Driver: db.DriverSQLite, Path: dsn, Silent: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

// fixedClock 返回依次递增的时间，便于断言重新发布会刷新时间戳。
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func mustCreatePost(t *testing.T, svc *BlogService, input PostInput) *db.BlogPost {
	t.Helper()
	post, err := svc.Save(context.Background(), input)
	if err != nil {
		t.Fatalf("save post %q: %v", input.Title, err)
	}
	return post
}

func mustPublishPost(t *testing.T, svc *BlogService, id string) *db.BlogPost {
	t.Helper()
	post, err := svc.TogglePublish(context.Background(), id)
	if err != nil {
		t.Fatalf("toggle post %s: %v", id, err)
	}
	if !post.IsPublished {
		t.Fatalf("expected post %s to be published", id)
	}
	return post
}
