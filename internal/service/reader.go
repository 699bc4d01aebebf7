package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// Source 说明一次公共读取的数据来自哪里。
type Source string

const (
	SourceStore       Source = "store"
	SourceDemo        Source = "demo"
	SourceUnavailable Source = "unavailable"
)

// Result 是公共读取的结果及其来源。
type Result[T any] struct {
	Records []T
	Source  Source
}

// Reader 是前台只读的数据访问边界：只返回已发布内容，
// 在无筛选或预览查询结果为空时回退到示例数据。Reader 没有写路径。
type Reader struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger falls back to slog.Default.
func NewReader(gdb *gorm.DB, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{db: gdb, logger: logger}
}

// Posts returns published posts matching sel, newest first.
func (r *Reader) Posts(ctx context.Context, sel content.Selection) Result[PostView] {
	posts, err := r.fetchPosts(ctx, sel, 0)
	if err != nil {
		r.logger.ErrorContext(ctx, "fetch published posts", "selection", sel.String(), "err", err)
		return Result[PostView]{Records: []PostView{}, Source: SourceUnavailable}
	}
	return withFallback(posts, sel, DemoPosts)
}

// PostPreview returns the most recent published posts for the landing page.
func (r *Reader) PostPreview(ctx context.Context) Result[PostView] {
	posts, err := r.fetchPosts(ctx, content.All(), content.PreviewLimit)
	if err != nil {
		r.logger.ErrorContext(ctx, "fetch post preview", "err", err)
		return Result[PostView]{Records: []PostView{}, Source: SourceUnavailable}
	}
	result := withFallback(posts, content.All(), DemoPosts)
	result.Records = content.Preview(result.Records, content.PreviewLimit)
	return result
}

// Gallery returns published gallery items matching sel, newest first.
func (r *Reader) Gallery(ctx context.Context, sel content.Selection) Result[ItemView] {
	items, err := r.fetchItems(ctx, sel, 0)
	if err != nil {
		r.logger.ErrorContext(ctx, "fetch published gallery", "selection", sel.String(), "err", err)
		return Result[ItemView]{Records: []ItemView{}, Source: SourceUnavailable}
	}
	return withFallback(items, sel, DemoGalleryItems)
}

// GalleryPreview returns the most recent published gallery items.
func (r *Reader) GalleryPreview(ctx context.Context) Result[ItemView] {
	items, err := r.fetchItems(ctx, content.All(), content.PreviewLimit)
	if err != nil {
		r.logger.ErrorContext(ctx, "fetch gallery preview", "err", err)
		return Result[ItemView]{Records: []ItemView{}, Source: SourceUnavailable}
	}
	result := withFallback(items, content.All(), DemoGalleryItems)
	result.Records = content.Preview(result.Records, content.PreviewLimit)
	return result
}

// PostBySlug 按 slug 读取已发布文章；草稿视为不存在。
// 站点没有任何已发布文章时，也能读取示例文章。
func (r *Reader) PostBySlug(ctx context.Context, slug string) (*PostView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostNotFound
	}

	var post db.BlogPost
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error
	if err == nil {
		names, err := categoryNames(ctx, r.db, content.FamilyBlog)
		if err != nil {
			return nil, err
		}
		view := PostView{BlogPost: post, CategoryName: categoryLabel(post.CategoryID, names)}
		return &view, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var published int64
	if err := r.db.WithContext(ctx).Model(&db.BlogPost{}).Where("is_published = ?", true).Count(&published).Error; err != nil {
		return nil, err
	}
	if published == 0 {
		for _, demo := range DemoPosts() {
			if demo.Slug == slug {
				return &demo, nil
			}
		}
	}
	return nil, ErrPostNotFound
}

// Categories 返回某一内容族的全部分类，用于前台筛选器。
func (r *Reader) Categories(ctx context.Context, family content.Family) ([]db.Category, error) {
	return NewCategoryService(r.db, family).List(ctx)
}

func (r *Reader) fetchPosts(ctx context.Context, sel content.Selection, limit int) ([]PostView, error) {
	query := applySelection(r.db.WithContext(ctx).Model(&db.BlogPost{}), sel).
		Where("is_published = ?", true).
		Order("COALESCE(published_at, created_at) desc").
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []db.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	names, err := categoryNames(ctx, r.db, content.FamilyBlog)
	if err != nil {
		return nil, err
	}
	return postViews(posts, names), nil
}

func (r *Reader) fetchItems(ctx context.Context, sel content.Selection, limit int) ([]ItemView, error) {
	query := applySelection(r.db.WithContext(ctx).Model(&db.GalleryItem{}), sel).
		Where("is_published = ?", true).
		Order("created_at desc").
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []db.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	names, err := categoryNames(ctx, r.db, content.FamilyGallery)
	if err != nil {
		return nil, err
	}
	return itemViews(items, names), nil
}

// withFallback 是回退决策本身：store 结果经过可见性筛选后为空，且查询未带筛选条件时，
// 使用示例数据。带筛选的空结果如实返回。
func withFallback[T content.Record](records []T, sel content.Selection, demo func() []T) Result[T] {
	visible := content.Visible(records, sel)
	if len(visible) > 0 {
		return Result[T]{Records: visible, Source: SourceStore}
	}
	if sel.IsAll() {
		return Result[T]{Records: content.Visible(demo(), sel), Source: SourceDemo}
	}
	return Result[T]{Records: visible, Source: SourceStore}
}
