package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrTitleRequired = errors.New("title is required")
	ErrSlugRequired  = errors.New("slug is required")
	ErrSlugInvalid   = errors.New("slug may only contain lowercase letters, digits and single hyphens")
	ErrSlugTaken     = errors.New("slug is already used by another post")
)

const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// BlogService wraps blog post database operations for the admin editor.
type BlogService struct {
	db  *gorm.DB
	now func() time.Time
}

// BlogFilter describes filters for the admin post list.
type BlogFilter struct {
	Search     string
	Status     string
	CategoryID string
	Page       int
	PerPage    int
}

// BlogListResult aggregates paginated list data and counters.
type BlogListResult struct {
	Posts          []PostView `json:"posts"`
	Total          int64      `json:"total"`
	PublishedCount int64      `json:"published_count"`
	DraftCount     int64      `json:"draft_count"`
	TotalPages     int        `json:"total_pages"`
	Page           int        `json:"page"`
	PerPage        int        `json:"per_page"`
}

// PostView 是带分类名称的文章。
type PostView struct {
	db.BlogPost
	CategoryName string `json:"category_name"`
}

// PostInput represents fields accepted when creating or updating a post.
// ID 为空表示新建。
type PostInput struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	CategoryID    string
	Tags          []string
	ExternalLink  string
	AuthorID      string
}

// NewBlogService creates a BlogService instance.
func NewBlogService(gdb *gorm.DB) *BlogService {
	return &BlogService{db: gdb, now: time.Now}
}

// WithClock 替换发布时间使用的时钟。
func (s *BlogService) WithClock(now func() time.Time) *BlogService {
	if now != nil {
		s.now = now
	}
	return s
}

// List returns posts including drafts, newest first, with category names.
func (s *BlogService) List(ctx context.Context, filter BlogFilter) (*BlogListResult, error) {
	result := &BlogListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	base := s.db.WithContext(ctx).Model(&db.BlogPost{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		base = base.Where("title LIKE ? OR slug LIKE ?", like, like)
	}
	if categoryID := strings.TrimSpace(filter.CategoryID); categoryID != "" {
		base = base.Where("category_id = ?", categoryID)
	}

	if err := base.Session(&gorm.Session{}).Where("is_published = ?", true).Count(&result.PublishedCount).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_published = ?", false).Count(&result.DraftCount).Error; err != nil {
		return nil, err
	}

	query := base.Session(&gorm.Session{})
	switch strings.TrimSpace(filter.Status) {
	case StatusPublished:
		query = query.Where("is_published = ?", true)
		result.Total = result.PublishedCount
	case StatusDraft:
		query = query.Where("is_published = ?", false)
		result.Total = result.DraftCount
	default:
		result.Total = result.PublishedCount + result.DraftCount
	}
	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)

	var posts []db.BlogPost
	if err := query.Order("created_at desc").Order("id asc").
		Limit(result.PerPage).
		Offset((result.Page - 1) * result.PerPage).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	names, err := categoryNames(ctx, s.db, content.FamilyBlog)
	if err != nil {
		return nil, err
	}
	result.Posts = postViews(posts, names)
	return result, nil
}

// Get fetches a post by id, drafts included.
func (s *BlogService) Get(ctx context.Context, id string) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.WithContext(ctx).First(&post, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Save 新建或更新文章。保存不会改变发布状态，新文章总是草稿。
func (s *BlogService) Save(ctx context.Context, input PostInput) (*db.BlogPost, error) {
	id := strings.TrimSpace(input.ID)
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	slug, err := resolveSlug(title, input.Slug, id == "")
	if err != nil {
		return nil, err
	}

	categoryRef, err := resolveCategory(ctx, s.db, content.FamilyBlog, input.CategoryID)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	var clash int64
	if err := tx.Model(&db.BlogPost{}).Where("slug = ? AND id <> ?", slug, id).Count(&clash).Error; err != nil {
		return nil, err
	}
	if clash > 0 {
		return nil, ErrSlugTaken
	}

	post := db.BlogPost{}
	if id != "" {
		existing, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		post = *existing
	} else {
		post.ApplyPublication(content.Draft())
		post.AuthorID = optionalString(input.AuthorID)
	}

	post.Title = title
	post.Slug = slug
	post.Excerpt = optionalString(input.Excerpt)
	post.Content = input.Content
	post.FeaturedImage = optionalString(input.FeaturedImage)
	post.CategoryID = categoryRef
	tags := content.CleanTags(input.Tags)
	if tags == nil {
		tags = []string{}
	}
	post.Tags = datatypes.JSONSlice[string](tags)
	post.ExternalLink = optionalString(input.ExternalLink)
	if post.AuthorID == nil {
		post.AuthorID = optionalString(input.AuthorID)
	}

	if id == "" {
		err = tx.Create(&post).Error
	} else {
		err = tx.Save(&post).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发保存绕过了上面的检查，由唯一索引兜底。
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// TogglePublish 切换发布状态：发布时记录当前时间，撤回时清空发布时间。
// 仅在写入成功后返回新状态。
func (s *BlogService) TogglePublish(ctx context.Context, id string) (*db.BlogPost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := post.Publication().Toggle(s.now())
	var publishedAt interface{}
	if next.PublishedAt != nil {
		publishedAt = *next.PublishedAt
	}

	result := s.db.WithContext(ctx).Model(&db.BlogPost{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"is_published": next.IsPublished,
			"published_at": publishedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}

	post.ApplyPublication(next)
	return post, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(post).Error
}

// SlugFor 返回标题派生出的 slug，供编辑器实时预览。
func SlugFor(title string) string {
	return content.Slugify(title)
}

// resolveSlug applies the editor rules: a new post derives its slug from the
// title until the operator supplies one; an existing post must carry one.
func resolveSlug(title, raw string, creating bool) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		if !creating {
			return "", ErrSlugRequired
		}
		slug = content.Slugify(title)
	}
	if slug == "" {
		return "", ErrSlugRequired
	}
	if !content.ValidSlug(slug) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

func postViews(posts []db.BlogPost, names map[string]string) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, PostView{BlogPost: post, CategoryName: categoryLabel(post.CategoryID, names)})
	}
	return views
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	if perPage > 100 {
		return 100
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
