package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryExists       = errors.New("category already exists")
)

// UncategorizedLabel 是没有分类或分类已删除时展示的名称。
const UncategorizedLabel = "Uncategorized"

// CategoryService 管理某一内容族（博客或图库）的分类。
type CategoryService struct {
	db     *gorm.DB
	family content.Family
}

// CategoryUsage 是带引用计数的分类。
type CategoryUsage struct {
	db.Category
	Count int64 `json:"count"`
}

// NewCategoryService creates a CategoryService for one content family.
func NewCategoryService(gdb *gorm.DB, family content.Family) *CategoryService {
	return &CategoryService{db: gdb, family: family}
}

// Family returns the content family the service manages.
func (s *CategoryService) Family() content.Family {
	return s.family
}

func (s *CategoryService) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(db.CategoryTable(s.family))
}

// List returns the family's categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]db.Category, error) {
	categories := []db.Category{}
	if err := s.table(ctx).Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListWithUsage 返回分类及引用它的内容数量。
func (s *CategoryService) ListWithUsage(ctx context.Context) ([]CategoryUsage, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	type row struct {
		CategoryID string
		Count      int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).Table(db.ContentTable(s.family)).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}

	usages := make([]CategoryUsage, 0, len(categories))
	for _, category := range categories {
		usages = append(usages, CategoryUsage{Category: category, Count: counts[category.ID]})
	}
	return usages, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*db.Category, error) {
	var category db.Category
	if err := s.table(ctx).Where("id = ?", strings.TrimSpace(id)).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category; its slug is always derived from the name.
func (s *CategoryService) Create(ctx context.Context, name string) (*db.Category, error) {
	name, slug, err := categoryNameAndSlug(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	category := db.Category{Name: name, Slug: slug}
	if err := s.table(ctx).Create(&category).Error; err != nil {
		return nil, duplicateCategory(err)
	}
	return &category, nil
}

// Rename changes the name and re-derives the slug.
func (s *CategoryService) Rename(ctx context.Context, id, name string) (*db.Category, error) {
	name, slug, err := categoryNameAndSlug(name)
	if err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, category.ID); err != nil {
		return nil, err
	}

	if err := s.table(ctx).Where("id = ?", category.ID).
		Updates(map[string]interface{}{"name": name, "slug": slug}).Error; err != nil {
		return nil, duplicateCategory(err)
	}
	category.Name = name
	category.Slug = slug
	return category, nil
}

// Delete 删除分类。同一事务内先把引用它的内容置为未分类，内容本身不会被删除。
// 返回被置空的内容数量。
func (s *CategoryService) Delete(ctx context.Context, id string) (int64, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	var detached int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(db.ContentTable(s.family)).
			Where("category_id = ?", category.ID).
			Update("category_id", nil)
		if result.Error != nil {
			return result.Error
		}
		detached = result.RowsAffected

		return tx.Table(db.CategoryTable(s.family)).Where("id = ?", category.ID).Delete(&db.Category{}).Error
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}

// UsageCount returns how many content records reference the category.
func (s *CategoryService) UsageCount(ctx context.Context, id string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Table(db.ContentTable(s.family)).
		Where("category_id = ?", strings.TrimSpace(id)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug, exceptID string) error {
	var count int64
	if err := s.table(ctx).Where("slug = ? AND id <> ?", slug, exceptID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryExists
	}
	return nil
}

func duplicateCategory(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCategoryExists
	}
	return err
}

func categoryNameAndSlug(raw string) (string, string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", "", ErrCategoryNameRequired
	}
	slug := content.Slugify(name)
	if slug == "" {
		return "", "", ErrCategoryNameRequired
	}
	return name, slug, nil
}

// categoryNames 读取某一内容族的 id -> 名称映射。
func categoryNames(ctx context.Context, gdb *gorm.DB, family content.Family) (map[string]string, error) {
	var categories []db.Category
	if err := gdb.WithContext(ctx).Table(db.CategoryTable(family)).Select("id", "name").Find(&categories).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}

func categoryLabel(ref content.Ref, names map[string]string) string {
	id, ok := ref.ID()
	if !ok {
		return UncategorizedLabel
	}
	if name, found := names[id]; found {
		return name
	}
	return UncategorizedLabel
}

// resolveCategory 校验编辑器提交的分类 id，空值表示未分类。
func resolveCategory(ctx context.Context, gdb *gorm.DB, family content.Family, raw string) (content.Ref, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return content.Uncategorized, nil
	}

	var count int64
	if err := gdb.WithContext(ctx).Table(db.CategoryTable(family)).Where("id = ?", id).Count(&count).Error; err != nil {
		return content.Uncategorized, err
	}
	if count == 0 {
		return content.Uncategorized, ErrCategoryNotFound
	}
	return content.RefTo(id), nil
}
