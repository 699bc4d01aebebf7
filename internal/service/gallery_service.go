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
	ErrItemNotFound      = errors.New("gallery item not found")
	ErrMediaURLRequired  = errors.New("media url is required")
	ErrMediaTypeInvalid  = errors.New("media type must be image or video")
	ErrItemTitleRequired = errors.New("gallery title is required")
)

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryFilter describes filters for listing gallery items in the admin.
type GalleryFilter struct {
	Search    string
	Status    string
	Selection content.Selection
	Page      int
	PerPage   int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []ItemView `json:"items"`
	Total      int64      `json:"total"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}

// ItemView 是带分类名称的图库条目。
type ItemView struct {
	db.GalleryItem
	CategoryName string `json:"category_name"`
}

// ItemInput represents fields accepted when creating or updating a gallery item.
type ItemInput struct {
	ID           string
	Title        string
	Description  string
	MediaURL     string
	ThumbnailURL string
	MediaType    string
	CategoryID   string
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns gallery items matching the filter, drafts included.
func (s *GalleryService) List(ctx context.Context, filter GalleryFilter) (*GalleryListResult, error) {
	result := &GalleryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 24),
	}

	query := applySelection(s.db.WithContext(ctx).Model(&db.GalleryItem{}), filter.Selection)
	switch strings.TrimSpace(filter.Status) {
	case StatusPublished:
		query = query.Where("is_published = ?", true)
	case StatusDraft:
		query = query.Where("is_published = ?", false)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)

	var items []db.GalleryItem
	if err := query.Order("created_at desc").Order("id asc").
		Limit(result.PerPage).
		Offset((result.Page - 1) * result.PerPage).
		Find(&items).Error; err != nil {
		return nil, err
	}

	names, err := categoryNames(ctx, s.db, content.FamilyGallery)
	if err != nil {
		return nil, err
	}
	result.Items = itemViews(items, names)
	return result, nil
}

// Get fetches a gallery item by id.
func (s *GalleryService) Get(ctx context.Context, id string) (*db.GalleryItem, error) {
	var item db.GalleryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save 新建或更新图库条目，不改变发布状态。
func (s *GalleryService) Save(ctx context.Context, input ItemInput) (*db.GalleryItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrItemTitleRequired
	}
	mediaURL := strings.TrimSpace(input.MediaURL)
	if mediaURL == "" {
		return nil, ErrMediaURLRequired
	}
	mediaType, ok := content.ParseMediaType(input.MediaType)
	if !ok {
		return nil, ErrMediaTypeInvalid
	}
	categoryRef, err := resolveCategory(ctx, s.db, content.FamilyGallery, input.CategoryID)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	item := db.GalleryItem{}
	if id != "" {
		existing, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		item = *existing
	}

	item.Title = title
	item.Description = optionalString(input.Description)
	item.MediaURL = mediaURL
	item.ThumbnailURL = optionalString(input.ThumbnailURL)
	item.MediaType = mediaType
	item.CategoryID = categoryRef

	tx := s.db.WithContext(ctx)
	if id == "" {
		err = tx.Create(&item).Error
	} else {
		err = tx.Save(&item).Error
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// TogglePublish flips the published flag after the write succeeds.
func (s *GalleryService) TogglePublish(ctx context.Context, id string) (*db.GalleryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !item.IsPublished
	result := s.db.WithContext(ctx).Model(&db.GalleryItem{}).
		Where("id = ?", item.ID).
		Update("is_published", next)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	item.IsPublished = next
	return item, nil
}

// Delete removes a gallery item.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// applySelection 把选择条件下推为 SQL 过滤。
func applySelection(query *gorm.DB, sel content.Selection) *gorm.DB {
	if id, ok := sel.CategoryID(); ok {
		return query.Where("category_id = ?", id)
	}
	if media, ok := sel.Media(); ok {
		return query.Where("media_type = ?", string(media))
	}
	return query
}

func itemViews(items []db.GalleryItem, names map[string]string) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{GalleryItem: item, CategoryName: categoryLabel(item.CategoryID, names)})
	}
	return views
}
