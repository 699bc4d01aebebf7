package service

import (
	"context"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

// PublicationCounts 统计某类内容的发布与草稿数量。
type PublicationCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
}

// DashboardStats 汇总后台首页展示的数字。
type DashboardStats struct {
	Posts             PublicationCounts `json:"posts"`
	Gallery           PublicationCounts `json:"gallery"`
	Videos            int64             `json:"videos"`
	BlogCategories    int64             `json:"blog_categories"`
	GalleryCategories int64             `json:"gallery_categories"`
}

// DashboardService computes admin dashboard numbers.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Stats returns total and published counts for posts and gallery items.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	tx := s.db.WithContext(ctx)

	var err error
	if stats.Posts, err = publicationCounts(tx.Model(&db.BlogPost{})); err != nil {
		return nil, err
	}
	if stats.Gallery, err = publicationCounts(tx.Model(&db.GalleryItem{})); err != nil {
		return nil, err
	}
	if err := tx.Model(&db.GalleryItem{}).Where("media_type = ?", string(content.MediaVideo)).Count(&stats.Videos).Error; err != nil {
		return nil, err
	}
	if err := tx.Table(db.CategoryTable(content.FamilyBlog)).Count(&stats.BlogCategories).Error; err != nil {
		return nil, err
	}
	if err := tx.Table(db.CategoryTable(content.FamilyGallery)).Count(&stats.GalleryCategories).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func publicationCounts(query *gorm.DB) (PublicationCounts, error) {
	var counts PublicationCounts
	if err := query.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := query.Session(&gorm.Session{}).Where("is_published = ?", true).Count(&counts.Published).Error; err != nil {
		return counts, err
	}
	counts.Drafts = counts.Total - counts.Published
	return counts, nil
}
