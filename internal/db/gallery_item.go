package db

import (
	"time"

	"github.com/folio/internal/content"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryItem 定义图库条目模型，媒体可以是图片或视频。
type GalleryItem struct {
	ID           string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string            `gorm:"not null" json:"title"`
	Description  *string           `json:"description"`
	MediaURL     string            `gorm:"not null" json:"media_url"`
	ThumbnailURL *string           `json:"thumbnail_url"`
	MediaType    content.MediaType `gorm:"type:varchar(16);not null;default:image;index" json:"media_type"`
	CategoryID   content.Ref       `gorm:"type:varchar(36);index" json:"category_id"`
	IsPublished  bool              `gorm:"index;not null" json:"is_published"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName 指定表名。
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// BeforeCreate assigns a UUID when none is set.
func (i *GalleryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i GalleryItem) RecordID() string         { return i.ID }
func (i GalleryItem) Published() bool          { return i.IsPublished }
func (i GalleryItem) CategoryRef() content.Ref { return i.CategoryID }
func (i GalleryItem) Media() content.MediaType { return i.MediaType }
func (i GalleryItem) SortTime() time.Time      { return i.CreatedAt }
