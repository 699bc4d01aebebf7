package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 是博客与图库两套分类共用的字段集合。
type Category struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when none is set.
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// BlogCategory 仅用于迁移 blog_categories 表。
type BlogCategory struct {
	Category
}

func (BlogCategory) TableName() string {
	return "blog_categories"
}

// GalleryCategory 仅用于迁移 gallery_categories 表。
type GalleryCategory struct {
	Category
}

func (GalleryCategory) TableName() string {
	return "gallery_categories"
}
