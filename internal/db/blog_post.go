package db

import (
	"time"

	"github.com/folio/internal/content"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost 定义了博客文章模型
type BlogPost struct {
	ID            string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string                      `gorm:"not null" json:"title"`
	Slug          string                      `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       *string                     `json:"excerpt"`
	Content       string                      `gorm:"type:text" json:"content"`
	FeaturedImage *string                     `json:"featured_image"`
	CategoryID    content.Ref                 `gorm:"type:varchar(36);index" json:"category_id"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	ExternalLink  *string                     `json:"external_link"`
	IsPublished   bool                        `gorm:"index;not null" json:"is_published"`
	PublishedAt   *time.Time                  `json:"published_at"`
	AuthorID      *string                     `gorm:"type:varchar(36)" json:"author_id"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// TableName 指定表名。
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate assigns a UUID when none is set.
func (p *BlogPost) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Publication returns the post's publication state.
func (p BlogPost) Publication() content.PublicationState {
	return content.PublicationState{IsPublished: p.IsPublished, PublishedAt: p.PublishedAt}
}

// ApplyPublication copies a publication state onto the post.
func (p *BlogPost) ApplyPublication(state content.PublicationState) {
	p.IsPublished = state.IsPublished
	p.PublishedAt = state.PublishedAt
}

func (p BlogPost) RecordID() string         { return p.ID }
func (p BlogPost) Published() bool          { return p.IsPublished }
func (p BlogPost) CategoryRef() content.Ref { return p.CategoryID }
func (p BlogPost) Media() content.MediaType { return "" }

// SortTime 返回排序使用的时间：优先发布时间，缺失时回退到创建时间。
func (p BlogPost) SortTime() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}
