package service

import (
	"time"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"gorm.io/datatypes"
)

const (
	DemoPostCount        = 3
	DemoGalleryItemCount = 6
)

func demoTime(month time.Month) *time.Time {
	t := time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func demoText(value string) *string {
	return &value
}

// DemoPosts 返回站点为空时展示的示例文章。每次调用都返回新的切片。
func DemoPosts() []PostView {
	posts := []struct {
		slug, title, excerpt, category string
		month                          time.Month
	}{
		{
			slug:     "the-thrilling-world-of-cybersecurity",
			title:    "সাইবার সিকিউরিটির রোমাঞ্চকর জগৎ",
			excerpt:  "A complete guide exploring the exciting world of cybersecurity, covering essential concepts and practical insights for beginners and enthusiasts.",
			category: "Cybersecurity",
			month:    time.March,
		},
		{
			slug:     "a-complete-web-application-security-syllabus-and-resources",
			title:    "A Complete Web Application Security Syllabus and Resources",
			excerpt:  "Comprehensive syllabus and curated resources for learning web application security from beginner to advanced level.",
			category: "Web Security",
			month:    time.February,
		},
		{
			slug:     "what-is-a-redirect",
			title:    "What is a Redirect?",
			excerpt:  "Understanding URL redirects, their types, security implications, and how they can be exploited in web applications.",
			category: "Web Security",
			month:    time.January,
		},
	}

	views := make([]PostView, 0, len(posts))
	for i, p := range posts {
		published := demoTime(p.month)
		views = append(views, PostView{
			BlogPost: db.BlogPost{
				ID:          "demo-post-" + string(rune('1'+i)),
				Title:       p.title,
				Slug:        p.slug,
				Excerpt:     demoText(p.excerpt),
				Content:     p.excerpt,
				CategoryID:  content.Uncategorized,
				Tags:        datatypes.JSONSlice[string]{},
				IsPublished: true,
				PublishedAt: published,
				CreatedAt:   *published,
				UpdatedAt:   *published,
			},
			CategoryName: p.category,
		})
	}
	return views
}

// DemoGalleryItems 返回图库为空时展示的示例条目。
func DemoGalleryItems() []ItemView {
	items := []struct {
		title, description, image, category string
	}{
		{"DEF CON CTF Finals", "Competing at the DEF CON CTF finals in Las Vegas, 2023", "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=800&q=80", "Events"},
		{"Security Lab Setup", "My home security research lab with custom hardware", "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=800&q=80", "Lab"},
		{"Conference Speaker", "Presenting at BlackHat USA on zero-day research", "https://images.unsplash.com/photo-1475721027785-f74eccf877e2?w=800&q=80", "Speaking"},
		{"Bug Bounty Hunting", "Late night bug hunting session capturing critical vulns", "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=800&q=80", "Research"},
		{"Team Collaboration", "Working with the red team on a complex engagement", "https://images.unsplash.com/photo-1522071820081-009f0129c71c?w=800&q=80", "Team"},
		{"Hardware Hacking", "Reverse engineering IoT devices in the lab", "https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&q=80", "Hardware"},
	}

	// 越靠前的条目越新，保证按创建时间倒序后顺序不变。
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	views := make([]ItemView, 0, len(items))
	for i, item := range items {
		created := base.Add(-time.Duration(i) * 24 * time.Hour)
		views = append(views, ItemView{
			GalleryItem: db.GalleryItem{
				ID:          "demo-item-" + string(rune('1'+i)),
				Title:       item.title,
				Description: demoText(item.description),
				MediaURL:    item.image,
				MediaType:   content.MediaImage,
				CategoryID:  content.Uncategorized,
				IsPublished: true,
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			CategoryName: item.category,
		})
	}
	return views
}
