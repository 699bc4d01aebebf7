package service

import (
	"encoding/xml"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/folio/internal/render"
)

const feedExcerptLength = 200

// FeedSite 描述 RSS 频道信息。
type FeedSite struct {
	Name        string
	BaseURL     string
	Description string
}

// RSS is the document written at /feed.xml.
type RSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RSSChannel `xml:"channel"`
}

type RSSChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []RSSItem `xml:"item"`
}

type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// BuildFeed 将已发布文章转换为 RSS 2.0。外链文章直接指向外部地址。
func BuildFeed(site FeedSite, posts []PostView) RSS {
	base := strings.TrimRight(site.BaseURL, "/")
	items := make([]RSSItem, 0, len(posts))
	for _, post := range posts {
		link := PostURL(base, post.Slug)
		if post.ExternalLink != nil && *post.ExternalLink != "" {
			link = *post.ExternalLink
		}

		description := ""
		if post.Excerpt != nil {
			description = *post.Excerpt
		}
		if description == "" {
			description = render.Excerpt(post.Content, feedExcerptLength)
		}

		item := RSSItem{
			Title:       post.Title,
			Link:        link,
			Description: description,
			GUID:        PostURL(base, post.Slug),
		}
		if post.CategoryName != "" && post.CategoryName != UncategorizedLabel {
			item.Categories = []string{post.CategoryName}
		}
		if post.PublishedAt != nil {
			item.PubDate = post.PublishedAt.UTC().Format(time.RFC1123Z)
		}
		items = append(items, item)
	}

	description := site.Description
	if description == "" {
		description = site.Name
	}
	return RSS{
		Version: "2.0",
		Channel: RSSChannel{
			Title:       site.Name,
			Link:        base,
			Description: description,
			Items:       items,
		},
	}
}

// PostURL returns the public address of a post.
func PostURL(base, slug string) string {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Host == "" {
		return path.Join("/api/posts", slug)
	}
	u.Path = path.Join(u.Path, "api", "posts", slug)
	return u.String()
}
