package handler

import (
	"encoding/xml"
	"errors"
	"html/template"
	"net/http"

	"github.com/folio/internal/content"
	"github.com/folio/internal/render"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

// galleryItemResponse 在图库条目上附加外部视频的嵌入地址。
type galleryItemResponse struct {
	service.ItemView
	Embed *render.VideoEmbed `json:"embed,omitempty"`
}

func galleryResponse(items []service.ItemView) []galleryItemResponse {
	out := make([]galleryItemResponse, 0, len(items))
	for _, item := range items {
		resp := galleryItemResponse{ItemView: item}
		if item.MediaType == content.MediaVideo {
			if embed, ok := render.ParseVideoEmbed(item.MediaURL); ok {
				resp.Embed = &embed
			}
		}
		out = append(out, resp)
	}
	return out
}

// ListPosts 前台文章列表，category 为 all 或分类 ID。
// 读取失败与没有内容的响应一致。
func (a *API) ListPosts(c *gin.Context) {
	sel := content.ParseSelection(c.Query("category"), content.FamilyBlog)
	result := a.reader.Posts(c.Request.Context(), sel)
	c.JSON(http.StatusOK, gin.H{"posts": result.Records, "selection": sel.String()})
}

// PostPreview 首页文章预览
func (a *API) PostPreview(c *gin.Context) {
	result := a.reader.PostPreview(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"posts": result.Records})
}

// ShowPost 按 slug 获取已发布文章；外链文章直接跳转。
func (a *API) ShowPost(c *gin.Context) {
	post, err := a.reader.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrPostNotFound) {
			a.logger.ErrorContext(c.Request.Context(), "load post", "slug", c.Param("slug"), "err", err)
		}
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	if post.ExternalLink != nil && *post.ExternalLink != "" {
		c.Redirect(http.StatusFound, *post.ExternalLink)
		return
	}

	html, err := render.Markdown(post.Content)
	if err != nil {
		a.logger.WarnContext(c.Request.Context(), "render markdown", "slug", post.Slug, "err", err)
		html = template.HTML(template.HTMLEscapeString(post.Content))
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "content_html": string(html)})
}

// ListGallery 前台图库，filter 为 all/images/videos 或分类 ID。
func (a *API) ListGallery(c *gin.Context) {
	sel := content.ParseSelection(c.Query("filter"), content.FamilyGallery)
	result := a.reader.Gallery(c.Request.Context(), sel)
	c.JSON(http.StatusOK, gin.H{"items": galleryResponse(result.Records), "selection": sel.String()})
}

// GalleryPreview 首页图库预览
func (a *API) GalleryPreview(c *gin.Context) {
	result := a.reader.GalleryPreview(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"items": galleryResponse(result.Records)})
}

// Feed 输出已发布文章的 RSS。示例数据不会进入订阅源。
func (a *API) Feed(c *gin.Context) {
	result := a.reader.Posts(c.Request.Context(), content.All())
	posts := result.Records
	if result.Source != service.SourceStore {
		posts = nil
	}

	feed := service.BuildFeed(a.site, posts)
	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(c.Writer).Encode(feed); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "encode feed", "err", err)
	}
}
