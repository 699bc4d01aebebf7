package handler

import (
	"net/http"
	"strconv"

	"github.com/folio/internal/content"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featured_image"`
	CategoryID    *string  `json:"category_id"`
	Tags          []string `json:"tags"`
	// TagsText 是编辑器中逗号分隔的标签输入。
	TagsText     string `json:"tags_text"`
	ExternalLink string `json:"external_link"`
}

func (r postRequest) input(id string, author Principal) service.PostInput {
	tags := r.Tags
	if len(tags) == 0 {
		tags = content.ParseTags(r.TagsText)
	}
	categoryID := ""
	if r.CategoryID != nil {
		categoryID = *r.CategoryID
	}
	authorID := ""
	if author.UserID != 0 {
		authorID = strconv.FormatUint(uint64(author.UserID), 10)
	}

	return service.PostInput{
		ID:            id,
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		CategoryID:    categoryID,
		Tags:          tags,
		ExternalLink:  r.ExternalLink,
		AuthorID:      authorID,
	}
}

// AdminListPosts 获取文章列表（含草稿）
func (a *API) AdminListPosts(c *gin.Context) {
	result, err := a.posts.List(c.Request.Context(), service.BlogFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CategoryID: c.Query("category"),
		Page:       queryInt(c, "page"),
		PerPage:    queryInt(c, "per_page"),
	})
	if err != nil {
		a.respondServiceError(c, err, "获取文章列表失败")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminGetPost 获取单篇文章
func (a *API) AdminGetPost(c *gin.Context) {
	post, err := a.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "获取文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// AdminCreatePost 新建文章，新文章总是草稿
func (a *API) AdminCreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "文章数据格式错误") {
		return
	}

	author, _ := currentPrincipal(c)
	post, err := a.posts.Save(c.Request.Context(), req.input("", author))
	if err != nil {
		a.respondServiceError(c, err, "创建文章失败")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "文章创建成功", "post": post})
}

// AdminUpdatePost 更新文章内容，不改变发布状态
func (a *API) AdminUpdatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "文章数据格式错误") {
		return
	}

	author, _ := currentPrincipal(c)
	post, err := a.posts.Save(c.Request.Context(), req.input(c.Param("id"), author))
	if err != nil {
		a.respondServiceError(c, err, "更新文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "post": post})
}

// AdminTogglePost 切换文章发布状态
func (a *API) AdminTogglePost(c *gin.Context) {
	post, err := a.posts.TogglePublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "切换发布状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "status": post.Publication().Label()})
}

// AdminDeletePost 删除文章
func (a *API) AdminDeletePost(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := a.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "删除文章失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "文章删除成功"})
}
