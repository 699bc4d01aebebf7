package handler

import (
	"net/http"

	"github.com/folio/internal/content"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	MediaURL     string  `json:"media_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	MediaType    string  `json:"media_type"`
	CategoryID   *string `json:"category_id"`
}

func (r galleryRequest) input(id string) service.ItemInput {
	categoryID := ""
	if r.CategoryID != nil {
		categoryID = *r.CategoryID
	}
	return service.ItemInput{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		MediaURL:     r.MediaURL,
		ThumbnailURL: r.ThumbnailURL,
		MediaType:    r.MediaType,
		CategoryID:   categoryID,
	}
}

// AdminListGallery 获取图库条目（含草稿），filter 支持 all/images/videos/分类 ID
func (a *API) AdminListGallery(c *gin.Context) {
	result, err := a.gallery.List(c.Request.Context(), service.GalleryFilter{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		Selection: content.ParseSelection(c.Query("filter"), content.FamilyGallery),
		Page:      queryInt(c, "page"),
		PerPage:   queryInt(c, "per_page"),
	})
	if err != nil {
		a.respondServiceError(c, err, "获取图库列表失败")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminGetGalleryItem 获取单个图库条目
func (a *API) AdminGetGalleryItem(c *gin.Context) {
	item, err := a.gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "获取图库条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// AdminCreateGalleryItem 新建图库条目
func (a *API) AdminCreateGalleryItem(c *gin.Context) {
	var req galleryRequest
	if !bindJSON(c, &req, "图库数据格式错误") {
		return
	}
	item, err := a.gallery.Save(c.Request.Context(), req.input(""))
	if err != nil {
		a.respondServiceError(c, err, "创建图库条目失败")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "图库条目创建成功", "item": item})
}

// AdminUpdateGalleryItem 更新图库条目
func (a *API) AdminUpdateGalleryItem(c *gin.Context) {
	var req galleryRequest
	if !bindJSON(c, &req, "图库数据格式错误") {
		return
	}
	item, err := a.gallery.Save(c.Request.Context(), req.input(c.Param("id")))
	if err != nil {
		a.respondServiceError(c, err, "更新图库条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "图库条目更新成功", "item": item})
}

// AdminToggleGalleryItem 切换图库条目发布状态
func (a *API) AdminToggleGalleryItem(c *gin.Context) {
	item, err := a.gallery.TogglePublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "切换发布状态失败")
		return
	}
	status := service.StatusDraft
	if item.IsPublished {
		status = service.StatusPublished
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "status": status})
}

// AdminDeleteGalleryItem 删除图库条目
func (a *API) AdminDeleteGalleryItem(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := a.gallery.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.respondServiceError(c, err, "删除图库条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "图库条目删除成功"})
}
