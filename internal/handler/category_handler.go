package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories 前台获取某类内容的分类，用于筛选器
func (a *API) ListCategories(c *gin.Context) {
	family, ok := parseFamilyParam(c)
	if !ok {
		return
	}

	categories, err := a.reader.Categories(c.Request.Context(), family)
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "list public categories", "family", family, "err", err)
		c.JSON(http.StatusOK, gin.H{"categories": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AdminListCategories 获取分类及引用数量
func (a *API) AdminListCategories(c *gin.Context) {
	family, ok := parseFamilyParam(c)
	if !ok {
		return
	}

	categories, err := a.categories(family).ListWithUsage(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AdminCreateCategory 创建分类，slug 由名称生成
func (a *API) AdminCreateCategory(c *gin.Context) {
	family, ok := parseFamilyParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}

	category, err := a.categories(family).Create(c.Request.Context(), req.Name)
	if err != nil {
		a.respondServiceError(c, err, "创建分类失败")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "分类创建成功", "category": category})
}

// AdminRenameCategory 重命名分类
func (a *API) AdminRenameCategory(c *gin.Context) {
	family, ok := parseFamilyParam(c)
	if !ok {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}

	category, err := a.categories(family).Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		a.respondServiceError(c, err, "更新分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类更新成功", "category": category})
}

// AdminDeleteCategory 删除分类，引用它的内容变为未分类
func (a *API) AdminDeleteCategory(c *gin.Context) {
	family, ok := parseFamilyParam(c)
	if !ok {
		return
	}
	if !requireConfirm(c) {
		return
	}

	detached, err := a.categories(family).Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "删除分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类删除成功", "detached": detached})
}
