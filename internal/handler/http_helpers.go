package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/folio/internal/content"
	"github.com/folio/internal/service"
	"github.com/folio/internal/storage"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// respondServiceError 把服务层错误映射为 HTTP 状态：校验失败 400，不存在 404，冲突 409，其余 500。
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrSlugRequired),
		errors.Is(err, service.ErrSlugInvalid),
		errors.Is(err, service.ErrItemTitleRequired),
		errors.Is(err, service.ErrMediaURLRequired),
		errors.Is(err, service.ErrMediaTypeInvalid),
		errors.Is(err, service.ErrCategoryNameRequired),
		errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, storage.ErrUnsupportedMedia):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		message = err.Error()
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrCategoryExists):
		status = http.StatusConflict
		message = err.Error()
	default:
		a.logger.ErrorContext(c.Request.Context(), fallback, "path", c.FullPath(), "err", err)
	}

	respondError(c, status, message)
}

// requireConfirm 删除操作必须带 confirm=true，对应前端的二次确认。
func requireConfirm(c *gin.Context) bool {
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); confirmed {
		return true
	}
	respondError(c, http.StatusBadRequest, "删除操作需要确认：请附带 confirm=true")
	return false
}

func parseFamilyParam(c *gin.Context) (content.Family, bool) {
	family, ok := content.ParseFamily(c.Param("family"))
	if !ok {
		respondError(c, http.StatusNotFound, "未知的分类类型")
		return "", false
	}
	return family, true
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}
