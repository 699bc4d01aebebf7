package handler

import (
	"io"
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

const uploadFormField = "file"

func readUpload(c *gin.Context) (service.UploadInput, bool) {
	file, err := c.FormFile(uploadFormField)
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的文件")
		return service.UploadInput{}, false
	}
	if file.Size > service.MaxVideoBytes {
		respondError(c, http.StatusRequestEntityTooLarge, service.ErrFileTooLarge.Error())
		return service.UploadInput{}, false
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "读取上传文件失败")
		return service.UploadInput{}, false
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxVideoBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "读取上传文件失败")
		return service.UploadInput{}, false
	}
	return service.UploadInput{Filename: file.Filename, Data: data}, true
}

// UploadBlogImage 上传文章配图
func (a *API) UploadBlogImage(c *gin.Context) {
	input, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := a.uploads.Blog(c.Request.Context(), input)
	if err != nil {
		a.respondServiceError(c, err, "保存文件失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "上传成功", "upload": result})
}

// UploadGalleryMedia 上传图库媒体，kind=thumbnail 时作为视频封面
func (a *API) UploadGalleryMedia(c *gin.Context) {
	kind, ok := service.ParseUploadKind(c.Query("kind"))
	if !ok {
		respondError(c, http.StatusBadRequest, "kind 只能是 media 或 thumbnail")
		return
	}
	input, ok := readUpload(c)
	if !ok {
		return
	}

	result, err := a.uploads.Gallery(c.Request.Context(), kind, input)
	if err != nil {
		a.respondServiceError(c, err, "保存文件失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "上传成功", "upload": result})
}
