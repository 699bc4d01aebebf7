// Package storage holds the object stores uploaded media is written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Folders inside the media bucket.
const (
	FolderBlog       = "blog"
	FolderGallery    = "gallery"
	FolderThumbnails = "thumbnails"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrObjectNotFound   = errors.New("object not found")
	ErrInvalidKey       = errors.New("invalid object key")
)

// Store 是对象存储的最小接口：上传成功后返回可公开访问的 URL。
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ObjectKey 生成 <folder>/<yyyymmdd>-<uuid><ext> 形式的对象键。
func ObjectKey(folder, filename, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" && contentType != "" {
		if mt := mimetype.Lookup(contentType); mt != nil {
			ext = mt.Extension()
		}
	}
	name := fmt.Sprintf("%s-%s%s", now.Format("20060102"), uuid.NewString(), ext)
	return path.Join(folder, name)
}

// Sniff 根据文件内容识别 MIME 类型，不信任客户端上报的 Content-Type。
func Sniff(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImage reports whether a MIME type is an image.
func IsImage(mime string) bool {
	return strings.HasPrefix(baseMIME(mime), "image/")
}

// IsVideo reports whether a MIME type is a video.
func IsVideo(mime string) bool {
	return strings.HasPrefix(baseMIME(mime), "video/")
}

func baseMIME(mime string) string {
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)
	if cleaned == "/" {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(cleaned, "/"), nil
}
