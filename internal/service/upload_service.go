package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/folio/internal/content"
	"github.com/folio/internal/storage"
)

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 200 << 20
)

var (
	ErrEmptyFile    = errors.New("uploaded file is empty")
	ErrFileTooLarge = errors.New("uploaded file is too large")
)

// UploadKind 区分图库主媒体与封面缩略图。
type UploadKind string

const (
	UploadMedia     UploadKind = "media"
	UploadThumbnail UploadKind = "thumbnail"
)

// ParseUploadKind defaults to media.
func ParseUploadKind(raw string) (UploadKind, bool) {
	switch UploadKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", UploadMedia:
		return UploadMedia, true
	case UploadThumbnail:
		return UploadThumbnail, true
	default:
		return "", false
	}
}

// UploadInput 是一次上传的文件内容。
type UploadInput struct {
	Filename string
	Data     []byte
}

// UploadResult 描述上传后的公开地址与识别出的媒体类型。
type UploadResult struct {
	URL          string            `json:"url"`
	Key          string            `json:"key"`
	ContentType  string            `json:"content_type"`
	MediaType    content.MediaType `json:"media_type"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty"`
}

// UploadService 把编辑器上传的文件写入对象存储。
type UploadService struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewUploadService creates an UploadService writing to store.
func NewUploadService(store storage.Store, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{store: store, logger: logger, now: time.Now}
}

// Blog 上传文章配图到 blog/ 目录，只接受图片。
func (s *UploadService) Blog(ctx context.Context, input UploadInput) (*UploadResult, error) {
	mime, err := checkUpload(input)
	if err != nil {
		return nil, err
	}
	if !storage.IsImage(mime) {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedMedia, mime)
	}
	return s.put(ctx, storage.FolderBlog, input, mime)
}

// Gallery 上传图库媒体。主媒体写入 gallery/，图片会额外生成缩略图写入 thumbnails/；
// 封面直接写入 thumbnails/ 且必须是图片。
func (s *UploadService) Gallery(ctx context.Context, kind UploadKind, input UploadInput) (*UploadResult, error) {
	mime, err := checkUpload(input)
	if err != nil {
		return nil, err
	}

	if kind == UploadThumbnail {
		if !storage.IsImage(mime) {
			return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedMedia, mime)
		}
		return s.put(ctx, storage.FolderThumbnails, input, mime)
	}

	if !storage.IsImage(mime) && !storage.IsVideo(mime) {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedMedia, mime)
	}
	if storage.IsVideo(mime) && len(input.Data) > MaxVideoBytes {
		return nil, ErrFileTooLarge
	}

	result, err := s.put(ctx, storage.FolderGallery, input, mime)
	if err != nil {
		return nil, err
	}
	if result.MediaType != content.MediaImage {
		return result, nil
	}

	thumb, err := storage.Thumbnail(input.Data)
	if err != nil {
		s.logger.WarnContext(ctx, "skip gallery thumbnail", "key", result.Key, "mime", mime, "err", err)
		return result, nil
	}
	thumbKey := storage.ObjectKey(storage.FolderThumbnails, "thumb.jpg", "image/jpeg", s.now())
	thumbURL, err := s.store.Put(ctx, thumbKey, bytes.NewReader(thumb), "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}
	result.ThumbnailURL = thumbURL
	return result, nil
}

func (s *UploadService) put(ctx context.Context, folder string, input UploadInput, mime string) (*UploadResult, error) {
	key := storage.ObjectKey(folder, input.Filename, mime, s.now())
	url, err := s.store.Put(ctx, key, bytes.NewReader(input.Data), mime)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	s.logger.InfoContext(ctx, "media uploaded", "key", key, "mime", mime, "bytes", len(input.Data))
	return &UploadResult{
		URL:         url,
		Key:         key,
		ContentType: mime,
		MediaType:   content.MediaTypeFromMIME(mime),
	}, nil
}

// checkUpload 识别文件真实类型并检查大小；视频的上限在调用方判断。
func checkUpload(input UploadInput) (string, error) {
	if len(input.Data) == 0 {
		return "", ErrEmptyFile
	}
	mime := storage.Sniff(input.Data)
	if !storage.IsVideo(mime) && len(input.Data) > MaxImageBytes {
		return "", ErrFileTooLarge
	}
	return mime, nil
}
