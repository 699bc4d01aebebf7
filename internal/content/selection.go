package content

import (
	"strings"
)

// Family distinguishes the two independent content families and their category sets.
type Family string

const (
	FamilyBlog    Family = "blog"
	FamilyGallery Family = "gallery"
)

// ParseFamily validates a family name.
func ParseFamily(raw string) (Family, bool) {
	switch Family(strings.ToLower(strings.TrimSpace(raw))) {
	case FamilyBlog:
		return FamilyBlog, true
	case FamilyGallery:
		return FamilyGallery, true
	default:
		return "", false
	}
}

// MediaType is the kind of a gallery item.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ParseMediaType accepts "image" or "video"; an empty value defaults to image.
func ParseMediaType(raw string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MediaImage:
		return MediaImage, true
	case MediaVideo:
		return MediaVideo, true
	default:
		return "", false
	}
}

// MediaTypeFromMIME maps a MIME type to the gallery media kind.
func MediaTypeFromMIME(mime string) MediaType {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mime)), "video/") {
		return MediaVideo
	}
	return MediaImage
}

// Selector values understood by ParseSelection.
const (
	SelectorAll    = "all"
	SelectorImages = "images"
	SelectorVideos = "videos"
)

type selectionKind int

const (
	selectAll selectionKind = iota
	selectCategory
	selectMedia
)

// Selection 是公共列表的筛选状态：全部、某个分类，或（仅图库）按媒体类型筛选的伪分类。
type Selection struct {
	kind       selectionKind
	categoryID string
	media      MediaType
}

// All is the identity selection.
func All() Selection {
	return Selection{kind: selectAll}
}

// InCategory selects records whose category reference equals id.
func InCategory(id string) Selection {
	id = strings.TrimSpace(id)
	if id == "" {
		return All()
	}
	return Selection{kind: selectCategory, categoryID: id}
}

// OfMedia selects gallery items of the given media type regardless of category.
func OfMedia(media MediaType) Selection {
	return Selection{kind: selectMedia, media: media}
}

// ParseSelection 解析前端选择器的值。"all" 或空值表示全部；图库额外支持 "images"/"videos"；
// 其余值都按分类 ID 处理。
func ParseSelection(raw string, family Family) Selection {
	value := strings.TrimSpace(raw)
	switch strings.ToLower(value) {
	case "", SelectorAll:
		return All()
	}

	if family == FamilyGallery {
		switch strings.ToLower(value) {
		case SelectorImages:
			return OfMedia(MediaImage)
		case SelectorVideos:
			return OfMedia(MediaVideo)
		}
	}

	return InCategory(value)
}

// IsAll reports whether the selection is the identity filter.
func (s Selection) IsAll() bool {
	return s.kind == selectAll
}

// CategoryID returns the selected category id, if any.
func (s Selection) CategoryID() (string, bool) {
	return s.categoryID, s.kind == selectCategory
}

// Media returns the selected media type, if any.
func (s Selection) Media() (MediaType, bool) {
	return s.media, s.kind == selectMedia
}

// String renders the selection back into selector form.
func (s Selection) String() string {
	switch s.kind {
	case selectCategory:
		return s.categoryID
	case selectMedia:
		if s.media == MediaVideo {
			return SelectorVideos
		}
		return SelectorImages
	default:
		return SelectorAll
	}
}

// Matches applies the selection to a single record.
func (s Selection) Matches(r Record) bool {
	switch s.kind {
	case selectCategory:
		return r.CategoryRef().Is(s.categoryID)
	case selectMedia:
		return r.Media() == s.media
	default:
		return true
	}
}
