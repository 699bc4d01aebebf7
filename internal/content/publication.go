package content

import "time"

// PublicationState 表示内容的发布状态。不变量：IsPublished 为 true 当且仅当 PublishedAt 非空。
type PublicationState struct {
	IsPublished bool
	PublishedAt *time.Time
}

// Draft returns the unpublished state.
func Draft() PublicationState {
	return PublicationState{}
}

// PublishedAt returns the published state stamped at t.
func PublishedAt(t time.Time) PublicationState {
	stamp := t
	return PublicationState{IsPublished: true, PublishedAt: &stamp}
}

// Toggle 计算一次发布切换后的状态：草稿发布时记录 now，取消发布时清空发布时间。
// 重新发布总是使用新的时间戳，不保留首次发布时间。
func (s PublicationState) Toggle(now time.Time) PublicationState {
	if s.IsPublished {
		return Draft()
	}
	return PublishedAt(now)
}

// Consistent reports whether the flag and timestamp agree.
func (s PublicationState) Consistent() bool {
	return s.IsPublished == (s.PublishedAt != nil)
}

// Label returns "published" or "draft".
func (s PublicationState) Label() string {
	if s.IsPublished {
		return "published"
	}
	return "draft"
}
