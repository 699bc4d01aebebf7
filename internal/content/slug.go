package content

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify 将标题转换为 URL 安全的 slug：转小写，连续的非 [a-z0-9] 字符折叠为单个连字符，
// 并去掉首尾的连字符。对已经生成的 slug 再次调用结果不变。
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	inRun := false
	for i := 0; i < len(lower); i++ {
		ch := lower[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteByte(ch)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}

	slug := b.String()
	slug = strings.TrimPrefix(slug, "-")
	slug = strings.TrimSuffix(slug, "-")
	return slug
}

// ValidSlug reports whether s is a non-empty, URL-safe slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
