package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	contentPolicy = buildContentPolicy()
)

func buildContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-embed", "data-video-platform").OnElements("div")
	policy.AllowAttrs("src").Matching(embedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// Markdown 将文章正文渲染为经过清洗的 HTML。独占一行的视频链接会被替换为嵌入播放器。
func Markdown(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(embedVideoLines(source)), &buf); err != nil {
		return "", err
	}

	return template.HTML(contentPolicy.SanitizeBytes(buf.Bytes())), nil
}

// Excerpt 返回去掉 Markdown 标记后的前 limit 个字符，用于缺省摘要与 RSS 描述。
func Excerpt(source string, limit int) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(bluemonday.StrictPolicy().Sanitize(buf.String())), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
