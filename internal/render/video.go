package render

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	PlatformYouTube = "youtube"
	PlatformVimeo   = "vimeo"
)

var (
	embedSrcPattern    = regexp.MustCompile(`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
	youtubeIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	youtubeTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	bareURLLinePattern = regexp.MustCompile(`^\s*<?(https?://\S+?)>?\s*$`)
)

// VideoEmbed 描述一个可嵌入播放的外部视频。
type VideoEmbed struct {
	Platform string `json:"platform"`
	Source   string `json:"source"`
	EmbedURL string `json:"embed_url"`
}

// ParseVideoEmbed 识别 YouTube 与 Vimeo 链接并返回对应的嵌入地址；其他链接返回 false。
func ParseVideoEmbed(raw string) (VideoEmbed, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return VideoEmbed{}, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return VideoEmbed{}, false
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	switch {
	case host == "youtu.be" || host == "youtube.com" || host == "m.youtube.com" || host == "youtube-nocookie.com":
		return parseYouTube(u, host, raw)
	case host == "vimeo.com" || host == "player.vimeo.com":
		return parseVimeo(u, raw)
	default:
		return VideoEmbed{}, false
	}
}

func parseYouTube(u *url.URL, host, source string) (VideoEmbed, bool) {
	var id string
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case host == "youtu.be":
		id = segments[0]
	case segments[0] == "watch":
		id = u.Query().Get("v")
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live"):
		id = segments[1]
	}

	if !youtubeIDPattern.MatchString(id) {
		return VideoEmbed{}, false
	}

	embed := "https://www.youtube-nocookie.com/embed/" + id
	if start := youtubeStart(u.Query()); start > 0 {
		embed += "?start=" + strconv.Itoa(start)
	}
	return VideoEmbed{Platform: PlatformYouTube, Source: source, EmbedURL: embed}, true
}

func youtubeStart(q url.Values) int {
	value := q.Get("t")
	if value == "" {
		value = q.Get("start")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(value, "s")); err == nil {
		return n
	}

	total := 0
	for _, match := range youtubeTimePattern.FindAllStringSubmatch(value, -1) {
		n, _ := strconv.Atoi(match[1])
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		default:
			total += n
		}
	}
	return total
}

func parseVimeo(u *url.URL, source string) (VideoEmbed, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" || !isDigits(id) {
		return VideoEmbed{}, false
	}
	return VideoEmbed{Platform: PlatformVimeo, Source: source, EmbedURL: "https://player.vimeo.com/video/" + id}, true
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

// embedVideoLines 把围栏代码块之外、独占一行的视频链接替换为 iframe。
func embedVideoLines(markdown string) string {
	lines := strings.Split(markdown, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			marker := trimmed[:3]
			switch {
			case fence == "":
				fence = marker
			case fence == marker:
				fence = ""
			}
			continue
		}
		if fence != "" || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		match := bareURLLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		embed, ok := ParseVideoEmbed(match[1])
		if !ok {
			continue
		}
		lines[i] = embedHTML(embed)
	}
	return strings.Join(lines, "\n")
}

func embedHTML(embed VideoEmbed) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-embed="true" data-video-platform="%s"><iframe src="%s" title="%s video" loading="lazy" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen="true" referrerpolicy="strict-origin-when-cross-origin"></iframe></div>`,
		htmlstd.EscapeString(embed.Platform),
		htmlstd.EscapeString(embed.EmbedURL),
		htmlstd.EscapeString(embed.Platform),
	)
}
