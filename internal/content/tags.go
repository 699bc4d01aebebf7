package content

import "strings"

// ParseTags splits a comma separated tag field, trimming blanks. It returns nil when no tag remains.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CleanTags trims each tag and drops empty entries.
func CleanTags(tags []string) []string {
	var cleaned []string
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
