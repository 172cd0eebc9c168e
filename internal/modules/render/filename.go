package render

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxSlugLen = 48
	fallback   = "report"
)

// Filename derives a unique artifact name from the topic: slug, UTC
// timestamp, and a random suffix. The suffix makes concurrent calls for the
// same topic collision-free regardless of clock resolution.
func Filename(topic string) string {
	return slugify(topic) + "-" + time.Now().UTC().Format("20060102T150405") + "-" + uuid.New().String()[:8] + ".pdf"
}

func slugify(topic string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return fallback
	}
	return slug
}

// SafeName strips any path components from a client-supplied filename.
// Returns "" when the name is not a plain ".pdf" artifact name.
func SafeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return ""
	}
	if !strings.HasSuffix(name, ".pdf") {
		return ""
	}
	return name
}
