package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameShape(t *testing.T) {
	name := Filename("Quantum Computing: 2026 Outlook")
	assert.True(t, strings.HasPrefix(name, "quantum-computing-2026-outlook-"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, " ")
	assert.Equal(t, name, SafeName(name))
}

func TestFilenameUniqueForSameTopic(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := Filename("same topic")
		assert.False(t, seen[name], "duplicate filename %q", name)
		seen[name] = true
	}
}

func TestSlugifyEdgeCases(t *testing.T) {
	assert.Equal(t, "report", slugify("!!! ???"))
	assert.Equal(t, "report", slugify(""))
	assert.Equal(t, "ai-trends", slugify("  AI //  Trends  "))
	assert.LessOrEqual(t, len(slugify(strings.Repeat("verylongtopic", 20))), maxSlugLen)
}

func TestSafeNameRejectsTraversal(t *testing.T) {
	for _, name := range []string{
		"../secret.pdf",
		"a/b.pdf",
		`a\b.pdf`,
		"plain.txt",
		"",
		"  ",
		"no-extension",
	} {
		assert.Empty(t, SafeName(name), "name %q should be rejected", name)
	}
	assert.Equal(t, "fine-20260101T000000-abcd1234.pdf", SafeName("fine-20260101T000000-abcd1234.pdf"))
}
