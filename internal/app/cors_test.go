package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"example.com", "*.reports.example.com", "localhost:*"}

	assert.True(t, originAllowed(patterns, "https://example.com"))
	assert.True(t, originAllowed(patterns, "https://app.reports.example.com"))
	assert.True(t, originAllowed(patterns, "http://localhost:5173"))

	assert.False(t, originAllowed(patterns, "https://example.com.evil.net"))
	assert.False(t, originAllowed(patterns, "https://other.org"))
	assert.False(t, originAllowed(nil, "https://example.com"))
}
