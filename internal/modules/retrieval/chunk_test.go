package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunksBlankInput(t *testing.T) {
	assert.Nil(t, SplitChunks("", 100, 20))
	assert.Nil(t, SplitChunks("  \n\t ", 100, 20))
}

func TestSplitChunksShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitChunks("a short document", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "a short document", chunks[0].Content)
}

func TestSplitChunksOverlapCarriesContext(t *testing.T) {
	words := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ")

	chunks := SplitChunks(text, 100, 40)
	require.Greater(t, len(chunks), 1)

	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.LessOrEqual(t, len([]rune(ch.Content)), 100)
	}

	// Consecutive chunks share text from the overlap window.
	tail := chunks[0].Content[len(chunks[0].Content)-10:]
	assert.Contains(t, text, tail)
}

func TestSplitChunksPrefersWhitespaceBoundaries(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 50)
	chunks := SplitChunks(text, 100, 20)
	require.NotEmpty(t, chunks)

	for _, ch := range chunks[:len(chunks)-1] {
		assert.False(t, strings.HasSuffix(ch.Content, "alph"), "chunk cut mid-word: %q", ch.Content)
	}
}

func TestSplitChunksCoversWholeDocument(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 100)
	chunks := SplitChunks(strings.TrimSpace(text), 80, 20)
	require.NotEmpty(t, chunks)

	last := chunks[len(chunks)-1].Content
	assert.True(t, strings.HasSuffix(strings.TrimSpace(text), last))
}
