package report

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRetainsMostRecentEntries(t *testing.T) {
	m := NewMemoryStore()

	for i := 0; i < maxMemoryEntries+10; i++ {
		m.Append("u1", fmt.Sprintf("topic-%d", i), "A short overview of the topic.")
	}

	assert.Equal(t, maxMemoryEntries, m.Count("u1"))

	recent := m.Recent("u1")
	assert.Contains(t, recent, fmt.Sprintf("topic-%d", maxMemoryEntries+9))
	assert.NotContains(t, recent, "topic-0\n")
	assert.Len(t, strings.Split(recent, "\n"), recentMemoryN)
}

func TestMemoryRecentPairsTopicWithSummary(t *testing.T) {
	m := NewMemoryStore()
	m.Append("u1", "Solar Energy", "Solar adoption accelerated across residential markets.")

	recent := m.Recent("u1")
	assert.Equal(t, "Previous report on Solar Energy: Solar adoption accelerated across residential markets.", recent)
}

func TestSummarizeForMemory(t *testing.T) {
	content := "Executive Summary:\nSolar adoption accelerated sharply. Costs fell in parallel.\n\nAnalysis:\nMore detail."
	assert.Equal(t, "Solar adoption accelerated sharply.", summarizeForMemory(content))

	long := strings.Repeat("word ", 60)
	got := summarizeForMemory(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), maxMemorySummaryLen+3)

	assert.Empty(t, summarizeForMemory("Heading Only:\n"))
}

func TestMemoryStoreUnknownUser(t *testing.T) {
	m := NewMemoryStore()
	assert.Equal(t, 0, m.Count("nobody"))
	assert.Empty(t, m.Recent("nobody"))
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	m := NewMemoryStore()

	const writers = 16
	const perWriter = 8

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				m.Append("shared", fmt.Sprintf("w%d-i%d", w, i), "summary")
			}
		}(w)
	}
	wg.Wait()

	total := writers * perWriter
	want := total
	if want > maxMemoryEntries {
		want = maxMemoryEntries
	}
	assert.Equal(t, want, m.Count("shared"))
}
