package report

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	maxMemoryUsers   = 1024
	maxMemoryEntries = 32
	recentMemoryN    = 5
)

// MemoryStore keeps a bounded per-user history of report interactions. The
// user set is capped with an LRU so long-running deployments do not grow
// without bound, and each user keeps only the most recent entries.
type MemoryStore struct {
	users *lru.Cache[string, *userMemory]
}

type userMemory struct {
	mu      sync.Mutex
	entries []memoryEntry
}

type memoryEntry struct {
	Topic   string
	Summary string
}

func NewMemoryStore() *MemoryStore {
	cache, _ := lru.New[string, *userMemory](maxMemoryUsers)
	return &MemoryStore{users: cache}
}

// Append records an interaction for the user, evicting the oldest entry once
// the per-user cap is reached.
func (m *MemoryStore) Append(userID, topic, summary string) {
	mem, ok := m.users.Get(userID)
	if !ok {
		mem = &userMemory{}
		if prev, existed, _ := m.users.PeekOrAdd(userID, mem); existed {
			mem = prev
		}
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.entries = append(mem.entries, memoryEntry{Topic: topic, Summary: summary})
	if len(mem.entries) > maxMemoryEntries {
		mem.entries = mem.entries[len(mem.entries)-maxMemoryEntries:]
	}
}

// Recent renders the user's last few interactions for prompt interpolation.
// Returns "" when the user has no history.
func (m *MemoryStore) Recent(userID string) string {
	mem, ok := m.users.Get(userID)
	if !ok {
		return ""
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()
	if len(mem.entries) == 0 {
		return ""
	}

	start := len(mem.entries) - recentMemoryN
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, entry := range mem.entries[start:] {
		fmt.Fprintf(&b, "Previous report on %s: %s\n", entry.Topic, entry.Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

const maxMemorySummaryLen = 140

// summarizeForMemory derives a one-line topical summary from report content.
// It takes the first body sentence, skipping heading lines, and truncates.
func summarizeForMemory(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, ".!?"); i >= 0 {
			line = line[:i+1]
		}
		runes := []rune(line)
		if len(runes) > maxMemorySummaryLen {
			line = string(runes[:maxMemorySummaryLen]) + "..."
		}
		return line
	}
	return ""
}

// Count returns how many entries the user currently holds.
func (m *MemoryStore) Count(userID string) int {
	mem, ok := m.users.Get(userID)
	if !ok {
		return 0
	}
	mem.mu.Lock()
	defer mem.mu.Unlock()
	return len(mem.entries)
}
