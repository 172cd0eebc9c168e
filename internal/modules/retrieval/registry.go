package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
)

// ErrStoreNotFound is returned when a named store does not exist. This is the
// one retrieval error surfaced to callers.
var ErrStoreNotFound = errors.New("vector store not found")

var storeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,63}$`)

// Registry manages named, persisted vector stores. Stores are immutable after
// publish: Create builds the full index before it becomes visible to Load.
type Registry struct {
	dir      string
	embedder Embedder

	mu     sync.RWMutex
	stores map[string]*Index
}

type storeFile struct {
	Name    string      `json:"name"`
	Chunks  []Chunk     `json:"chunks"`
	Vectors [][]float32 `json:"vectors"`
}

// NewRegistry creates a registry persisting stores as JSON under dir.
func NewRegistry(dir string, embedder Embedder) *Registry {
	return &Registry{
		dir:      dir,
		embedder: embedder,
		stores:   map[string]*Index{},
	}
}

// Create chunks the document, builds an index, persists it, and publishes it
// under name. An existing store with the same name is replaced atomically.
func (r *Registry) Create(ctx context.Context, name, documentContent string) (*Index, error) {
	if !storeNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid store name %q", name)
	}
	chunks := SplitChunks(documentContent, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) == 0 {
		return nil, errors.New("document produced no chunks")
	}

	ix, err := Build(ctx, chunks, r.embedder)
	if err != nil {
		return nil, err
	}

	if err := r.persist(name, ix); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.stores[name] = ix
	r.mu.Unlock()
	return ix, nil
}

// Load returns the published index for name, rebuilding from disk if the
// process restarted since Create. Unknown names return ErrStoreNotFound.
func (r *Registry) Load(name string) (*Index, error) {
	r.mu.RLock()
	ix, ok := r.stores[name]
	r.mu.RUnlock()
	if ok {
		return ix, nil
	}

	if !storeNamePattern.MatchString(name) {
		return nil, ErrStoreNotFound
	}
	raw, err := os.ReadFile(r.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	var file storeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("corrupt vector store %q: %w", name, err)
	}

	ix = &Index{chunks: file.Chunks, vectors: file.Vectors, embedder: r.embedder}

	r.mu.Lock()
	if existing, ok := r.stores[name]; ok {
		ix = existing
	} else {
		r.stores[name] = ix
	}
	r.mu.Unlock()
	return ix, nil
}

// List returns the names of all persisted stores, sorted.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		names = append(names, name[:len(name)-len(".json")])
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) persist(name string, ix *Index) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(storeFile{Name: name, Chunks: ix.chunks, Vectors: ix.vectors})
	if err != nil {
		return err
	}

	// Write-then-rename so a crash never leaves a half-written store visible.
	tmp := r.path(name) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path(name))
}

func (r *Registry) path(name string) string {
	return filepath.Join(r.dir, name+".json")
}
