package retrieval

import (
	"context"
	"math"
	"sort"
)

// Index is an immutable similarity index over document chunks. Build it once,
// then Search concurrently without further synchronization.
type Index struct {
	chunks   []Chunk
	vectors  [][]float32
	embedder Embedder
}

// ScoredChunk is a retrieval result with its cosine similarity.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Build embeds all chunks and returns a published index. The embedder is kept
// for query-time embedding so queries and chunks share one vector space.
func Build(ctx context.Context, chunks []Chunk, embedder Embedder) (*Index, error) {
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Content
	}
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	return &Index{chunks: chunks, vectors: vectors, embedder: embedder}, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search embeds the query and returns the top-k most similar chunks, best
// first.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	if ix.Len() == 0 || k <= 0 {
		return nil, nil
	}
	vectors := ix.vectors
	var qvec []float32
	qvecs, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil || len(qvecs) == 0 {
		// The stored vectors live in the original embedder's space, so a
		// hashed query vector cannot be scored against them. Rescore both
		// sides in the hashed space instead.
		qvec = hashEmbed(query)
		vectors = make([][]float32, len(ix.chunks))
		for i, ch := range ix.chunks {
			vectors[i] = hashEmbed(ch.Content)
		}
	} else {
		qvec = qvecs[0]
	}

	scored := make([]ScoredChunk, 0, len(ix.chunks))
	for i, ch := range ix.chunks {
		scored = append(scored, ScoredChunk{Chunk: ch, Score: cosine(qvec, vectors[i])})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
