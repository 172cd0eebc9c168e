package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, contents ...string) *Index {
	t.Helper()
	chunks := make([]Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = Chunk{Index: i, Content: c}
	}
	ix, err := Build(context.Background(), chunks, HashedEmbedder{})
	require.NoError(t, err)
	return ix
}

func TestSearchRanksRelevantChunkFirst(t *testing.T) {
	ix := buildTestIndex(t,
		"solar panels convert sunlight into electricity",
		"the recipe calls for flour sugar and butter",
		"wind turbines generate power from moving air",
	)

	results, err := ix.Search(context.Background(), "solar panels electricity", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Chunk.Index)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchCapsKAtIndexSize(t *testing.T) {
	ix := buildTestIndex(t, "only one chunk here")

	results, err := ix.Search(context.Background(), "chunk", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchEmptyIndexOrZeroK(t *testing.T) {
	empty := &Index{embedder: HashedEmbedder{}}

	results, err := empty.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	ix := buildTestIndex(t, "content")
	results, err = ix.Search(context.Background(), "content", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding backend down")
}

func TestSearchDegradesWhenQueryEmbeddingFails(t *testing.T) {
	chunks := []Chunk{{Index: 0, Content: "solar power output"}}
	vectors, err := HashedEmbedder{}.Embed(context.Background(), []string{chunks[0].Content})
	require.NoError(t, err)

	ix := &Index{chunks: chunks, vectors: vectors, embedder: failingEmbedder{}}

	results, err := ix.Search(context.Background(), "solar power", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Greater(t, results[0].Score, 0.0)
}

// buildOnlyEmbedder stands in for a provider that embedded the store but is
// unreachable at query time. Its vectors are wider than the hashed space and
// carry no usable signal.
type buildOnlyEmbedder struct{}

func (buildOnlyEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 1 {
		return nil, errors.New("embedding backend down")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, 1536)
		for j := range v {
			v[j] = 1
		}
		out[i] = v
	}
	return out, nil
}

func TestSearchRescoresInHashedSpaceWhenQueryEmbeddingFails(t *testing.T) {
	chunks := []Chunk{
		{Index: 0, Content: "the recipe calls for flour sugar and butter"},
		{Index: 1, Content: "solar panels convert sunlight into electricity"},
	}
	ix, err := Build(context.Background(), chunks, buildOnlyEmbedder{})
	require.NoError(t, err)

	results, err := ix.Search(context.Background(), "solar panels electricity", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Chunk.Index)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestCosineHandlesZeroVectors(t *testing.T) {
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 2}))
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{1, 2}), 1e-9)
}
