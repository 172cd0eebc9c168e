package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/reportgen/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineService() *Service {
	return NewService(config.AIConfig{EnableMemory: true}, NewMemoryStore(), nil, nil)
}

// fakeProvider spins up an openai-compatible endpoint and returns a provider
// pointing at it plus a counter of upstream calls.
func fakeProvider(t *testing.T, status int, content string) (config.AIConfig, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"choices":[{"message":{"content":` + `"` + content + `"` + `}}]}`))
			return
		}
		w.Write([]byte(`{"error":{"message":"upstream unavailable"}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.AIConfig{
		EnableMemory: true,
		Providers: []config.AIProvider{{
			ID:       "test",
			Type:     "openai-compatible",
			APIKey:   "test-key",
			Endpoint: srv.URL,
			Enabled:  true,
		}},
	}
	return cfg, &calls
}

func TestGenerateBasicWithoutProviderUsesDemoContent(t *testing.T) {
	svc := newOfflineService()

	result, err := svc.GenerateBasic(context.Background(), "Quantum Computing")
	require.NoError(t, err)
	assert.Equal(t, MethodDemoFallback, result.GenerationMethod)
	assert.Contains(t, result.Content, "Quantum Computing")
}

func TestGeneratedContentKeepsSectionOrder(t *testing.T) {
	svc := newOfflineService()

	result, err := svc.GenerateBasic(context.Background(), "Renewable Energy")
	require.NoError(t, err)

	pos := -1
	for _, title := range reportSections {
		idx := strings.Index(result.Content, title+":")
		require.GreaterOrEqual(t, idx, 0, "missing section %q", title)
		assert.Greater(t, idx, pos, "section %q out of order", title)
		pos = idx
	}
}

func TestGenerateBasicEmptyTopicIsValidationError(t *testing.T) {
	svc := newOfflineService()

	_, err := svc.GenerateBasic(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateBasicUsesProviderWhenAvailable(t *testing.T) {
	cfg, calls := fakeProvider(t, http.StatusOK, "Generated analysis text.")
	svc := NewService(cfg, NewMemoryStore(), nil, nil)

	result, err := svc.GenerateBasic(context.Background(), "AI Chips")
	require.NoError(t, err)
	assert.Equal(t, MethodBasic, result.GenerationMethod)
	assert.Equal(t, "Generated analysis text.", result.Content)
	assert.EqualValues(t, 1, *calls)
}

func TestProviderFailureDegradesWithoutError(t *testing.T) {
	cfg, calls := fakeProvider(t, http.StatusInternalServerError, "")
	svc := NewService(cfg, NewMemoryStore(), nil, nil)

	result, err := svc.GenerateBasic(context.Background(), "AI Chips")
	require.NoError(t, err)
	assert.Equal(t, MethodDemoFallback, result.GenerationMethod)
	assert.NotEmpty(t, result.Content)
	assert.EqualValues(t, 1, *calls)
}

func TestComparativeRejectsFewerThanTwoTopicsBeforeAnyCall(t *testing.T) {
	cfg, calls := fakeProvider(t, http.StatusOK, "unused")
	svc := NewService(cfg, NewMemoryStore(), nil, nil)

	_, err := svc.GenerateComparative(context.Background(), []string{"Solo", "  "}, "market")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualValues(t, 0, *calls)
}

func TestComparativeUnknownAnalysisTypeFallsBackToComprehensive(t *testing.T) {
	svc := newOfflineService()

	result, err := svc.GenerateComparative(context.Background(), []string{"Go", "Rust"}, "made-up")
	require.NoError(t, err)
	assert.Equal(t, MethodDemoFallback, result.GenerationMethod)
	assert.Contains(t, result.Content, "comprehensive")
}

func TestMarketAnalysisUnknownFocusFallsBackToGlobal(t *testing.T) {
	svc := newOfflineService()

	result, err := svc.MarketAnalysis(context.Background(), "Smart Grids", "mars")
	require.NoError(t, err)
	assert.Contains(t, result.Content, "global")
}

func TestDocumentBasedEmptyDocumentDegradesToBasicReport(t *testing.T) {
	svc := newOfflineService()

	for _, doc := range []string{"", "\n\t  "} {
		result, err := svc.GenerateDocumentBased(context.Background(), "Quantum Computing", doc, "")
		require.NoError(t, err)
		assert.Equal(t, MethodDemoFallback, result.GenerationMethod)
		assert.Contains(t, result.Content, "Quantum Computing")
		for _, section := range reportSections {
			assert.Contains(t, result.Content, section+":")
		}
	}
}

func TestDocumentBasedEmptyDocumentUsesBasicPromptUpstream(t *testing.T) {
	cfg, calls := fakeProvider(t, http.StatusOK, "Plain report body.")
	svc := NewService(cfg, NewMemoryStore(), nil, nil)

	result, err := svc.GenerateDocumentBased(context.Background(), "Quantum Computing", "", "")
	require.NoError(t, err)
	assert.Equal(t, MethodBasic, result.GenerationMethod)
	assert.EqualValues(t, 1, *calls)
}

func TestDocumentBasedAdHocIndexNeverErrors(t *testing.T) {
	svc := newOfflineService()

	doc := strings.Repeat("Battery storage capacity grew last year. ", 200)
	result, err := svc.GenerateDocumentBased(context.Background(), "Battery storage", doc, "")
	require.NoError(t, err)
	assert.Equal(t, MethodDemoFallback, result.GenerationMethod)
	assert.NotEmpty(t, result.Content)
}

func TestSummarizeComputesCompressionRatio(t *testing.T) {
	svc := newOfflineService()

	full := strings.Repeat("Detailed findings about the sector. ", 100)
	out, err := svc.Summarize(context.Background(), full)
	require.NoError(t, err)
	assert.Equal(t, len(full), out.OriginalLength)
	assert.Equal(t, len(out.Summary), out.SummaryLength)
	require.NotNil(t, out.CompressionRatio)
	assert.InDelta(t, float64(out.OriginalLength)/float64(out.SummaryLength), *out.CompressionRatio, 1e-9)
}

func TestSummarizeEmptyReportIsValidationError(t *testing.T) {
	svc := newOfflineService()

	_, err := svc.Summarize(context.Background(), "\n\t ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEnhancedWithMemoryTagsAndRecords(t *testing.T) {
	svc := newOfflineService()

	first, err := svc.GenerateEnhanced(context.Background(), "user-1", "Topic A", "", false)
	require.NoError(t, err)
	assert.Equal(t, MethodDemoFallback, first.GenerationMethod)
	assert.Equal(t, 1, svc.memory.Count("user-1"))

	cfg, _ := fakeProvider(t, http.StatusOK, "Personalized report.")
	svc = NewService(cfg, svc.memory, nil, nil)

	second, err := svc.GenerateEnhanced(context.Background(), "user-1", "Topic B", "", true)
	require.NoError(t, err)
	assert.Equal(t, MethodMemory, second.GenerationMethod)
	assert.Equal(t, 2, svc.memory.Count("user-1"))
}

func TestStatusReflectsProviderAvailability(t *testing.T) {
	offline := newOfflineService()
	st := offline.Status()
	assert.True(t, st.BasicAvailable)
	assert.False(t, st.AdvancedAvailable)
	assert.Contains(t, st.SupportedMethods, MethodDemoFallback)

	cfg, _ := fakeProvider(t, http.StatusOK, "x")
	online := NewService(cfg, NewMemoryStore(), nil, nil)
	assert.True(t, online.Status().AdvancedAvailable)
}
