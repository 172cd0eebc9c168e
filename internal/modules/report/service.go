package report

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/reportgen/core/internal/config"
	"github.com/reportgen/core/internal/modules/retrieval"
	"go.uber.org/zap"
)

const documentTopK = 5

// Service synthesizes report content. Every generation path that reaches the
// AI provider absorbs provider failures and degrades to demo content; the
// only errors it returns are validation errors and store lookups.
type Service struct {
	ai       appcfg.AIConfig
	memory   *MemoryStore
	registry *retrieval.Registry
	logger   *zap.Logger
}

func NewService(ai appcfg.AIConfig, memory *MemoryStore, registry *retrieval.Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ai: ai, memory: memory, registry: registry, logger: logger}
}

// attempt calls the configured provider and falls back to the supplied demo
// content on any failure.
func (s *Service) attempt(ctx context.Context, prompt, method, fallback string) Result {
	provider := selectAIProvider(s.ai, s.ai.ReportModel)
	if provider == nil {
		return Result{Content: fallback, GenerationMethod: MethodDemoFallback}
	}

	content, err := callAI(ctx, provider, analystSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("AI generation failed, using demo content",
			zap.String("provider", provider.ID),
			zap.String("method", method),
			zap.Error(err))
		return Result{Content: fallback, GenerationMethod: MethodDemoFallback}
	}
	return Result{Content: content, GenerationMethod: method}
}

func (s *Service) GenerateBasic(ctx context.Context, topic string) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	return s.attempt(ctx, buildBasicPrompt(topic), MethodBasic, demoContent(topic)), nil
}

func (s *Service) GenerateEnhanced(ctx context.Context, userID, topic, additionalContext string, includeMemory bool) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	method := MethodEnhanced
	userMemory := ""
	if includeMemory && s.ai.EnableMemory && s.memory != nil && userID != "" {
		method = MethodMemory
		userMemory = s.memory.Recent(userID)
	}

	result := s.attempt(ctx, buildEnhancedPrompt(topic, additionalContext, userMemory), method, demoContent(topic))

	if s.ai.EnableMemory && s.memory != nil && userID != "" {
		s.memory.Append(userID, topic, summarizeForMemory(result.Content))
	}
	return result, nil
}

func (s *Service) GenerateComparative(ctx context.Context, topics []string, analysisType string) (Result, error) {
	cleaned := make([]string, 0, len(topics))
	for _, topic := range topics {
		if t := strings.TrimSpace(topic); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) < 2 {
		return Result{}, fmt.Errorf("%w: at least 2 topics are required", ErrValidation)
	}

	at := normalizeAnalysisType(analysisType)
	return s.attempt(ctx, buildComparativePrompt(cleaned, at), MethodComparative, demoComparativeContent(cleaned, at)), nil
}

// GenerateDocumentBased grounds the report in a named vector store, or in an
// ad-hoc index built from the supplied document content. An empty document
// that yields no chunks degrades to the plain report path. A missing named
// store is the one lookup error surfaced to the caller.
func (s *Service) GenerateDocumentBased(ctx context.Context, topic, documentContent, storeName string) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	var index *retrieval.Index
	if name := strings.TrimSpace(storeName); name != "" {
		if s.registry == nil {
			return Result{}, retrieval.ErrStoreNotFound
		}
		ix, err := s.registry.Load(name)
		if err != nil {
			return Result{}, err
		}
		index = ix
	} else {
		chunks := retrieval.SplitChunks(documentContent, retrieval.DefaultChunkSize, retrieval.DefaultChunkOverlap)
		if len(chunks) == 0 {
			return s.attempt(ctx, buildBasicPrompt(topic), MethodBasic, demoContent(topic)), nil
		}
		ix, err := retrieval.Build(ctx, chunks, retrieval.HashedEmbedder{})
		if err != nil {
			s.logger.Warn("ad-hoc index build failed", zap.Error(err))
			return s.attempt(ctx, buildBasicPrompt(topic), MethodBasic, demoContent(topic)), nil
		}
		index = ix
	}

	passages := s.retrievePassages(ctx, topic, index)
	return s.attempt(ctx, buildDocumentPrompt(topic, passages), MethodDocument, demoDocumentContent(topic, passages)), nil
}

func (s *Service) retrievePassages(ctx context.Context, topic string, index *retrieval.Index) []string {
	scored, err := index.Search(ctx, topic, documentTopK)
	if err != nil {
		s.logger.Warn("passage search failed", zap.Error(err))
		return nil
	}

	passages := make([]string, 0, len(scored))
	for _, sc := range scored {
		passages = append(passages, sc.Chunk.Content)
	}
	return passages
}

func (s *Service) Summarize(ctx context.Context, fullReport string) (SummaryResult, error) {
	if strings.TrimSpace(fullReport) == "" {
		return SummaryResult{}, fmt.Errorf("%w: full_report is required", ErrValidation)
	}

	result := s.attempt(ctx, buildSummaryPrompt(fullReport), MethodBasic, demoSummaryContent(fullReport))

	out := SummaryResult{
		Summary:        result.Content,
		OriginalLength: len(fullReport),
		SummaryLength:  len(result.Content),
	}
	if out.SummaryLength > 0 {
		ratio := float64(out.OriginalLength) / float64(out.SummaryLength)
		out.CompressionRatio = &ratio
	}
	return out, nil
}

func (s *Service) MarketAnalysis(ctx context.Context, topic, marketFocus string) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	focus := normalizeMarketFocus(marketFocus)
	return s.attempt(ctx, buildMarketPrompt(topic, focus), MethodMarketAnalysis, demoMarketContent(topic, focus)), nil
}

// Status reports which generation features are usable right now.
func (s *Service) Status() Status {
	providerAvailable := selectAIProvider(s.ai, s.ai.ReportModel) != nil
	return Status{
		BasicAvailable:       true,
		AdvancedAvailable:    providerAvailable,
		MemoryEnabled:        s.ai.EnableMemory && s.memory != nil,
		VectorStoreAvailable: s.ai.EnableVector && s.registry != nil,
		SupportedMethods: []string{
			MethodBasic,
			MethodEnhanced,
			MethodMemory,
			MethodComparative,
			MethodDocument,
			MethodMarketAnalysis,
			MethodDemoFallback,
		},
	}
}
