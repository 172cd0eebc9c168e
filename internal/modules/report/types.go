package report

import "errors"

// Generation method tags. Callers and the ledger use these for transparency
// only, never for control flow.
const (
	MethodBasic          = "basic_ai"
	MethodEnhanced       = "enhanced_with_context"
	MethodMemory         = "enhanced_with_memory"
	MethodComparative    = "comparative_ai"
	MethodDocument       = "document_based"
	MethodMarketAnalysis = "market_analysis"
	MethodDemoFallback   = "demo_fallback"
)

// ErrValidation marks malformed input rejected before any provider call.
var ErrValidation = errors.New("validation failed")

// Result is the synthesizer output for one generation call.
type Result struct {
	Content          string
	GenerationMethod string
}

// SummaryResult is the executive-summary output. CompressionRatio is nil when
// the summary is empty (the ratio is undefined, not zero).
type SummaryResult struct {
	Summary          string   `json:"summary"`
	OriginalLength   int      `json:"original_length"`
	SummaryLength    int      `json:"summary_length"`
	CompressionRatio *float64 `json:"compression_ratio,omitempty"`
}

// Status describes which generation features are currently usable.
type Status struct {
	BasicAvailable       bool     `json:"basic_available"`
	AdvancedAvailable    bool     `json:"advanced_available"`
	MemoryEnabled        bool     `json:"memory_enabled"`
	VectorStoreAvailable bool     `json:"vector_store_available"`
	SupportedMethods     []string `json:"supported_methods"`
}

type generateDTO struct {
	Topic string `json:"topic" binding:"required"`
}

type enhancedDTO struct {
	Topic             string `json:"topic" binding:"required"`
	AdditionalContext string `json:"additional_context"`
	IncludeMemory     bool   `json:"include_memory"`
}

type comparativeDTO struct {
	Topics       []string `json:"topics" binding:"required"`
	AnalysisType string   `json:"analysis_type"`
}

type documentDTO struct {
	Topic           string `json:"topic" binding:"required"`
	DocumentContent string `json:"document_content"`
	StoreName       string `json:"store_name"`
}

type summaryDTO struct {
	FullReport string `json:"full_report" binding:"required"`
}

type marketDTO struct {
	Topic       string `json:"topic" binding:"required"`
	MarketFocus string `json:"market_focus"`
}

type createStoreDTO struct {
	Name            string `json:"name" binding:"required"`
	DocumentContent string `json:"document_content" binding:"required"`
}

type generationResponse struct {
	Content          string `json:"content"`
	Filename         string `json:"filename"`
	GenerationMethod string `json:"generation_method"`
}
