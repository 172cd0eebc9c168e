package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnalysisType(t *testing.T) {
	assert.Equal(t, "market", normalizeAnalysisType("Market"))
	assert.Equal(t, "strategic", normalizeAnalysisType(" strategic "))
	assert.Equal(t, "comprehensive", normalizeAnalysisType(""))
	assert.Equal(t, "comprehensive", normalizeAnalysisType("bogus"))
}

func TestNormalizeMarketFocus(t *testing.T) {
	assert.Equal(t, "asia_pacific", normalizeMarketFocus("ASIA_PACIFIC"))
	assert.Equal(t, "global", normalizeMarketFocus(""))
	assert.Equal(t, "global", normalizeMarketFocus("antarctica"))
}

func TestPromptsCarryEverySectionHeading(t *testing.T) {
	prompts := []string{
		buildBasicPrompt("EV batteries"),
		buildEnhancedPrompt("EV batteries", "", ""),
		buildComparativePrompt([]string{"A", "B"}, "financial"),
		buildDocumentPrompt("EV batteries", []string{"passage one"}),
		buildMarketPrompt("EV batteries", "europe"),
	}
	for _, prompt := range prompts {
		for _, title := range reportSections {
			assert.Contains(t, prompt, title+":")
		}
	}
}

func TestBuildDocumentPromptWithoutPassages(t *testing.T) {
	prompt := buildDocumentPrompt("Topic", nil)
	assert.Contains(t, prompt, "No relevant passages found.")
}

func TestBuildSummaryPromptTruncatesLongReports(t *testing.T) {
	long := strings.Repeat("x", 20000)
	prompt := buildSummaryPrompt(long)
	assert.Less(t, len(prompt), 13000)
	assert.Contains(t, prompt, "...")
}
