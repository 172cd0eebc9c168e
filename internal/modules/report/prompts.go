package report

import (
	"fmt"
	"strings"
)

// reportSections lists the headings every generated report must carry,
// in order.
var reportSections = []string{
	"Executive Summary",
	"Analysis",
	"Key Findings",
	"Recommendations",
	"Conclusion",
}

const analystSystemPrompt = "You are a professional research analyst creating detailed, well-structured reports."

var analysisTypes = map[string]bool{
	"comprehensive": true,
	"market":        true,
	"technology":    true,
	"financial":     true,
	"strategic":     true,
}

var marketFocuses = map[string]bool{
	"global":             true,
	"north_america":      true,
	"europe":             true,
	"asia_pacific":       true,
	"latin_america":      true,
	"middle_east_africa": true,
}

// normalizeAnalysisType maps unknown or empty values to "comprehensive".
func normalizeAnalysisType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if analysisTypes[t] {
		return t
	}
	return "comprehensive"
}

// normalizeMarketFocus maps unknown or empty values to "global".
func normalizeMarketFocus(raw string) string {
	f := strings.ToLower(strings.TrimSpace(raw))
	if marketFocuses[f] {
		return f
	}
	return "global"
}

func sectionInstructions() string {
	var b strings.Builder
	b.WriteString("Structure the report with exactly these sections, in this order, each heading ending with a colon:\n")
	for _, title := range reportSections {
		fmt.Fprintf(&b, "%s:\n", title)
	}
	b.WriteString("\nMake the report professional, data-driven, and actionable.")
	return b.String()
}

func buildBasicPrompt(topic string) string {
	return fmt.Sprintf(`Create a comprehensive, detailed research report on the topic: %q

%s`, topic, sectionInstructions())
}

func buildEnhancedPrompt(topic, additionalContext, userMemory string) string {
	if strings.TrimSpace(additionalContext) == "" {
		additionalContext = "No additional context provided."
	}
	if strings.TrimSpace(userMemory) == "" {
		userMemory = "No user memory available."
	}
	return fmt.Sprintf(`Create an enhanced research report on %q that incorporates the provided context and user history.

Additional Context: %s

User History: %s

%s`, topic, additionalContext, userMemory, sectionInstructions())
}

func buildComparativePrompt(topics []string, analysisType string) string {
	return fmt.Sprintf(`Create a comparative %s analysis of the following topics: %s.

Compare and contrast the topics across market position, strengths, weaknesses, and outlook. Include a dedicated comparison for each topic, then a cross-topic synthesis.

%s`, analysisType, strings.Join(topics, ", "), sectionInstructions())
}

func buildDocumentPrompt(topic string, passages []string) string {
	context := "No relevant passages found."
	if len(passages) > 0 {
		context = strings.Join(passages, "\n\n---\n\n")
	}
	return fmt.Sprintf(`Create a research report on %q grounded in the following document passages. Base your analysis on the passages, and say so explicitly where they are silent.

Document Passages:
%s

%s`, topic, context, sectionInstructions())
}

func buildSummaryPrompt(fullReport string) string {
	return fmt.Sprintf(`Summarize the following report into a concise executive brief. Preserve the key findings and recommendations. Keep it under 300 words.

Report:
%s`, truncateText(fullReport, 12000))
}

func buildMarketPrompt(topic, marketFocus string) string {
	return fmt.Sprintf(`Create a market analysis report on %q with a %s focus.

Cover market size and growth, key players and competitive dynamics, regional considerations for the %s market, risks, and opportunities.

%s`, topic, strings.ReplaceAll(marketFocus, "_", " "), strings.ReplaceAll(marketFocus, "_", " "), sectionInstructions())
}
