package report

import (
	"fmt"
	"strings"
)

// Demo content used whenever the AI provider is unavailable or fails. Every
// generation path degrades to one of these templates instead of returning an
// error.

func demoContent(topic string) string {
	return fmt.Sprintf(`Executive Summary:
This report provides a comprehensive analysis of %[1]s, examining current trends, challenges, and opportunities in this dynamic field. Our analysis reveals significant developments that warrant attention from stakeholders and decision-makers.

Analysis:
The current state of %[1]s is characterized by rapid evolution and innovation. Key players are investing heavily in research and development, and market adoption rates show consistent upward trends. Regulatory frameworks continue to mature alongside the technology, while the competitive landscape intensifies as new entrants challenge established positions.

Key Findings:
1. Market Growth: The sector has experienced sustained growth, with projections indicating continued expansion over the next five years.
2. Technology Advancement: Significant breakthroughs have improved efficiency, accuracy, and accessibility.
3. Industry Adoption: Major organizations across sectors are implementing solutions related to %[1]s, driving mainstream acceptance.
4. Evolving Demand: End-user preferences are shifting, creating new opportunities for innovation and service delivery.

Recommendations:
1. Investment Strategy: Consider strategic investments in %[1]s to maintain competitive advantage.
2. Skill Development: Invest in training programs to build internal capabilities.
3. Partnership Opportunities: Explore collaboration with technology providers and industry leaders.
4. Risk Management: Develop comprehensive risk assessment and mitigation strategies.

Conclusion:
%[1]s represents a significant opportunity for organizations willing to embrace innovation and adapt to changing market conditions. Success requires a balanced approach that considers technological capabilities, market dynamics, regulatory requirements, and organizational readiness.`, topic)
}

func demoComparativeContent(topics []string, analysisType string) string {
	var perTopic strings.Builder
	for i, topic := range topics {
		fmt.Fprintf(&perTopic, "%d. %s: shows steady development with distinct strengths in its segment, facing the sector-wide pressures of regulation, talent, and competition.\n", i+1, topic)
	}
	joined := strings.Join(topics, ", ")
	return fmt.Sprintf(`Executive Summary:
This %[1]s comparative analysis examines %[2]s side by side, identifying relative strengths, weaknesses, and strategic positions.

Analysis:
Each subject occupies a distinct position in its landscape:
%[3]s
Cross-topic synthesis shows convergent pressures across all subjects, with differentiation driven primarily by execution and market timing.

Key Findings:
1. All compared subjects face a common set of structural forces while differing in maturity and momentum.
2. Competitive advantage correlates with sustained investment in core capabilities.
3. No single subject dominates across every evaluated dimension.

Recommendations:
1. Weigh the trade-offs between the subjects against your specific strategic priorities.
2. Monitor the fastest-moving subject for early signals of broader shifts.
3. Revisit this comparison periodically as the landscape evolves.

Conclusion:
The comparison of %[2]s highlights that relative position is dynamic. Decisions should rest on the dimensions that matter most to the decision-maker rather than on aggregate standing.`, analysisType, joined, perTopic.String())
}

func demoDocumentContent(topic string, passages []string) string {
	grounding := "No document passages were available for grounding."
	if len(passages) > 0 {
		grounding = fmt.Sprintf("This report draws on %d passages retrieved from the supplied document.", len(passages))
	}
	return fmt.Sprintf(`Executive Summary:
This report analyzes %[1]s based on the supplied document. %[2]s

Analysis:
The document material relevant to %[1]s was reviewed and organized thematically. Where the document is silent, general domain knowledge fills the gaps and is noted as such.

Key Findings:
1. The supplied material addresses core aspects of %[1]s.
2. Several themes recur across the retrieved passages, suggesting areas of emphasis in the source.
3. Gaps remain where the document does not cover the topic in depth.

Recommendations:
1. Review the source document directly for details beyond this summary.
2. Supplement the document with external research where gaps were identified.

Conclusion:
The document provides a usable foundation for understanding %[1]s, and this report organizes its content into an actionable structure.`, topic, grounding)
}

func demoMarketContent(topic, marketFocus string) string {
	focus := strings.ReplaceAll(marketFocus, "_", " ")
	return fmt.Sprintf(`Executive Summary:
This market analysis examines %[1]s with a %[2]s focus, covering market dynamics, competition, and outlook.

Analysis:
The %[2]s market for %[1]s shows sustained demand with regional variation in adoption and regulation. Established players hold significant share while new entrants compete on innovation and price. Supply chains and distribution continue to adapt to shifting conditions.

Key Findings:
1. Market Size: The %[2]s market demonstrates steady growth with room for expansion.
2. Competition: The competitive field is consolidating around a small set of leaders.
3. Regulation: Regional regulatory differences materially affect market entry strategy.

Recommendations:
1. Prioritize segments within the %[2]s market showing the strongest demand signals.
2. Build regulatory awareness into expansion planning.
3. Track competitor positioning quarterly.

Conclusion:
%[1]s presents meaningful opportunity in the %[2]s market for organizations that match their entry strategy to regional conditions.`, topic, focus)
}

func demoSummaryContent(fullReport string) string {
	trimmed := strings.TrimSpace(fullReport)
	preview := truncateText(trimmed, 400)
	return fmt.Sprintf(`Executive Brief:
This is a condensed summary of the supplied report. The full report covers the subject in greater depth; the opening reads: %q

The report's structure suggests its key findings and recommendations are concentrated in the later sections. Consult the full document for supporting detail.`, preview)
}
