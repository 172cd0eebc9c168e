package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one titled block of a report body.
type Section struct {
	Title      string
	Paragraphs []string
}

// ParseSections splits report content into titled sections. Markdown headings
// take precedence; plain reports using "Heading:" lines are handled next;
// anything else becomes a single untitled section. No text is ever dropped.
func ParseSections(content string) []Section {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if sections := parseMarkdownSections(content); len(sections) > 0 {
		return sections
	}
	if sections := parseColonSections(content); len(sections) > 0 {
		return sections
	}
	return []Section{{Title: "Report", Paragraphs: splitParagraphs(content)}}
}

func parseMarkdownSections(content string) []Section {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var sections []Section
	var current *Section
	sawHeading := false

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			sawHeading = true
			sections = append(sections, Section{Title: strings.TrimSpace(nodeText(n, source))})
			current = &sections[len(sections)-1]
		default:
			para := strings.TrimSpace(nodeText(node, source))
			if para == "" {
				continue
			}
			if current == nil {
				sections = append(sections, Section{})
				current = &sections[len(sections)-1]
			}
			current.Paragraphs = append(current.Paragraphs, para)
		}
	}

	if !sawHeading {
		return nil
	}
	return sections
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.ListItem:
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// parseColonSections handles plain-text reports whose headings are short
// lines ending with a colon ("Executive Summary:").
func parseColonSections(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	var current *Section
	var buf []string

	flush := func() {
		para := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if para == "" {
			return
		}
		if current == nil {
			sections = append(sections, Section{})
			current = &sections[len(sections)-1]
		}
		current.Paragraphs = append(current.Paragraphs, para)
	}

	sawHeading := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isColonHeading(trimmed) {
			flush()
			sawHeading = true
			sections = append(sections, Section{Title: strings.TrimSuffix(trimmed, ":")})
			current = &sections[len(sections)-1]
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		buf = append(buf, trimmed)
	}
	flush()

	if !sawHeading {
		return nil
	}
	return sections
}

func isColonHeading(line string) bool {
	if !strings.HasSuffix(line, ":") || len(line) > 64 {
		return false
	}
	head := strings.TrimSuffix(line, ":")
	if head == "" || strings.Contains(head, ":") {
		return false
	}
	// Headings are short title phrases, not sentences.
	return len(strings.Fields(head)) <= 8
}

func splitParagraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
