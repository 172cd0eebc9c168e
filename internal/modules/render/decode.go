package render

import (
	"strconv"
	"strings"
)

// ExtractText recovers the visible text from a PDF produced by RenderPDF.
// It reads the string operands of Tj operators inside BT/ET text blocks,
// which works because RenderPDF disables stream compression. Layout
// whitespace is lossy; heading and paragraph text round-trips.
func ExtractText(payload []byte) string {
	raw := string(payload)

	var lines []string
	for {
		start := strings.Index(raw, "BT")
		if start < 0 {
			break
		}
		end := strings.Index(raw[start:], "ET")
		if end < 0 {
			break
		}
		block := raw[start : start+end]
		raw = raw[start+end+2:]

		for _, s := range parseStringOperands(block) {
			if s != "" {
				lines = append(lines, s)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// parseStringOperands returns the contents of (...) literals followed by Tj.
func parseStringOperands(block string) []string {
	var out []string
	for i := 0; i < len(block); i++ {
		if block[i] != '(' {
			continue
		}
		literal, next, ok := readStringLiteral(block, i)
		if !ok {
			break
		}
		rest := strings.TrimLeft(block[next:], " \r\n")
		if strings.HasPrefix(rest, "Tj") {
			out = append(out, literal)
		}
		i = next - 1
	}
	return out
}

// readStringLiteral parses a PDF string literal starting at block[open] == '('
// and returns the unescaped content plus the index after the closing paren.
func readStringLiteral(block string, open int) (string, int, bool) {
	var b strings.Builder
	depth := 1
	i := open + 1
	for i < len(block) {
		c := block[i]
		switch c {
		case '\\':
			if i+1 >= len(block) {
				return "", 0, false
			}
			esc := block[i+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '(', ')', '\\':
				b.WriteByte(esc)
			default:
				if esc >= '0' && esc <= '7' {
					// Up to three octal digits.
					j := i + 1
					for j < len(block) && j < i+4 && block[j] >= '0' && block[j] <= '7' {
						j++
					}
					if v, err := strconv.ParseUint(block[i+1:j], 8, 16); err == nil {
						b.WriteByte(byte(v))
					}
					i = j
					continue
				}
				b.WriteByte(esc)
			}
			i += 2
		case '(':
			depth++
			b.WriteByte(c)
			i++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1, true
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, false
}
