package retrieval

import "strings"

const (
	// DefaultChunkSize and DefaultChunkOverlap preserve context across
	// chunk boundaries when splitting documents.
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is one piece of a split document.
type Chunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}

// SplitChunks splits text into overlapping chunks of roughly size runes.
// Boundaries prefer whitespace so words are not cut mid-way. Returns nil for
// blank input.
func SplitChunks(text string, size, overlap int) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		} else {
			// Pull the cut back to the last whitespace inside the window.
			cut := end
			for cut > start+step && !isSpace(runes[cut-1]) {
				cut--
			}
			if cut > start+step {
				end = cut
			}
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Content: content})
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
