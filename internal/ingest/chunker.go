package ingest

import (
	"strings"
	"unicode"
)

// Chunker splits page text into overlapping character windows, snapping
// window edges to word boundaries where one exists. Chunking is a pure
// function of its input: the same text always yields the same sequence.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given window size and overlap, both
// in characters. Nonsensical values are coerced to safe ones.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 800
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits text into passages. Empty or whitespace-only input yields no
// chunks. A word longer than the window is split mid-word as a last resort.
func (c *Chunker) Chunk(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			// Pull the cut back to the last word boundary inside the window.
			cut := end
			for cut > start && !unicode.IsSpace(runes[cut-1]) && !unicode.IsSpace(runes[cut]) {
				cut--
			}
			if cut > start {
				end = cut
			}
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, piece)
		}
		if end == len(runes) {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = end
		}
		// Advance to the start of a word so the overlap region never begins
		// mid-word. Capped at end: an unbroken run longer than the window
		// steps without overlap instead of skipping text.
		for next < end && next > 0 &&
			!unicode.IsSpace(runes[next]) && !unicode.IsSpace(runes[next-1]) {
			next++
		}
		start = next
	}
	return chunks
}
