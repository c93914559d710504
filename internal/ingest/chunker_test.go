package ingest

import (
	"strings"
	"testing"
)

func TestChunkerEmpty(t *testing.T) {
	c := NewChunker(100, 20)
	if got := c.Chunk("   \n\t  "); got != nil {
		t.Errorf("empty text should yield no chunks, got %v", got)
	}
	if got := c.Chunk(""); got != nil {
		t.Errorf("empty text should yield no chunks, got %v", got)
	}
}

func TestChunkerShortText(t *testing.T) {
	c := NewChunker(100, 20)
	got := c.Chunk("just a short sentence")
	if len(got) != 1 || got[0] != "just a short sentence" {
		t.Errorf("got %v", got)
	}
}

func TestChunkerDeterministic(t *testing.T) {
	c := NewChunker(50, 10)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)
	a := c.Chunk(text)
	b := c.Chunk(text)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunk %d differs", i)
		}
	}
}

func TestChunkerBoundedSize(t *testing.T) {
	c := NewChunker(50, 10)
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 30)
	for i, chunk := range c.Chunk(text) {
		if len([]rune(chunk)) > 50 {
			t.Errorf("chunk %d exceeds window: %d chars", i, len([]rune(chunk)))
		}
	}
}

func TestChunkerWordBoundaries(t *testing.T) {
	c := NewChunker(12, 4)
	chunks := c.Chunk("alpha bravo charlie delta echo foxtrot")
	words := map[string]bool{
		"alpha": true, "bravo": true, "charlie": true,
		"delta": true, "echo": true, "foxtrot": true,
	}
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			if !words[w] {
				t.Errorf("chunk %q contains split word %q", chunk, w)
			}
		}
	}
}

func TestChunkerOverlap(t *testing.T) {
	c := NewChunker(40, 15)
	text := strings.Repeat("overlap testing words repeated here again ", 10)
	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// Consecutive chunks share at least one word from the overlap region.
	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		tail := prevWords[len(prevWords)-1]
		if !strings.Contains(chunks[i], tail) {
			// Boundary snapping can shrink the overlap, but text this
			// repetitive should always share its tail word.
			t.Errorf("chunks %d and %d share no overlap", i-1, i)
		}
	}
}

func TestChunkerLongUnbrokenWord(t *testing.T) {
	c := NewChunker(10, 2)
	chunks := c.Chunk(strings.Repeat("x", 35))
	if len(chunks) < 3 {
		t.Fatalf("expected the word split across windows, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 10 {
			t.Errorf("chunk %d exceeds window: %q", i, chunk)
		}
	}
}

func TestNewChunkerSanitizesArgs(t *testing.T) {
	c := NewChunker(-5, -1)
	if c.size <= 0 || c.overlap < 0 {
		t.Errorf("size=%d overlap=%d", c.size, c.overlap)
	}
	c = NewChunker(10, 50)
	if c.overlap >= c.size {
		t.Errorf("overlap %d must stay below size %d", c.overlap, c.size)
	}
}
