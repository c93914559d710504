package embedding

import "testing"

func TestWordTokenizer(t *testing.T) {
	tok := &WordTokenizer{}
	inputIDs, attentionMask, tokenTypeIDs := tok.Tokenize("hello world", 8)
	if len(inputIDs) != 8 || len(attentionMask) != 8 || len(tokenTypeIDs) != 8 {
		t.Fatalf("lengths: %d %d %d", len(inputIDs), len(attentionMask), len(tokenTypeIDs))
	}
	if inputIDs[0] != 101 {
		t.Errorf("expected [CLS] at position 0, got %d", inputIDs[0])
	}
	// hello, world, then [SEP]
	if inputIDs[3] != 102 {
		t.Errorf("expected [SEP] at position 3, got %d", inputIDs[3])
	}
	for i := 0; i < 4; i++ {
		if attentionMask[i] != 1 {
			t.Errorf("attention mask at %d should be 1", i)
		}
	}
	if attentionMask[4] != 0 {
		t.Error("padding positions should have zero attention")
	}
}

func TestWordTokenizerTruncates(t *testing.T) {
	tok := &WordTokenizer{}
	inputIDs, _, _ := tok.Tokenize("a b c d e f g h i j", 4)
	if len(inputIDs) != 4 {
		t.Fatalf("len=%d", len(inputIDs))
	}
}

func TestWordTokenizerCaseInsensitive(t *testing.T) {
	tok := &WordTokenizer{}
	a, _, _ := tok.Tokenize("Firearm", 8)
	b, _, _ := tok.Tokenize("firearm", 8)
	if a[1] != b[1] {
		t.Error("token ids should be case-insensitive")
	}
}

func TestHashStringNonNegative(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "zzzzzzzzzzzz"} {
		if hashString(s) < 0 {
			t.Errorf("hashString(%q) is negative", s)
		}
	}
}
