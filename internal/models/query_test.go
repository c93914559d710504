package models

import "testing"

func TestSearchRequestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		req       SearchRequest
		wantQuery string
		wantTopK  int
	}{
		{"defaults applied", SearchRequest{Query: " hi "}, "hi", 10},
		{"topk kept", SearchRequest{Query: "q", TopK: 5}, "q", 5},
		{"topk clamped", SearchRequest{Query: "q", TopK: 500}, "q", 100},
		{"negative topk", SearchRequest{Query: "q", TopK: -1}, "q", 10},
	}
	for _, tt := range tests {
		tt.req.Normalize(10, 100)
		if tt.req.Query != tt.wantQuery {
			t.Errorf("%s: query %q, want %q", tt.name, tt.req.Query, tt.wantQuery)
		}
		if tt.req.TopK != tt.wantTopK {
			t.Errorf("%s: topK %d, want %d", tt.name, tt.req.TopK, tt.wantTopK)
		}
	}
}
