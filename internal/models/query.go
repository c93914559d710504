package models

import "strings"

// SearchRequest is a search query with the maximum number of results wanted.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// Normalize trims the query and clamps TopK into [1, maxTopK], applying
// defaultTopK when TopK is unset. It does not validate emptiness; the search
// engine rejects blank queries so CLI and HTTP callers get the same behavior.
func (r *SearchRequest) Normalize(defaultTopK, maxTopK int) {
	r.Query = strings.TrimSpace(r.Query)
	if r.TopK <= 0 {
		r.TopK = defaultTopK
	}
	if maxTopK > 0 && r.TopK > maxTopK {
		r.TopK = maxTopK
	}
}
