package models

// SearchResult is a single ranked hit. SimilarityScore is the raw cosine
// similarity (-1..1); ScorePercentage is its 0..100 rescale. Filename is
// resolved from the owning document at response time.
type SearchResult struct {
	ChunkID         int64   `json:"chunk_id"`
	PageNum         int     `json:"page_num"`
	Text            string  `json:"text"`
	SimilarityScore float64 `json:"similarity_score"`
	ScorePercentage float64 `json:"score_percentage"`
	Filename        string  `json:"filename"`
}

// SearchResponse is the wire envelope for a search request.
type SearchResponse struct {
	Results           []SearchResult `json:"results"`
	Query             string         `json:"query"`
	TotalResults      int            `json:"total_results"`
	SearchedDocuments int            `json:"searched_documents"`
}
