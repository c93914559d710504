// Package cli provides CLI output utilities for Docsift.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docsift/docsift/internal/models"
	"github.com/docsift/docsift/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact is one result per line.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseSearchOutputFormat maps a flag value to a format. Unknown values
// return an error naming the accepted ones.
func ParseSearchOutputFormat(s string) (SearchOutputFormat, error) {
	switch s {
	case "text", "":
		return OutputText, nil
	case "compact":
		return OutputCompact, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\n%d result(s) for %q across %d document(s)\n\n",
		response.TotalResults, response.Query, response.SearchedDocuments)
	for i, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Relevance: %.1f%% (cosine %.4f)\n",
			i+1, result.ScorePercentage, result.SimilarityScore)
		fmt.Fprintf(w, "File: %s | Page: %d | Chunk: %d\n",
			result.Filename, result.PageNum, result.ChunkID)
		fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(result.Text, 200))
	}
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i, result := range response.Results {
		fmt.Fprintf(w, "%d\t%.1f%%\t%s\tp%d\t%s\n",
			i+1, result.ScorePercentage, result.Filename, result.PageNum,
			utils.Truncate(result.Text, 100))
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
