package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []models.SearchResult{
			{
				ChunkID:         3,
				PageNum:         2,
				Text:            "The suspect purchased a firearm from a licensed dealer.",
				SimilarityScore: 0.8731,
				ScorePercentage: 87.3,
				Filename:        "case-file.pdf",
			},
			{
				ChunkID:         7,
				PageNum:         5,
				Text:            "Ballistics matched the recovered weapon to earlier incidents.",
				SimilarityScore: 0.6012,
				ScorePercentage: 60.1,
				Filename:        "case-file.pdf",
			},
		},
		Query:             "suspect firearm",
		TotalResults:      2,
		SearchedDocuments: 1,
	}
}

func TestWriteSearchResultsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`2 result(s) for "suspect firearm" across 1 document(s)`,
		"Relevance: 87.3%",
		"File: case-file.pdf | Page: 2 | Chunk: 3",
		"licensed dealer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResultsCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("compact output has %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "1\t87.3%\tcase-file.pdf\tp2\t") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestWriteSearchResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalResults != 2 || decoded.Results[0].Filename != "case-file.pdf" {
		t.Errorf("round-tripped response = %+v", decoded)
	}
}

func TestParseSearchOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    SearchOutputFormat
		wantErr bool
	}{
		{"text", OutputText, false},
		{"", OutputText, false},
		{"compact", OutputCompact, false},
		{"json", OutputJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSearchOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSearchOutputFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSearchOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
